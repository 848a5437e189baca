package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password        string    `gorm:"not null;column:password" json:"-"`
	FullName        string    `gorm:"not null;column:full_name" json:"full_name"`
	AvatarBucketKey string    `gorm:"column:avatar_bucket_key" json:"avatar_bucket_key"`
	AvatarURL       string    `gorm:"column:avatar_url" json:"avatar_url"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "profiles"
}
