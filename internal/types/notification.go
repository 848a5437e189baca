package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Notification struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Title     string         `gorm:"not null;column:title" json:"title"`
	Body      string         `gorm:"column:body" json:"body"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb" json:"data,omitempty"`
	IsRead    bool           `gorm:"not null;default:false;column:is_read" json:"is_read"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
