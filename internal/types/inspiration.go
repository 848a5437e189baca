package types

import (
	"time"

	"github.com/google/uuid"
)

type Inspiration struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WeddingID      uuid.UUID `gorm:"type:uuid;not null;index;column:wedding_id" json:"wedding_id"`
	Wedding        *Wedding  `gorm:"constraint:OnDelete:CASCADE;foreignKey:WeddingID;references:ID" json:"-"`
	ImageURL       string    `gorm:"not null;column:image_url" json:"image_url"`
	ImageBucketKey string    `gorm:"column:image_bucket_key" json:"image_bucket_key"`
	Category       string    `gorm:"column:category" json:"category"`
	Note           string    `gorm:"column:note" json:"note"`
	SavedBy        uuid.UUID `gorm:"type:uuid;not null;column:saved_by" json:"saved_by"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (Inspiration) TableName() string {
	return "inspirations"
}
