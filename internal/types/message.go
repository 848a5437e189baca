package types

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WeddingID uuid.UUID `gorm:"type:uuid;not null;index;column:wedding_id" json:"wedding_id"`
	Wedding   *Wedding  `gorm:"constraint:OnDelete:CASCADE;foreignKey:WeddingID;references:ID" json:"-"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null;column:sender_id" json:"sender_id"`
	Sender    *User     `gorm:"foreignKey:SenderID;references:ID" json:"sender,omitempty"`
	Content   string    `gorm:"not null;column:content" json:"content"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Message) TableName() string {
	return "messages"
}
