package types

import (
	"time"

	"github.com/google/uuid"
)

type GuestStatus string

const (
	GuestStatusPending   GuestStatus = "pending"
	GuestStatusInvited   GuestStatus = "invited"
	GuestStatusConfirmed GuestStatus = "confirmed"
	GuestStatusAttending GuestStatus = "attending"
	GuestStatusDeclined  GuestStatus = "declined"
)

func (s GuestStatus) Valid() bool {
	switch s {
	case GuestStatusPending, GuestStatusInvited, GuestStatusConfirmed, GuestStatusAttending, GuestStatusDeclined:
		return true
	}
	return false
}

// Guest rows created through the public RSVP link have a nil AddedBy; the
// submitting party is anonymous.
type Guest struct {
	ID                  uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	WeddingID           uuid.UUID   `gorm:"type:uuid;not null;index;column:wedding_id" json:"wedding_id"`
	Wedding             *Wedding    `gorm:"constraint:OnDelete:CASCADE;foreignKey:WeddingID;references:ID" json:"-"`
	Name                string      `gorm:"not null;column:name" json:"name"`
	Email               string      `gorm:"column:email" json:"email"`
	Phone               string      `gorm:"column:phone" json:"phone"`
	Category            string      `gorm:"column:category" json:"category"`
	Pax                 int         `gorm:"not null;default:1;column:pax" json:"pax"`
	DietaryRestrictions string      `gorm:"column:dietary_restrictions" json:"dietary_restrictions"`
	PlusOne             bool        `gorm:"column:plus_one" json:"plus_one"`
	Status              GuestStatus `gorm:"not null;column:status" json:"status"`
	Message             string      `gorm:"column:message" json:"message"`
	AddedBy             *uuid.UUID  `gorm:"type:uuid;column:added_by" json:"added_by"`
	CreatedAt           time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time   `gorm:"not null" json:"updated_at"`
}

func (Guest) TableName() string {
	return "guests"
}
