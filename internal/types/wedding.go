package types

import (
	"time"

	"github.com/google/uuid"
)

// Wedding is the unit of collaboration: every planning record hangs off one
// wedding, and at most two distinct users (partner one and partner two) are
// ever bound to it. The row id doubles as the shareable invitation code.
type Wedding struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PartnerOneID uuid.UUID  `gorm:"type:uuid;not null;index;column:partner_one_id" json:"partner_one_id"`
	PartnerTwoID *uuid.UUID `gorm:"type:uuid;index;column:partner_two_id" json:"partner_two_id"`
	WeddingDate  *time.Time `gorm:"column:wedding_date" json:"wedding_date"`
	Venue        string     `gorm:"column:venue" json:"venue"`
	Theme        string     `gorm:"column:theme" json:"theme"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (Wedding) TableName() string {
	return "weddings"
}

// Solo reports whether the wedding still has a vacant partner slot.
func (w *Wedding) Solo() bool {
	return w.PartnerTwoID == nil
}

// HasMember reports whether userID is bound to this wedding.
func (w *Wedding) HasMember(userID uuid.UUID) bool {
	if w.PartnerOneID == userID {
		return true
	}
	return w.PartnerTwoID != nil && *w.PartnerTwoID == userID
}
