package types

import (
	"time"

	"github.com/google/uuid"
)

type VendorStatus string

const (
	VendorStatusContacted   VendorStatus = "contacted"
	VendorStatusNegotiating VendorStatus = "negotiating"
	VendorStatusBooked      VendorStatus = "booked"
	VendorStatusRejected    VendorStatus = "rejected"
)

func (s VendorStatus) Valid() bool {
	switch s {
	case VendorStatusContacted, VendorStatusNegotiating, VendorStatusBooked, VendorStatusRejected:
		return true
	}
	return false
}

type Vendor struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	WeddingID    uuid.UUID    `gorm:"type:uuid;not null;index;column:wedding_id" json:"wedding_id"`
	Wedding      *Wedding     `gorm:"constraint:OnDelete:CASCADE;foreignKey:WeddingID;references:ID" json:"-"`
	Name         string       `gorm:"not null;column:name" json:"name"`
	Category     string       `gorm:"not null;column:category" json:"category"`
	ContactName  string       `gorm:"column:contact_name" json:"contact_name"`
	ContactPhone string       `gorm:"column:contact_phone" json:"contact_phone"`
	Email        string       `gorm:"column:email" json:"email"`
	Website      string       `gorm:"column:website" json:"website"`
	Instagram    string       `gorm:"column:instagram" json:"instagram"`
	PriceRange   string       `gorm:"column:price_range" json:"price_range"`
	Status       VendorStatus `gorm:"not null;column:status" json:"status"`
	IsBooked     bool         `gorm:"column:is_booked" json:"is_booked"`
	Notes        string       `gorm:"column:notes" json:"notes"`
	SavedBy      uuid.UUID    `gorm:"type:uuid;not null;column:saved_by" json:"saved_by"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updated_at"`
}

func (Vendor) TableName() string {
	return "vendors"
}
