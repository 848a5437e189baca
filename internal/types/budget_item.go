package types

import (
	"time"

	"github.com/google/uuid"
)

type BudgetStatus string

const (
	BudgetStatusPlanned BudgetStatus = "planned"
	BudgetStatusBooked  BudgetStatus = "booked"
	BudgetStatusPaid    BudgetStatus = "paid"
)

func (s BudgetStatus) Valid() bool {
	switch s {
	case BudgetStatusPlanned, BudgetStatusBooked, BudgetStatusPaid:
		return true
	}
	return false
}

type BudgetItem struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	WeddingID     uuid.UUID    `gorm:"type:uuid;not null;index;column:wedding_id" json:"wedding_id"`
	Wedding       *Wedding     `gorm:"constraint:OnDelete:CASCADE;foreignKey:WeddingID;references:ID" json:"-"`
	ItemName      string       `gorm:"not null;column:item_name" json:"item_name"`
	Category      string       `gorm:"not null;column:category" json:"category"`
	EstimatedCost float64      `gorm:"type:numeric(12,2);column:estimated_cost" json:"estimated_cost"`
	ActualCost    *float64     `gorm:"type:numeric(12,2);column:actual_cost" json:"actual_cost"`
	Status        BudgetStatus `gorm:"not null;column:status" json:"status"`
	Notes         string       `gorm:"column:notes" json:"notes"`
	PaidBy        *uuid.UUID   `gorm:"type:uuid;column:paid_by" json:"paid_by"`
	CreatedBy     uuid.UUID    `gorm:"type:uuid;not null;column:created_by" json:"created_by"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
}

func (BudgetItem) TableName() string {
	return "budget_items"
}
