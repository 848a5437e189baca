package types

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	WeddingID   uuid.UUID  `gorm:"type:uuid;not null;index;column:wedding_id" json:"wedding_id"`
	Wedding     *Wedding   `gorm:"constraint:OnDelete:CASCADE;foreignKey:WeddingID;references:ID" json:"-"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	Category    string     `gorm:"column:category" json:"category"`
	Status      TaskStatus `gorm:"not null;column:status" json:"status"`
	DueDate     *time.Time `gorm:"column:due_date" json:"due_date"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;column:assigned_to" json:"assigned_to"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null;column:created_by" json:"created_by"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
