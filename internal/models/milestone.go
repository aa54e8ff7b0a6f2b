package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Milestone statuses
const (
	MilestonePending  = "pending"
	MilestoneAchieved = "achieved"
	MilestoneMissed   = "missed"
)

func ValidMilestoneStatus(s string) bool {
	switch s {
	case MilestonePending, MilestoneAchieved, MilestoneMissed:
		return true
	}
	return false
}

type Milestone struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID      `json:"productId" gorm:"type:uuid;index;not null"`
	Name       string         `json:"name" gorm:"not null"`
	TargetDate *time.Time     `json:"targetDate"`
	Status     string         `json:"status" gorm:"not null;default:'pending'"` // pending, achieved, missed
	Notes      string         `json:"notes"`
	Position   int            `json:"position" gorm:"not null;default:0"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Milestone DTOs
type CreateMilestoneRequest struct {
	Name       string     `json:"name" validate:"required"`
	TargetDate *time.Time `json:"targetDate"`
}

type UpdateMilestoneRequest struct {
	Name       *string    `json:"name"`
	TargetDate *time.Time `json:"targetDate"`
	Status     *string    `json:"status"`
	Notes      *string    `json:"notes"`
}
