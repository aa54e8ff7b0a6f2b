package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Formation energy states
const (
	EnergyHealthy  = "healthy"
	EnergyStrained = "strained"
	EnergyCritical = "critical"
)

func ValidEnergyState(s string) bool {
	switch s {
	case EnergyHealthy, EnergyStrained, EnergyCritical:
		return true
	}
	return false
}

// Formation cadence types
const (
	CadenceWeekly   = "weekly"
	CadenceBiweekly = "biweekly"
	CadenceMonthly  = "monthly"
)

func ValidCadenceType(s string) bool {
	switch s {
	case CadenceWeekly, CadenceBiweekly, CadenceMonthly:
		return true
	}
	return false
}

type Formation struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string         `json:"name" gorm:"not null"`
	Description   string         `json:"description"`
	CadenceType   string         `json:"cadenceType" gorm:"not null;default:'weekly'"` // weekly, biweekly, monthly
	CadenceAnchor *time.Time     `json:"cadenceAnchor"`
	EnergyState   string         `json:"energyState" gorm:"not null;default:'healthy'"` // healthy, strained, critical
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	Members         []FormationMember     `json:"members,omitempty" gorm:"foreignKey:FormationID"`
	InitiativeLinks []FormationInitiative `json:"initiativeLinks,omitempty" gorm:"foreignKey:FormationID"`
}

func (f *Formation) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Formation DTOs
type CreateFormationRequest struct {
	Name          string     `json:"name" validate:"required"`
	Description   string     `json:"description"`
	CadenceType   string     `json:"cadenceType"`
	CadenceAnchor *time.Time `json:"cadenceAnchor"`
}

type UpdateFormationRequest struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	CadenceType   *string    `json:"cadenceType"`
	CadenceAnchor *time.Time `json:"cadenceAnchor"`
	EnergyState   *string    `json:"energyState"`
}
