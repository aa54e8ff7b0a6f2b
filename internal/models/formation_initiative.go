package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormationInitiative links an initiative into a formation's capacity
// ledger with a weight. Distinct from initiative ownership: an initiative
// can be owned by one formation and allocated into several.
type FormationInitiative struct {
	ID                   uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	FormationID          uuid.UUID      `json:"formationId" gorm:"type:uuid;not null;index:idx_formation_initiative"`
	InitiativeID         uuid.UUID      `json:"initiativeId" gorm:"type:uuid;not null;index:idx_formation_initiative"`
	AllocationPercentage int            `json:"allocationPercentage" gorm:"not null"` // 0-100
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
	DeletedAt            gorm.DeletedAt `json:"-" gorm:"index"`

	Initiative *Initiative `json:"initiative,omitempty" gorm:"foreignKey:InitiativeID"`
}

func (l *FormationInitiative) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Link DTOs
type LinkInitiativeRequest struct {
	InitiativeID         uuid.UUID `json:"initiativeId" validate:"required"`
	AllocationPercentage int       `json:"allocationPercentage" validate:"min=0,max=100"`
}

type UpdateLinkRequest struct {
	AllocationPercentage int `json:"allocationPercentage" validate:"min=0,max=100"`
}
