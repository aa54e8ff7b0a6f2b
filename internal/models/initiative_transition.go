package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transition channels
const (
	ChannelStage  = "stage"
	ChannelStatus = "status"
	ChannelState  = "state"
)

// InitiativeTransition is an append-only audit row written for every
// stage, status, or state change.
type InitiativeTransition struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	InitiativeID uuid.UUID      `json:"initiativeId" gorm:"type:uuid;index;not null"`
	ActorID      uuid.UUID      `json:"actorId" gorm:"type:uuid;not null"`
	Channel      string         `json:"channel" gorm:"not null"` // stage, status, state
	FromValue    string         `json:"fromValue" gorm:"not null"`
	ToValue      string         `json:"toValue" gorm:"not null"`
	Reason       *string        `json:"reason"`
	Notes        *string        `json:"notes"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Actor *Employee `json:"actor,omitempty" gorm:"foreignKey:ActorID"`
}

func (t *InitiativeTransition) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
