package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Initiative stages — delivery phases. Progression is recorded but not
// forced forward-only.
const (
	StageShaping  = "shaping"
	StageBuilding = "building"
	StageTesting  = "testing"
	StageShipping = "shipping"
	StageDone     = "done"
)

func ValidStage(s string) bool {
	switch s {
	case StageShaping, StageBuilding, StageTesting, StageShipping, StageDone:
		return true
	}
	return false
}

// Initiative statuses — the commitment dimension, independent of stage.
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusShipped   = "shipped"
	StatusAbandoned = "abandoned"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusPaused, StatusShipped, StatusAbandoned:
		return true
	}
	return false
}

// Initiative states — the operational-health channel, independent of both
// stage and status.
const (
	StateOnTrack = "on_track"
	StateAtRisk  = "at_risk"
	StateBlocked = "blocked"
)

func ValidState(s string) bool {
	switch s {
	case StateOnTrack, StateAtRisk, StateBlocked:
		return true
	}
	return false
}

type Initiative struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Title           string         `json:"title" gorm:"not null"`
	Intent          string         `json:"intent"`
	SuccessCriteria string         `json:"successCriteria"`
	OwnerID         uuid.UUID      `json:"ownerId" gorm:"type:uuid;index;not null"`
	FormationID     *uuid.UUID     `json:"formationId" gorm:"type:uuid;index"`
	MilestoneID     *uuid.UUID     `json:"milestoneId" gorm:"type:uuid"`
	Stage           string         `json:"stage" gorm:"not null;default:'shaping'"`   // shaping, building, testing, shipping, done
	Status          string         `json:"status" gorm:"not null;default:'active'"`   // active, paused, shipped, abandoned
	State           string         `json:"state" gorm:"not null;default:'on_track'"`  // on_track, at_risk, blocked
	Horizon         *string        `json:"horizon"`
	ContextLinks    StringList     `json:"contextLinks" gorm:"type:text"`
	PausedReason    *string        `json:"pausedReason"`
	AbandonedReason *string        `json:"abandonedReason"`
	ShippedNotes    *string        `json:"shippedNotes"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	Owner     *Employee  `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Formation *Formation `json:"formation,omitempty" gorm:"foreignKey:FormationID"`
	Milestone *Milestone `json:"milestone,omitempty" gorm:"foreignKey:MilestoneID"`
	Todos     []Todo     `json:"todos,omitempty" gorm:"foreignKey:InitiativeID"`
}

func (i *Initiative) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Initiative DTOs
type CreateInitiativeRequest struct {
	Title           string     `json:"title" validate:"required"`
	Intent          string     `json:"intent"`
	SuccessCriteria string     `json:"successCriteria"`
	FormationID     *uuid.UUID `json:"formationId"`
	MilestoneID     *uuid.UUID `json:"milestoneId"`
	Horizon         *string    `json:"horizon"`
	ContextLinks    StringList `json:"contextLinks"`
}

type UpdateInitiativeRequest struct {
	Title           *string     `json:"title"`
	Intent          *string     `json:"intent"`
	SuccessCriteria *string     `json:"successCriteria"`
	OwnerID         *uuid.UUID  `json:"ownerId"`
	FormationID     *uuid.UUID  `json:"formationId"`
	MilestoneID     *uuid.UUID  `json:"milestoneId"`
	Horizon         *string     `json:"horizon"`
	ContextLinks    *StringList `json:"contextLinks"`
	PausedReason    *string     `json:"pausedReason"`
	AbandonedReason *string     `json:"abandonedReason"`
	ShippedNotes    *string     `json:"shippedNotes"`
}

// TransitionRequest is the shared body for the stage, status, and state
// endpoints.
type TransitionRequest struct {
	NewValue string  `json:"newValue" validate:"required"`
	Reason   *string `json:"reason"`
	Notes    *string `json:"notes"`
}

type InitiativeFilter struct {
	Status      string `query:"status"`
	Stage       string `query:"stage"`
	OwnerID     string `query:"ownerId"`
	FormationID string `query:"formationId"`
	Search      string `query:"search"`
	Limit       int    `query:"limit"`
	Offset      int    `query:"offset"`
}
