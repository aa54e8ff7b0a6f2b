package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Thread shapes — what kind of record this is.
const (
	ShapeBlock    = "block"
	ShapeQuestion = "question"
	ShapeDecision = "decision"
	ShapeBuild    = "build"
	ShapeResearch = "research"
)

func ValidThreadShape(s string) bool {
	switch s {
	case ShapeBlock, ShapeQuestion, ShapeDecision, ShapeBuild, ShapeResearch:
		return true
	}
	return false
}

// Thread states. Resolved is terminal and carries a resolution note.
const (
	ThreadOpen     = "open"
	ThreadResolved = "resolved"
	ThreadArchived = "archived"
)

func ValidThreadState(s string) bool {
	switch s {
	case ThreadOpen, ThreadResolved, ThreadArchived:
		return true
	}
	return false
}

type Thread struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	InitiativeID uuid.UUID      `json:"initiativeId" gorm:"type:uuid;index;not null"`
	Title        string         `json:"title" gorm:"not null"`
	Body         string         `json:"body"`
	Shape        string         `json:"shape" gorm:"not null"`                 // block, question, decision, build, research
	State        string         `json:"state" gorm:"not null;default:'open'"` // open, resolved, archived
	OwnerID      uuid.UUID      `json:"ownerId" gorm:"type:uuid;index;not null"`
	Contributors UUIDList       `json:"contributors" gorm:"type:text"`
	Mentions     UUIDList       `json:"mentions" gorm:"type:text"`
	Links        StringList     `json:"links" gorm:"type:text"`
	Resolution   *string        `json:"resolution"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Owner      *Employee     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Initiative *Initiative   `json:"initiative,omitempty" gorm:"foreignKey:InitiativeID"`
	Replies    []ThreadReply `json:"replies,omitempty" gorm:"foreignKey:ThreadID"`
}

func (t *Thread) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Thread DTOs
type CreateThreadRequest struct {
	InitiativeID uuid.UUID  `json:"initiativeId" validate:"required"`
	Title        string     `json:"title" validate:"required"`
	Body         string     `json:"body"`
	Shape        string     `json:"shape" validate:"required"`
	Contributors UUIDList   `json:"contributors"`
	Mentions     UUIDList   `json:"mentions"`
	Links        StringList `json:"links"`
}

type UpdateThreadRequest struct {
	Title        *string     `json:"title"`
	Body         *string     `json:"body"`
	Shape        *string     `json:"shape"`
	Contributors *UUIDList   `json:"contributors"`
	Mentions     *UUIDList   `json:"mentions"`
	Links        *StringList `json:"links"`
}

type ThreadStateRequest struct {
	NewValue   string  `json:"newValue" validate:"required"`
	Resolution *string `json:"resolution"`
}

type ThreadFilter struct {
	InitiativeID string `query:"initiativeId"`
	Shape        string `query:"shape"`
	State        string `query:"state"`
	OwnerID      string `query:"ownerId"`
	Contributor  string `query:"contributor"`
	Search       string `query:"search"`
	Limit        int    `query:"limit"`
	Offset       int    `query:"offset"`
}
