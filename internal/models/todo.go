package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo statuses
const (
	TodoOpen       = "todo"
	TodoInProgress = "in_progress"
	TodoDone       = "done"
)

func ValidTodoStatus(s string) bool {
	switch s {
	case TodoOpen, TodoInProgress, TodoDone:
		return true
	}
	return false
}

type Todo struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	InitiativeID uuid.UUID      `json:"initiativeId" gorm:"type:uuid;index;not null"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description"`
	AssigneeID   *uuid.UUID     `json:"assigneeId" gorm:"type:uuid"`
	Status       string         `json:"status" gorm:"not null;default:'todo'"` // todo, in_progress, done
	DueDate      *time.Time     `json:"dueDate"`
	CompletedAt  *time.Time     `json:"completedAt"` // set exactly when status becomes done
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Assignee *Employee `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
}

func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Todo DTOs
type CreateTodoRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	AssigneeID  *uuid.UUID `json:"assigneeId"`
	DueDate     *time.Time `json:"dueDate"`
}

type UpdateTodoRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	AssigneeID  *uuid.UUID `json:"assigneeId"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}
