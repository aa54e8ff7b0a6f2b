package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Email       string         `json:"email" gorm:"uniqueIndex;not null"`
	Password    string         `json:"-"`
	Name        string         `json:"name"`
	DisplayName string         `json:"displayName"`
	Title       string         `json:"title"`
	AvatarURL   string         `json:"avatarUrl"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// EmployeeSummary is the narrow read model other aggregates resolve when
// displaying an owner, assignee, or member.
type EmployeeSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Title       string    `json:"title"`
	AvatarURL   string    `json:"avatarUrl"`
}

func (e *Employee) Summary() EmployeeSummary {
	return EmployeeSummary{
		ID:          e.ID,
		Name:        e.Name,
		DisplayName: e.DisplayName,
		Title:       e.Title,
		AvatarURL:   e.AvatarURL,
	}
}

// Auth DTOs
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Title       *string `json:"title"`
	AvatarURL   *string `json:"avatarUrl"`
	Name        *string `json:"name"`
}

type AuthResponse struct {
	Token    string   `json:"token"`
	Employee Employee `json:"employee"`
}
