package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product statuses
const (
	ProductActive   = "active"
	ProductArchived = "archived"
)

func ValidProductStatus(s string) bool {
	return s == ProductActive || s == ProductArchived
}

type Product struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Code         string         `json:"code" gorm:"uniqueIndex;not null"` // immutable after create
	Description  string         `json:"description"`
	OwnerID      uuid.UUID      `json:"ownerId" gorm:"type:uuid;index;not null"`
	Status       string         `json:"status" gorm:"not null;default:'active'"` // active, archived
	Category     *string        `json:"category"`
	DisplayOrder int            `json:"displayOrder" gorm:"default:0"`
	RepoURL      *string        `json:"repoUrl"`
	DocsURL      *string        `json:"docsUrl"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Owner      *Employee    `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Milestones []Milestone  `json:"milestones,omitempty" gorm:"foreignKey:ProductID"`
	Docs       []ProductDoc `json:"docs,omitempty" gorm:"foreignKey:ProductID"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Product DTOs
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Code        string  `json:"code" validate:"required"`
	Description string  `json:"description"`
	Category    *string `json:"category"`
	RepoURL     *string `json:"repoUrl"`
	DocsURL     *string `json:"docsUrl"`
}

type UpdateProductRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	OwnerID      *uuid.UUID `json:"ownerId"`
	Status       *string    `json:"status"`
	Category     *string    `json:"category"`
	DisplayOrder *int       `json:"displayOrder"`
	RepoURL      *string    `json:"repoUrl"`
	DocsURL      *string    `json:"docsUrl"`
}

type ProductFilter struct {
	Status   string `query:"status"`
	Category string `query:"category"`
	Search   string `query:"search"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}
