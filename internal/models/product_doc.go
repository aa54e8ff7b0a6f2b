package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductDoc is a documentation or reference attachment on a product. The
// URL is opaque to this service; upload and storage live elsewhere.
type ProductDoc struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID      `json:"productId" gorm:"type:uuid;index;not null"`
	Title     string         `json:"title" gorm:"not null"`
	URL       string         `json:"url" gorm:"not null"`
	Position  int            `json:"position" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (d *ProductDoc) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type CreateProductDocRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required"`
}
