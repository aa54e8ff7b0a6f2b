package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ThreadReply is append-only: no update or delete surface exists for it.
type ThreadReply struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ThreadID  uuid.UUID      `json:"threadId" gorm:"type:uuid;index;not null"`
	AuthorID  uuid.UUID      `json:"authorId" gorm:"type:uuid;not null"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Mentions  UUIDList       `json:"mentions" gorm:"type:text"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Author *Employee `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (r *ThreadReply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type CreateReplyRequest struct {
	Content  string   `json:"content" validate:"required"`
	Mentions UUIDList `json:"mentions"`
}
