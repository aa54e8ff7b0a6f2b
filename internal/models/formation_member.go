package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member roles and bandwidth classifications
const (
	RoleContributor = "contributor"
	RoleLead        = "lead"

	BandwidthFull    = "full"
	BandwidthPartial = "partial"
)

func ValidMemberRole(s string) bool {
	return s == RoleContributor || s == RoleLead
}

func ValidBandwidth(s string) bool {
	return s == BandwidthFull || s == BandwidthPartial
}

// FormationMember is the unique (formation, employee) pair. Adding the same
// employee twice is a conflict, not an upsert. Uniqueness is enforced in
// the service against live rows only, so a removed member can rejoin.
type FormationMember struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	FormationID uuid.UUID      `json:"formationId" gorm:"type:uuid;not null;index:idx_formation_employee"`
	EmployeeID  uuid.UUID      `json:"employeeId" gorm:"type:uuid;not null;index:idx_formation_employee"`
	Role        string         `json:"role" gorm:"not null;default:'contributor'"` // contributor, lead
	Bandwidth   string         `json:"bandwidth" gorm:"not null;default:'full'"`   // full, partial
	JoinedAt    time.Time      `json:"joinedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

func (m *FormationMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	return nil
}

// Member DTOs
type AddMemberRequest struct {
	EmployeeID uuid.UUID `json:"employeeId" validate:"required"`
	Role       string    `json:"role"`
	Bandwidth  string    `json:"bandwidth"`
}

type UpdateMemberRequest struct {
	Role      *string `json:"role"`
	Bandwidth *string `json:"bandwidth"`
}
