package services

import (
	"errors"
	"fmt"

	"github.com/atlasops/planner-api/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FormationService is the single writer for Formation, FormationMember,
// and FormationInitiative rows.
type FormationService struct {
	db         *gorm.DB
	log        *zap.Logger
	allocation *AllocationService
}

func NewFormationService(db *gorm.DB, log *zap.Logger, allocation *AllocationService) *FormationService {
	return &FormationService{db: db, log: log, allocation: allocation}
}

// Create makes a new formation. Cadence defaults to weekly, energy to
// healthy.
func (s *FormationService) Create(req models.CreateFormationRequest, actorID uuid.UUID) (*models.Formation, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("create formation: name is required: %w", ErrValidation)
	}

	cadence := req.CadenceType
	if cadence == "" {
		cadence = models.CadenceWeekly
	}
	if !models.ValidCadenceType(cadence) {
		return nil, fmt.Errorf("create formation: invalid cadence %q: %w", cadence, ErrValidation)
	}

	formation := models.Formation{
		Name:          req.Name,
		Description:   req.Description,
		CadenceType:   cadence,
		CadenceAnchor: req.CadenceAnchor,
		EnergyState:   models.EnergyHealthy,
	}

	if err := s.db.Create(&formation).Error; err != nil {
		return nil, fmt.Errorf("create formation: %w", err)
	}
	return &formation, nil
}

// Update applies partial changes, including the team-health signal.
func (s *FormationService) Update(id uuid.UUID, req models.UpdateFormationRequest, actorID uuid.UUID) (*models.Formation, error) {
	var formation models.Formation
	if err := s.db.First(&formation, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("update formation %s: %w", id, ErrNotFound)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("update formation %s: name cannot be empty: %w", id, ErrValidation)
		}
		formation.Name = *req.Name
	}
	if req.Description != nil {
		formation.Description = *req.Description
	}
	if req.CadenceType != nil {
		if !models.ValidCadenceType(*req.CadenceType) {
			return nil, fmt.Errorf("update formation %s: invalid cadence %q: %w", id, *req.CadenceType, ErrValidation)
		}
		formation.CadenceType = *req.CadenceType
	}
	if req.CadenceAnchor != nil {
		formation.CadenceAnchor = req.CadenceAnchor
	}
	if req.EnergyState != nil {
		if !models.ValidEnergyState(*req.EnergyState) {
			return nil, fmt.Errorf("update formation %s: invalid energy state %q: %w", id, *req.EnergyState, ErrValidation)
		}
		formation.EnergyState = *req.EnergyState
	}

	if err := s.db.Save(&formation).Error; err != nil {
		return nil, fmt.Errorf("update formation %s: %w", id, err)
	}
	return s.GetByIDWithDetails(id)
}

// Delete soft-deletes the formation.
func (s *FormationService) Delete(id, actorID uuid.UUID) error {
	result := s.db.Delete(&models.Formation{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete formation %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete formation %s: %w", id, ErrNotFound)
	}

	s.log.Info("formation deleted",
		zap.String("formationId", id.String()),
		zap.String("actorId", actorID.String()))
	return nil
}

// GetByIDWithDetails resolves members (with employee summaries) and
// initiative links.
func (s *FormationService) GetByIDWithDetails(id uuid.UUID) (*models.Formation, error) {
	var formation models.Formation
	if err := s.db.
		Preload("Members").
		Preload("Members.Employee").
		Preload("InitiativeLinks").
		Preload("InitiativeLinks.Initiative").
		First(&formation, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get formation %s: %w", id, ErrNotFound)
	}
	return &formation, nil
}

// List returns all live formations with member counts preloaded.
func (s *FormationService) List() ([]models.Formation, error) {
	var formations []models.Formation
	if err := s.db.Preload("Members").Order("created_at ASC").Find(&formations).Error; err != nil {
		return nil, fmt.Errorf("list formations: %w", err)
	}
	return formations, nil
}

// AddMember adds an employee to a formation. A duplicate (formation,
// employee) pair is a conflict, never a silent upsert; role and bandwidth
// changes go through UpdateMember.
func (s *FormationService) AddMember(formationID uuid.UUID, req models.AddMemberRequest, actorID uuid.UUID) (*models.FormationMember, error) {
	if req.EmployeeID == uuid.Nil {
		return nil, fmt.Errorf("add member: employeeId is required: %w", ErrValidation)
	}

	role := req.Role
	if role == "" {
		role = models.RoleContributor
	}
	if !models.ValidMemberRole(role) {
		return nil, fmt.Errorf("add member: invalid role %q: %w", role, ErrValidation)
	}

	bandwidth := req.Bandwidth
	if bandwidth == "" {
		bandwidth = models.BandwidthFull
	}
	if !models.ValidBandwidth(bandwidth) {
		return nil, fmt.Errorf("add member: invalid bandwidth %q: %w", bandwidth, ErrValidation)
	}

	var exists int64
	s.db.Model(&models.Formation{}).Where("id = ?", formationID).Count(&exists)
	if exists == 0 {
		return nil, fmt.Errorf("add member to %s: %w", formationID, ErrNotFound)
	}

	var dup int64
	s.db.Model(&models.FormationMember{}).
		Where("formation_id = ? AND employee_id = ?", formationID, req.EmployeeID).
		Count(&dup)
	if dup > 0 {
		return nil, fmt.Errorf("add member: employee %s already in formation: %w", req.EmployeeID, ErrConflict)
	}

	member := models.FormationMember{
		FormationID: formationID,
		EmployeeID:  req.EmployeeID,
		Role:        role,
		Bandwidth:   bandwidth,
	}

	if err := s.db.Create(&member).Error; err != nil {
		return nil, fmt.Errorf("add member to %s: %w", formationID, err)
	}

	if err := s.db.Preload("Employee").First(&member, "id = ?", member.ID).Error; err != nil {
		return nil, fmt.Errorf("add member to %s: %w", formationID, err)
	}
	return &member, nil
}

// UpdateMember changes role or bandwidth for an existing member.
func (s *FormationService) UpdateMember(formationID, employeeID uuid.UUID, req models.UpdateMemberRequest, actorID uuid.UUID) (*models.FormationMember, error) {
	var member models.FormationMember
	if err := s.db.First(&member, "formation_id = ? AND employee_id = ?", formationID, employeeID).Error; err != nil {
		return nil, fmt.Errorf("update member %s: %w", employeeID, ErrNotFound)
	}

	if req.Role != nil {
		if !models.ValidMemberRole(*req.Role) {
			return nil, fmt.Errorf("update member %s: invalid role %q: %w", employeeID, *req.Role, ErrValidation)
		}
		member.Role = *req.Role
	}
	if req.Bandwidth != nil {
		if !models.ValidBandwidth(*req.Bandwidth) {
			return nil, fmt.Errorf("update member %s: invalid bandwidth %q: %w", employeeID, *req.Bandwidth, ErrValidation)
		}
		member.Bandwidth = *req.Bandwidth
	}

	if err := s.db.Save(&member).Error; err != nil {
		return nil, fmt.Errorf("update member %s: %w", employeeID, err)
	}

	if err := s.db.Preload("Employee").First(&member, "id = ?", member.ID).Error; err != nil {
		return nil, fmt.Errorf("update member %s: %w", employeeID, err)
	}
	return &member, nil
}

// RemoveMember soft-deletes the membership row.
func (s *FormationService) RemoveMember(formationID, employeeID, actorID uuid.UUID) error {
	result := s.db.Where("formation_id = ? AND employee_id = ?", formationID, employeeID).
		Delete(&models.FormationMember{})
	if result.Error != nil {
		return fmt.Errorf("remove member %s: %w", employeeID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("remove member %s: %w", employeeID, ErrNotFound)
	}
	return nil
}

// LinkInitiative adds an initiative to the formation's capacity ledger.
// Linking is independent of ownership: the same initiative may be owned by
// one formation and allocated into several. After the write, members whose
// overall total now exceeds 100 are logged; the link itself is never
// rejected for capacity.
func (s *FormationService) LinkInitiative(formationID uuid.UUID, req models.LinkInitiativeRequest, actorID uuid.UUID) (*models.FormationInitiative, error) {
	if req.InitiativeID == uuid.Nil {
		return nil, fmt.Errorf("link initiative: initiativeId is required: %w", ErrValidation)
	}
	if req.AllocationPercentage < 0 || req.AllocationPercentage > 100 {
		return nil, fmt.Errorf("link initiative: allocation must be 0-100: %w", ErrValidation)
	}

	var exists int64
	s.db.Model(&models.Formation{}).Where("id = ?", formationID).Count(&exists)
	if exists == 0 {
		return nil, fmt.Errorf("link initiative to %s: %w", formationID, ErrNotFound)
	}
	s.db.Model(&models.Initiative{}).Where("id = ?", req.InitiativeID).Count(&exists)
	if exists == 0 {
		return nil, fmt.Errorf("link initiative %s: %w", req.InitiativeID, ErrNotFound)
	}

	var dup int64
	s.db.Model(&models.FormationInitiative{}).
		Where("formation_id = ? AND initiative_id = ?", formationID, req.InitiativeID).
		Count(&dup)
	if dup > 0 {
		return nil, fmt.Errorf("link initiative %s: already linked: %w", req.InitiativeID, ErrConflict)
	}

	link := models.FormationInitiative{
		FormationID:          formationID,
		InitiativeID:         req.InitiativeID,
		AllocationPercentage: req.AllocationPercentage,
	}

	if err := s.db.Create(&link).Error; err != nil {
		return nil, fmt.Errorf("link initiative %s: %w", req.InitiativeID, err)
	}

	s.warnOverAllocated(formationID)

	if err := s.db.Preload("Initiative").First(&link, "id = ?", link.ID).Error; err != nil {
		return nil, fmt.Errorf("link initiative %s: %w", req.InitiativeID, err)
	}
	return &link, nil
}

// UpdateLink changes the allocation percentage on an existing link.
func (s *FormationService) UpdateLink(formationID, initiativeID uuid.UUID, req models.UpdateLinkRequest, actorID uuid.UUID) (*models.FormationInitiative, error) {
	if req.AllocationPercentage < 0 || req.AllocationPercentage > 100 {
		return nil, fmt.Errorf("update link: allocation must be 0-100: %w", ErrValidation)
	}

	var link models.FormationInitiative
	if err := s.db.First(&link, "formation_id = ? AND initiative_id = ?", formationID, initiativeID).Error; err != nil {
		return nil, fmt.Errorf("update link %s: %w", initiativeID, ErrNotFound)
	}

	link.AllocationPercentage = req.AllocationPercentage
	if err := s.db.Save(&link).Error; err != nil {
		return nil, fmt.Errorf("update link %s: %w", initiativeID, err)
	}

	s.warnOverAllocated(formationID)

	if err := s.db.Preload("Initiative").First(&link, "id = ?", link.ID).Error; err != nil {
		return nil, fmt.Errorf("update link %s: %w", initiativeID, err)
	}
	return &link, nil
}

// UnlinkInitiative soft-deletes the allocation link.
func (s *FormationService) UnlinkInitiative(formationID, initiativeID, actorID uuid.UUID) error {
	result := s.db.Where("formation_id = ? AND initiative_id = ?", formationID, initiativeID).
		Delete(&models.FormationInitiative{})
	if result.Error != nil {
		return fmt.Errorf("unlink initiative %s: %w", initiativeID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("unlink initiative %s: %w", initiativeID, ErrNotFound)
	}
	return nil
}

// warnOverAllocated logs any member of the formation whose overall
// committed capacity now exceeds 100. Advisory only.
func (s *FormationService) warnOverAllocated(formationID uuid.UUID) {
	var members []models.FormationMember
	if err := s.db.Where("formation_id = ?", formationID).Find(&members).Error; err != nil {
		return
	}
	for _, member := range members {
		summary, err := s.allocation.ForEmployee(member.EmployeeID)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				s.log.Error("allocation check failed",
					zap.String("employeeId", member.EmployeeID.String()),
					zap.Error(err))
			}
			continue
		}
		if summary.IsOverAllocated {
			s.log.Warn("employee over-allocated",
				zap.String("employeeId", member.EmployeeID.String()),
				zap.String("formationId", formationID.String()),
				zap.Int("overallTotal", summary.OverallTotal))
		}
	}
}
