package services

import (
	"fmt"

	"github.com/atlasops/planner-api/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InitiativeService is the single writer for Initiative and Todo rows.
type InitiativeService struct {
	db     *gorm.DB
	log    *zap.Logger
	notify *NotifyService
}

func NewInitiativeService(db *gorm.DB, log *zap.Logger, notify *NotifyService) *InitiativeService {
	return &InitiativeService{db: db, log: log, notify: notify}
}

// Create makes a new initiative owned by the acting employee. Stage
// defaults to shaping, status to active, state to on_track.
func (s *InitiativeService) Create(req models.CreateInitiativeRequest, actorID uuid.UUID) (*models.Initiative, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("create initiative: title is required: %w", ErrValidation)
	}

	initiative := models.Initiative{
		Title:           req.Title,
		Intent:          req.Intent,
		SuccessCriteria: req.SuccessCriteria,
		OwnerID:         actorID,
		FormationID:     req.FormationID,
		MilestoneID:     req.MilestoneID,
		Stage:           models.StageShaping,
		Status:          models.StatusActive,
		State:           models.StateOnTrack,
		Horizon:         req.Horizon,
		ContextLinks:    req.ContextLinks,
	}

	if err := s.db.Create(&initiative).Error; err != nil {
		return nil, fmt.Errorf("create initiative: %w", err)
	}

	return s.GetByIDWithDetails(initiative.ID)
}

// Update applies the whitelisted mutable fields and returns the refreshed
// entity with resolved associations.
func (s *InitiativeService) Update(id uuid.UUID, req models.UpdateInitiativeRequest, actorID uuid.UUID) (*models.Initiative, error) {
	var initiative models.Initiative
	if err := s.db.First(&initiative, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("update initiative %s: %w", id, ErrNotFound)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("update initiative %s: title cannot be empty: %w", id, ErrValidation)
		}
		initiative.Title = *req.Title
	}
	if req.Intent != nil {
		initiative.Intent = *req.Intent
	}
	if req.SuccessCriteria != nil {
		initiative.SuccessCriteria = *req.SuccessCriteria
	}
	if req.OwnerID != nil {
		initiative.OwnerID = *req.OwnerID
	}
	if req.FormationID != nil {
		initiative.FormationID = req.FormationID
	}
	if req.MilestoneID != nil {
		initiative.MilestoneID = req.MilestoneID
	}
	if req.Horizon != nil {
		initiative.Horizon = req.Horizon
	}
	if req.ContextLinks != nil {
		initiative.ContextLinks = *req.ContextLinks
	}
	if req.PausedReason != nil {
		initiative.PausedReason = req.PausedReason
	}
	if req.AbandonedReason != nil {
		initiative.AbandonedReason = req.AbandonedReason
	}
	if req.ShippedNotes != nil {
		initiative.ShippedNotes = req.ShippedNotes
	}

	if err := s.db.Save(&initiative).Error; err != nil {
		return nil, fmt.Errorf("update initiative %s: %w", id, err)
	}

	return s.GetByIDWithDetails(id)
}

// ChangeStage sets the delivery stage. The move is not restricted to
// forward progression, but it is validated and audited.
func (s *InitiativeService) ChangeStage(id uuid.UUID, req models.TransitionRequest, actorID uuid.UUID) (*models.Initiative, error) {
	if !models.ValidStage(req.NewValue) {
		return nil, fmt.Errorf("change stage: invalid stage %q: %w", req.NewValue, ErrValidation)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var initiative models.Initiative
		if err := tx.First(&initiative, "id = ?", id).Error; err != nil {
			return fmt.Errorf("change stage %s: %w", id, ErrNotFound)
		}

		from := initiative.Stage
		initiative.Stage = req.NewValue
		if err := tx.Save(&initiative).Error; err != nil {
			return fmt.Errorf("change stage %s: %w", id, err)
		}

		return recordTransition(tx, id, actorID, models.ChannelStage, from, req.NewValue, req.Reason, req.Notes)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByIDWithDetails(id)
}

// ChangeStatus sets the commitment status. Pausing or abandoning retains
// the given reason; returning to active clears any prior reason so a stale
// value never survives a different transition. Shipping stores the notes.
func (s *InitiativeService) ChangeStatus(id uuid.UUID, req models.TransitionRequest, actorID uuid.UUID) (*models.Initiative, error) {
	if !models.ValidStatus(req.NewValue) {
		return nil, fmt.Errorf("change status: invalid status %q: %w", req.NewValue, ErrValidation)
	}

	var ownerID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var initiative models.Initiative
		if err := tx.First(&initiative, "id = ?", id).Error; err != nil {
			return fmt.Errorf("change status %s: %w", id, ErrNotFound)
		}

		from := initiative.Status
		initiative.Status = req.NewValue
		ownerID = initiative.OwnerID

		switch req.NewValue {
		case models.StatusPaused:
			initiative.PausedReason = req.Reason
		case models.StatusAbandoned:
			initiative.AbandonedReason = req.Reason
		case models.StatusShipped:
			initiative.ShippedNotes = req.Notes
		case models.StatusActive:
			initiative.PausedReason = nil
			initiative.AbandonedReason = nil
		}

		// Map-based update so cleared reason fields are written as NULL
		// rather than skipped as zero values.
		if err := tx.Model(&initiative).
			Updates(map[string]interface{}{
				"status":           initiative.Status,
				"paused_reason":    initiative.PausedReason,
				"abandoned_reason": initiative.AbandonedReason,
				"shipped_notes":    initiative.ShippedNotes,
			}).Error; err != nil {
			return fmt.Errorf("change status %s: %w", id, err)
		}

		return recordTransition(tx, id, actorID, models.ChannelStatus, from, req.NewValue, req.Reason, req.Notes)
	})
	if err != nil {
		return nil, err
	}

	result, err := s.GetByIDWithDetails(id)
	if err != nil {
		return nil, err
	}

	if ownerID != actorID {
		s.notify.SendAsync(ownerID, NotifyStatusChanged,
			"Initiative status changed",
			fmt.Sprintf("%q is now %s", result.Title, req.NewValue),
			map[string]interface{}{"initiativeId": id.String(), "status": req.NewValue})
	}

	return result, nil
}

// ChangeState sets the operational-health channel. Same contract shape as
// ChangeStatus but independent of it.
func (s *InitiativeService) ChangeState(id uuid.UUID, req models.TransitionRequest, actorID uuid.UUID) (*models.Initiative, error) {
	if !models.ValidState(req.NewValue) {
		return nil, fmt.Errorf("change state: invalid state %q: %w", req.NewValue, ErrValidation)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var initiative models.Initiative
		if err := tx.First(&initiative, "id = ?", id).Error; err != nil {
			return fmt.Errorf("change state %s: %w", id, ErrNotFound)
		}

		from := initiative.State
		initiative.State = req.NewValue
		if err := tx.Save(&initiative).Error; err != nil {
			return fmt.Errorf("change state %s: %w", id, err)
		}

		return recordTransition(tx, id, actorID, models.ChannelState, from, req.NewValue, req.Reason, req.Notes)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByIDWithDetails(id)
}

// Delete soft-deletes the initiative. Deleting an already-deleted row is a
// not-found outcome, never a second success, and never resurrects the row.
func (s *InitiativeService) Delete(id, actorID uuid.UUID) error {
	result := s.db.Delete(&models.Initiative{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete initiative %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete initiative %s: %w", id, ErrNotFound)
	}

	s.log.Info("initiative deleted",
		zap.String("initiativeId", id.String()),
		zap.String("actorId", actorID.String()))
	return nil
}

// GetByIDWithDetails resolves owner, formation, milestone, and todos for
// display. Soft-deleted rows are invisible.
func (s *InitiativeService) GetByIDWithDetails(id uuid.UUID) (*models.Initiative, error) {
	var initiative models.Initiative
	if err := s.db.
		Preload("Owner").
		Preload("Formation").
		Preload("Milestone").
		Preload("Todos").
		First(&initiative, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get initiative %s: %w", id, ErrNotFound)
	}
	return &initiative, nil
}

// List returns initiatives matching the filter, newest first.
func (s *InitiativeService) List(filter models.InitiativeFilter) ([]models.Initiative, error) {
	query := s.db.Preload("Owner").Preload("Formation").Order("created_at DESC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Stage != "" {
		query = query.Where("stage = ?", filter.Stage)
	}
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.FormationID != "" {
		query = query.Where("formation_id = ?", filter.FormationID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR intent LIKE ?", like, like)
	}

	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 50
	}
	query = query.Limit(limit)
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var initiatives []models.Initiative
	if err := query.Find(&initiatives).Error; err != nil {
		return nil, fmt.Errorf("list initiatives: %w", err)
	}
	return initiatives, nil
}

// Transitions returns the audit trail for one initiative, newest first.
func (s *InitiativeService) Transitions(id uuid.UUID) ([]models.InitiativeTransition, error) {
	var exists int64
	s.db.Model(&models.Initiative{}).Where("id = ?", id).Count(&exists)
	if exists == 0 {
		return nil, fmt.Errorf("transitions for %s: %w", id, ErrNotFound)
	}

	var transitions []models.InitiativeTransition
	if err := s.db.Preload("Actor").
		Where("initiative_id = ?", id).
		Order("created_at DESC").
		Find(&transitions).Error; err != nil {
		return nil, fmt.Errorf("transitions for %s: %w", id, err)
	}
	return transitions, nil
}

func recordTransition(tx *gorm.DB, initiativeID, actorID uuid.UUID, channel, from, to string, reason, notes *string) error {
	transition := models.InitiativeTransition{
		InitiativeID: initiativeID,
		ActorID:      actorID,
		Channel:      channel,
		FromValue:    from,
		ToValue:      to,
		Reason:       reason,
		Notes:        notes,
	}
	if err := tx.Create(&transition).Error; err != nil {
		return fmt.Errorf("record %s transition: %w", channel, err)
	}
	return nil
}
