package services

import (
	"fmt"

	"github.com/atlasops/planner-api/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultReplyLimit bounds GetReplies when the caller does not ask for a
// specific count.
const DefaultReplyLimit = 50

// ThreadService is the single writer for Thread and ThreadReply rows.
type ThreadService struct {
	db     *gorm.DB
	log    *zap.Logger
	notify *NotifyService
}

func NewThreadService(db *gorm.DB, log *zap.Logger, notify *NotifyService) *ThreadService {
	return &ThreadService{db: db, log: log, notify: notify}
}

// Create opens a thread on an initiative. Owner defaults to the acting
// employee; contributor and mention sets default to empty.
func (s *ThreadService) Create(req models.CreateThreadRequest, actorID uuid.UUID) (*models.Thread, error) {
	if req.InitiativeID == uuid.Nil {
		return nil, fmt.Errorf("create thread: initiativeId is required: %w", ErrValidation)
	}
	if req.Title == "" {
		return nil, fmt.Errorf("create thread: title is required: %w", ErrValidation)
	}
	if !models.ValidThreadShape(req.Shape) {
		return nil, fmt.Errorf("create thread: invalid shape %q: %w", req.Shape, ErrValidation)
	}

	var exists int64
	s.db.Model(&models.Initiative{}).Where("id = ?", req.InitiativeID).Count(&exists)
	if exists == 0 {
		return nil, fmt.Errorf("create thread on %s: %w", req.InitiativeID, ErrNotFound)
	}

	thread := models.Thread{
		InitiativeID: req.InitiativeID,
		Title:        req.Title,
		Body:         req.Body,
		Shape:        req.Shape,
		State:        models.ThreadOpen,
		OwnerID:      actorID,
		Contributors: req.Contributors,
		Mentions:     req.Mentions,
		Links:        req.Links,
	}
	if thread.Contributors == nil {
		thread.Contributors = models.UUIDList{}
	}
	if thread.Mentions == nil {
		thread.Mentions = models.UUIDList{}
	}
	if thread.Links == nil {
		thread.Links = models.StringList{}
	}

	if err := s.db.Create(&thread).Error; err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}

	s.notify.NotifyMentions(thread.Mentions, actorID,
		"You were mentioned",
		fmt.Sprintf("Mentioned in thread %q", thread.Title),
		map[string]interface{}{"threadId": thread.ID.String(), "initiativeId": thread.InitiativeID.String()})

	return s.GetByIDWithDetails(thread.ID)
}

// Update applies partial changes to an open thread.
func (s *ThreadService) Update(id uuid.UUID, req models.UpdateThreadRequest, actorID uuid.UUID) (*models.Thread, error) {
	var thread models.Thread
	if err := s.db.First(&thread, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("update thread %s: %w", id, ErrNotFound)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("update thread %s: title cannot be empty: %w", id, ErrValidation)
		}
		thread.Title = *req.Title
	}
	if req.Body != nil {
		thread.Body = *req.Body
	}
	if req.Shape != nil {
		if !models.ValidThreadShape(*req.Shape) {
			return nil, fmt.Errorf("update thread %s: invalid shape %q: %w", id, *req.Shape, ErrValidation)
		}
		thread.Shape = *req.Shape
	}
	if req.Contributors != nil {
		thread.Contributors = *req.Contributors
	}
	if req.Mentions != nil {
		// Notify only newly mentioned employees.
		for _, employeeID := range *req.Mentions {
			if !thread.Mentions.Contains(employeeID) && employeeID != actorID {
				s.notify.SendAsync(employeeID, NotifyMentioned,
					"You were mentioned",
					fmt.Sprintf("Mentioned in thread %q", thread.Title),
					map[string]interface{}{"threadId": thread.ID.String()})
			}
		}
		thread.Mentions = *req.Mentions
	}
	if req.Links != nil {
		thread.Links = *req.Links
	}

	if err := s.db.Save(&thread).Error; err != nil {
		return nil, fmt.Errorf("update thread %s: %w", id, err)
	}

	return s.GetByIDWithDetails(id)
}

// ChangeState moves the thread lifecycle. Resolving requires a resolution
// note, which is persisted on the thread; owner and contributors are
// notified.
func (s *ThreadService) ChangeState(id uuid.UUID, req models.ThreadStateRequest, actorID uuid.UUID) (*models.Thread, error) {
	if !models.ValidThreadState(req.NewValue) {
		return nil, fmt.Errorf("change thread state: invalid state %q: %w", req.NewValue, ErrValidation)
	}
	if req.NewValue == models.ThreadResolved && (req.Resolution == nil || *req.Resolution == "") {
		return nil, fmt.Errorf("change thread state: resolution is required to resolve: %w", ErrValidation)
	}

	var thread models.Thread
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&thread, "id = ?", id).Error; err != nil {
			return fmt.Errorf("change thread state %s: %w", id, ErrNotFound)
		}

		thread.State = req.NewValue
		if req.NewValue == models.ThreadResolved {
			thread.Resolution = req.Resolution
		}

		if err := tx.Save(&thread).Error; err != nil {
			return fmt.Errorf("change thread state %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.NewValue == models.ThreadResolved {
		recipients := append(models.UUIDList{thread.OwnerID}, thread.Contributors...)
		seen := map[uuid.UUID]bool{actorID: true}
		for _, employeeID := range recipients {
			if seen[employeeID] {
				continue
			}
			seen[employeeID] = true
			s.notify.SendAsync(employeeID, NotifyThreadResolved,
				"Thread resolved",
				fmt.Sprintf("%q was resolved", thread.Title),
				map[string]interface{}{"threadId": thread.ID.String()})
		}
	}

	return s.GetByIDWithDetails(id)
}

// Delete soft-deletes the thread; already-deleted threads come back as not
// found.
func (s *ThreadService) Delete(id, actorID uuid.UUID) error {
	result := s.db.Delete(&models.Thread{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete thread %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete thread %s: %w", id, ErrNotFound)
	}

	s.log.Info("thread deleted",
		zap.String("threadId", id.String()),
		zap.String("actorId", actorID.String()))
	return nil
}

// GetByIDWithDetails resolves the owner and initiative for display.
func (s *ThreadService) GetByIDWithDetails(id uuid.UUID) (*models.Thread, error) {
	var thread models.Thread
	if err := s.db.
		Preload("Owner").
		Preload("Initiative").
		First(&thread, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get thread %s: %w", id, ErrNotFound)
	}
	return &thread, nil
}

// List returns threads matching the filter, newest first.
func (s *ThreadService) List(filter models.ThreadFilter) ([]models.Thread, error) {
	query := s.db.Preload("Owner").Order("created_at DESC")

	if filter.InitiativeID != "" {
		query = query.Where("initiative_id = ?", filter.InitiativeID)
	}
	if filter.Shape != "" {
		query = query.Where("shape = ?", filter.Shape)
	}
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Contributor != "" {
		query = query.Where("contributors LIKE ?", "%"+filter.Contributor+"%")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR body LIKE ?", like, like)
	}

	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 50
	}
	query = query.Limit(limit)
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var threads []models.Thread
	if err := query.Find(&threads).Error; err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	return threads, nil
}

// CreateReply appends an immutable reply authored by the acting employee.
// Mentions are denormalized onto the reply and fanned out.
func (s *ThreadService) CreateReply(threadID uuid.UUID, req models.CreateReplyRequest, actorID uuid.UUID) (*models.ThreadReply, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("create reply: content is required: %w", ErrValidation)
	}

	var thread models.Thread
	if err := s.db.First(&thread, "id = ?", threadID).Error; err != nil {
		return nil, fmt.Errorf("create reply on %s: %w", threadID, ErrNotFound)
	}

	reply := models.ThreadReply{
		ThreadID: threadID,
		AuthorID: actorID,
		Content:  req.Content,
		Mentions: req.Mentions,
	}
	if reply.Mentions == nil {
		reply.Mentions = models.UUIDList{}
	}

	if err := s.db.Create(&reply).Error; err != nil {
		return nil, fmt.Errorf("create reply on %s: %w", threadID, err)
	}

	if thread.OwnerID != actorID {
		s.notify.SendAsync(thread.OwnerID, NotifyReplyCreated,
			"New reply",
			fmt.Sprintf("New reply on %q", thread.Title),
			map[string]interface{}{"threadId": threadID.String(), "replyId": reply.ID.String()})
	}
	s.notify.NotifyMentions(reply.Mentions, actorID,
		"You were mentioned",
		fmt.Sprintf("Mentioned in a reply on %q", thread.Title),
		map[string]interface{}{"threadId": threadID.String(), "replyId": reply.ID.String()})

	if err := s.db.Preload("Author").First(&reply, "id = ?", reply.ID).Error; err != nil {
		return nil, fmt.Errorf("create reply on %s: %w", threadID, err)
	}
	return &reply, nil
}

// GetReplies returns the most recent limit replies presented oldest-first.
// The newest-N window is fetched descending and reversed, so the caller
// always sees strict creation order.
func (s *ThreadService) GetReplies(threadID uuid.UUID, limit int) ([]models.ThreadReply, error) {
	var exists int64
	s.db.Model(&models.Thread{}).Where("id = ?", threadID).Count(&exists)
	if exists == 0 {
		return nil, fmt.Errorf("replies for %s: %w", threadID, ErrNotFound)
	}

	if limit < 1 || limit > 200 {
		limit = DefaultReplyLimit
	}

	var replies []models.ThreadReply
	if err := s.db.Preload("Author").
		Where("thread_id = ?", threadID).
		Order("created_at DESC").
		Limit(limit).
		Find(&replies).Error; err != nil {
		return nil, fmt.Errorf("replies for %s: %w", threadID, err)
	}

	for i, j := 0, len(replies)-1; i < j; i, j = i+1, j-1 {
		replies[i], replies[j] = replies[j], replies[i]
	}
	return replies, nil
}
