package services

import (
	"encoding/json"

	"github.com/atlasops/planner-api/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notification types
const (
	NotifyStatusChanged  = "status_changed"
	NotifyThreadResolved = "thread_resolved"
	NotifyReplyCreated   = "reply_created"
	NotifyMentioned      = "mentioned"
)

// NotifyService records notification rows for state transitions, replies,
// and mentions. Delivery to any external channel happens elsewhere; this
// service is fire-and-forget and never blocks or fails the command that
// triggered it.
type NotifyService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewNotifyService(db *gorm.DB, log *zap.Logger) *NotifyService {
	return &NotifyService{db: db, log: log}
}

// Send writes one notification row. Errors are logged, not returned.
func (s *NotifyService) Send(employeeID uuid.UUID, notifType, title, body string, metadata map[string]interface{}) {
	notif := models.Notification{
		EmployeeID: employeeID,
		Type:       notifType,
		Title:      title,
		Body:       body,
	}

	if metadata != nil {
		data, err := json.Marshal(metadata)
		if err == nil {
			str := string(data)
			notif.Metadata = &str
		}
	}

	if err := s.db.Create(&notif).Error; err != nil {
		s.log.Error("notification write failed",
			zap.String("employeeId", employeeID.String()),
			zap.String("type", notifType),
			zap.Error(err))
		return
	}

	s.log.Info("notification queued",
		zap.String("employeeId", employeeID.String()),
		zap.String("type", notifType))
}

// SendAsync fires Send on its own goroutine so the triggering command
// never waits on it.
func (s *NotifyService) SendAsync(employeeID uuid.UUID, notifType, title, body string, metadata map[string]interface{}) {
	go s.Send(employeeID, notifType, title, body, metadata)
}

// NotifyMentions fans out one notification per mentioned employee,
// skipping the actor mentioning themselves.
func (s *NotifyService) NotifyMentions(mentions models.UUIDList, actorID uuid.UUID, title, body string, metadata map[string]interface{}) {
	for _, employeeID := range mentions {
		if employeeID == actorID {
			continue
		}
		s.SendAsync(employeeID, NotifyMentioned, title, body, metadata)
	}
}

// List returns the employee's notifications newest-first with unread and
// total counts.
func (s *NotifyService) List(employeeID uuid.UUID, limit, offset int) ([]models.Notification, int64, int64, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var notifications []models.Notification
	if err := s.db.Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, 0, err
	}

	var total int64
	s.db.Model(&models.Notification{}).Where("employee_id = ?", employeeID).Count(&total)

	var unread int64
	s.db.Model(&models.Notification{}).Where("employee_id = ? AND read = ?", employeeID, false).Count(&unread)

	return notifications, total, unread, nil
}

// MarkRead marks a single notification as read.
func (s *NotifyService) MarkRead(id, employeeID uuid.UUID) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND employee_id = ?", id, employeeID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification as read.
func (s *NotifyService) MarkAllRead(employeeID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("employee_id = ? AND read = ?", employeeID, false).
		Update("read", true).Error
}
