package services

import (
	"fmt"
	"time"

	"github.com/atlasops/planner-api/internal/models"
	"github.com/google/uuid"
)

// Todos live inside the Initiative aggregate; these methods are the only
// write path for them.

// AddTodo appends a todo to an initiative.
func (s *InitiativeService) AddTodo(initiativeID uuid.UUID, req models.CreateTodoRequest, actorID uuid.UUID) (*models.Todo, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("add todo: title is required: %w", ErrValidation)
	}

	var exists int64
	s.db.Model(&models.Initiative{}).Where("id = ?", initiativeID).Count(&exists)
	if exists == 0 {
		return nil, fmt.Errorf("add todo to %s: %w", initiativeID, ErrNotFound)
	}

	todo := models.Todo{
		InitiativeID: initiativeID,
		Title:        req.Title,
		Description:  req.Description,
		AssigneeID:   req.AssigneeID,
		Status:       models.TodoOpen,
		DueDate:      req.DueDate,
	}

	if err := s.db.Create(&todo).Error; err != nil {
		return nil, fmt.Errorf("add todo to %s: %w", initiativeID, err)
	}
	return &todo, nil
}

// UpdateTodo applies partial changes. Moving status to done stamps
// CompletedAt; moving it anywhere else clears it.
func (s *InitiativeService) UpdateTodo(initiativeID, todoID uuid.UUID, req models.UpdateTodoRequest, actorID uuid.UUID) (*models.Todo, error) {
	var todo models.Todo
	if err := s.db.First(&todo, "id = ? AND initiative_id = ?", todoID, initiativeID).Error; err != nil {
		return nil, fmt.Errorf("update todo %s: %w", todoID, ErrNotFound)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("update todo %s: title cannot be empty: %w", todoID, ErrValidation)
		}
		todo.Title = *req.Title
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.AssigneeID != nil {
		todo.AssigneeID = req.AssigneeID
	}
	if req.DueDate != nil {
		todo.DueDate = req.DueDate
	}
	if req.Status != nil {
		if !models.ValidTodoStatus(*req.Status) {
			return nil, fmt.Errorf("update todo %s: invalid status %q: %w", todoID, *req.Status, ErrValidation)
		}
		todo.Status = *req.Status
		if *req.Status == models.TodoDone {
			now := time.Now()
			todo.CompletedAt = &now
		} else {
			todo.CompletedAt = nil
		}
	}

	// Map-based update so a cleared CompletedAt is written as NULL.
	if err := s.db.Model(&todo).
		Updates(map[string]interface{}{
			"title":        todo.Title,
			"description":  todo.Description,
			"assignee_id":  todo.AssigneeID,
			"status":       todo.Status,
			"due_date":     todo.DueDate,
			"completed_at": todo.CompletedAt,
		}).Error; err != nil {
		return nil, fmt.Errorf("update todo %s: %w", todoID, err)
	}

	if err := s.db.Preload("Assignee").First(&todo, "id = ?", todoID).Error; err != nil {
		return nil, fmt.Errorf("update todo %s: %w", todoID, err)
	}
	return &todo, nil
}

// RemoveTodo soft-deletes a todo.
func (s *InitiativeService) RemoveTodo(initiativeID, todoID, actorID uuid.UUID) error {
	result := s.db.Where("initiative_id = ?", initiativeID).Delete(&models.Todo{}, "id = ?", todoID)
	if result.Error != nil {
		return fmt.Errorf("remove todo %s: %w", todoID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("remove todo %s: %w", todoID, ErrNotFound)
	}
	return nil
}

// ListTodos returns the initiative's live todos with assignees resolved.
func (s *InitiativeService) ListTodos(initiativeID uuid.UUID) ([]models.Todo, error) {
	var exists int64
	s.db.Model(&models.Initiative{}).Where("id = ?", initiativeID).Count(&exists)
	if exists == 0 {
		return nil, fmt.Errorf("list todos for %s: %w", initiativeID, ErrNotFound)
	}

	var todos []models.Todo
	if err := s.db.Preload("Assignee").
		Where("initiative_id = ?", initiativeID).
		Order("created_at ASC").
		Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos for %s: %w", initiativeID, err)
	}
	return todos, nil
}
