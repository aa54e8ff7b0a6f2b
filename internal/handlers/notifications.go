package handlers

import (
	"strconv"

	"github.com/atlasops/planner-api/internal/middleware"
	"github.com/atlasops/planner-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notify *services.NotifyService
}

func NewNotificationHandler(notify *services.NotifyService) *NotificationHandler {
	return &NotificationHandler{notify: notify}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	employeeID := middleware.GetEmployeeID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	notifications, total, unread, err := h.notify.List(employeeID, limit, offset)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    notifications,
		"total":   total,
		"unread":  unread,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	employeeID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid notification ID")
	}

	if err := h.notify.MarkRead(id, employeeID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"read": true})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	employeeID := middleware.GetEmployeeID(c)

	if err := h.notify.MarkAllRead(employeeID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"read": true})
}
