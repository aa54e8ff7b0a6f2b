package handlers

import (
	"strconv"

	"github.com/atlasops/planner-api/internal/middleware"
	"github.com/atlasops/planner-api/internal/models"
	"github.com/atlasops/planner-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ThreadHandler struct {
	threads *services.ThreadService
}

func NewThreadHandler(threads *services.ThreadService) *ThreadHandler {
	return &ThreadHandler{threads: threads}
}

func (h *ThreadHandler) Create(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)

	var req models.CreateThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	thread, err := h.threads.Create(req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, thread)
}

func (h *ThreadHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid thread ID")
	}

	thread, err := h.threads.GetByIDWithDetails(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, thread)
}

func (h *ThreadHandler) List(c *fiber.Ctx) error {
	var filter models.ThreadFilter
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c, "Invalid filter")
	}

	threads, err := h.threads.List(filter)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, threads)
}

func (h *ThreadHandler) Update(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid thread ID")
	}

	var req models.UpdateThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	thread, err := h.threads.Update(id, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, thread)
}

func (h *ThreadHandler) ChangeState(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid thread ID")
	}

	var req models.ThreadStateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.NewValue == "" {
		return badRequest(c, "newValue is required")
	}

	thread, err := h.threads.ChangeState(id, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, thread)
}

func (h *ThreadHandler) Delete(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid thread ID")
	}

	if err := h.threads.Delete(id, actorID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

func (h *ThreadHandler) CreateReply(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid thread ID")
	}

	var req models.CreateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	reply, err := h.threads.CreateReply(id, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, reply)
}

func (h *ThreadHandler) GetReplies(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid thread ID")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	replies, err := h.threads.GetReplies(id, limit)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, replies)
}
