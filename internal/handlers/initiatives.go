package handlers

import (
	"github.com/atlasops/planner-api/internal/middleware"
	"github.com/atlasops/planner-api/internal/models"
	"github.com/atlasops/planner-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InitiativeHandler struct {
	initiatives *services.InitiativeService
}

func NewInitiativeHandler(initiatives *services.InitiativeService) *InitiativeHandler {
	return &InitiativeHandler{initiatives: initiatives}
}

func (h *InitiativeHandler) Create(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)

	var req models.CreateInitiativeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	initiative, err := h.initiatives.Create(req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, initiative)
}

func (h *InitiativeHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid initiative ID")
	}

	initiative, err := h.initiatives.GetByIDWithDetails(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, initiative)
}

func (h *InitiativeHandler) List(c *fiber.Ctx) error {
	var filter models.InitiativeFilter
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c, "Invalid filter")
	}

	initiatives, err := h.initiatives.List(filter)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, initiatives)
}

func (h *InitiativeHandler) Update(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid initiative ID")
	}

	var req models.UpdateInitiativeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	initiative, err := h.initiatives.Update(id, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, initiative)
}

func (h *InitiativeHandler) ChangeStage(c *fiber.Ctx) error {
	return h.transition(c, h.initiatives.ChangeStage)
}

func (h *InitiativeHandler) ChangeStatus(c *fiber.Ctx) error {
	return h.transition(c, h.initiatives.ChangeStatus)
}

func (h *InitiativeHandler) ChangeState(c *fiber.Ctx) error {
	return h.transition(c, h.initiatives.ChangeState)
}

func (h *InitiativeHandler) transition(c *fiber.Ctx, apply func(uuid.UUID, models.TransitionRequest, uuid.UUID) (*models.Initiative, error)) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid initiative ID")
	}

	var req models.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.NewValue == "" {
		return badRequest(c, "newValue is required")
	}

	initiative, err := apply(id, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, initiative)
}

func (h *InitiativeHandler) Delete(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid initiative ID")
	}

	if err := h.initiatives.Delete(id, actorID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

func (h *InitiativeHandler) Transitions(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid initiative ID")
	}

	transitions, err := h.initiatives.Transitions(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, transitions)
}

// Todos

func (h *InitiativeHandler) AddTodo(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid initiative ID")
	}

	var req models.CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	todo, err := h.initiatives.AddTodo(id, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, todo)
}

func (h *InitiativeHandler) UpdateTodo(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid initiative ID")
	}
	todoID, err := uuid.Parse(c.Params("todoId"))
	if err != nil {
		return badRequest(c, "Invalid todo ID")
	}

	var req models.UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	todo, err := h.initiatives.UpdateTodo(id, todoID, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, todo)
}

func (h *InitiativeHandler) RemoveTodo(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid initiative ID")
	}
	todoID, err := uuid.Parse(c.Params("todoId"))
	if err != nil {
		return badRequest(c, "Invalid todo ID")
	}

	if err := h.initiatives.RemoveTodo(id, todoID, actorID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

func (h *InitiativeHandler) ListTodos(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid initiative ID")
	}

	todos, err := h.initiatives.ListTodos(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, todos)
}
