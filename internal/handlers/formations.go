package handlers

import (
	"github.com/atlasops/planner-api/internal/middleware"
	"github.com/atlasops/planner-api/internal/models"
	"github.com/atlasops/planner-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FormationHandler struct {
	formations *services.FormationService
	allocation *services.AllocationService
}

func NewFormationHandler(formations *services.FormationService, allocation *services.AllocationService) *FormationHandler {
	return &FormationHandler{formations: formations, allocation: allocation}
}

func (h *FormationHandler) Create(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)

	var req models.CreateFormationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	formation, err := h.formations.Create(req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, formation)
}

func (h *FormationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid formation ID")
	}

	formation, err := h.formations.GetByIDWithDetails(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, formation)
}

func (h *FormationHandler) List(c *fiber.Ctx) error {
	formations, err := h.formations.List()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, formations)
}

func (h *FormationHandler) Update(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid formation ID")
	}

	var req models.UpdateFormationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	formation, err := h.formations.Update(id, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, formation)
}

func (h *FormationHandler) Delete(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid formation ID")
	}

	if err := h.formations.Delete(id, actorID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

// Members

func (h *FormationHandler) AddMember(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid formation ID")
	}

	var req models.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	member, err := h.formations.AddMember(id, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, member)
}

func (h *FormationHandler) UpdateMember(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid formation ID")
	}
	employeeID, err := uuid.Parse(c.Params("employeeId"))
	if err != nil {
		return badRequest(c, "Invalid employee ID")
	}

	var req models.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	member, err := h.formations.UpdateMember(id, employeeID, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, member)
}

func (h *FormationHandler) RemoveMember(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid formation ID")
	}
	employeeID, err := uuid.Parse(c.Params("employeeId"))
	if err != nil {
		return badRequest(c, "Invalid employee ID")
	}

	if err := h.formations.RemoveMember(id, employeeID, actorID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

// Initiative links

func (h *FormationHandler) LinkInitiative(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid formation ID")
	}

	var req models.LinkInitiativeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	link, err := h.formations.LinkInitiative(id, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, link)
}

func (h *FormationHandler) UpdateLink(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid formation ID")
	}
	initiativeID, err := uuid.Parse(c.Params("initiativeId"))
	if err != nil {
		return badRequest(c, "Invalid initiative ID")
	}

	var req models.UpdateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	link, err := h.formations.UpdateLink(id, initiativeID, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, link)
}

func (h *FormationHandler) UnlinkInitiative(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid formation ID")
	}
	initiativeID, err := uuid.Parse(c.Params("initiativeId"))
	if err != nil {
		return badRequest(c, "Invalid initiative ID")
	}

	if err := h.formations.UnlinkInitiative(id, initiativeID, actorID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

// GetAllocation reports an employee's committed capacity across all
// formations. Advisory snapshot, not an admission gate.
func (h *FormationHandler) GetAllocation(c *fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid employee ID")
	}

	summary, err := h.allocation.ForEmployee(employeeID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, summary)
}
