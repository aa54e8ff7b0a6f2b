package handlers

import (
	"github.com/atlasops/planner-api/internal/middleware"
	"github.com/atlasops/planner-api/internal/models"
	"github.com/atlasops/planner-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)

	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	product, err := h.products.Create(req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, product)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	product, err := h.products.GetByIDWithDetails(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, product)
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	var filter models.ProductFilter
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c, "Invalid filter")
	}

	products, err := h.products.List(filter)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, products)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	var req models.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	product, err := h.products.Update(id, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	if err := h.products.Delete(id, actorID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

// Milestones

func (h *ProductHandler) AddMilestone(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	var req models.CreateMilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	milestone, err := h.products.AddMilestone(id, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, milestone)
}

func (h *ProductHandler) UpdateMilestone(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	milestoneID, err := uuid.Parse(c.Params("milestoneId"))
	if err != nil {
		return badRequest(c, "Invalid milestone ID")
	}

	var req models.UpdateMilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	milestone, err := h.products.UpdateMilestone(id, milestoneID, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, milestone)
}

func (h *ProductHandler) RemoveMilestone(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	milestoneID, err := uuid.Parse(c.Params("milestoneId"))
	if err != nil {
		return badRequest(c, "Invalid milestone ID")
	}

	if err := h.products.RemoveMilestone(id, milestoneID, actorID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

// Docs

func (h *ProductHandler) AddDoc(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	var req models.CreateProductDocRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	doc, err := h.products.AddDoc(id, req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, doc)
}

func (h *ProductHandler) RemoveDoc(c *fiber.Ctx) error {
	actorID := middleware.GetEmployeeID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	docID, err := uuid.Parse(c.Params("docId"))
	if err != nil {
		return badRequest(c, "Invalid doc ID")
	}

	if err := h.products.RemoveDoc(id, docID, actorID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}
