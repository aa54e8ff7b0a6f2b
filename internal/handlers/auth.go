package handlers

import (
	"github.com/atlasops/planner-api/internal/middleware"
	"github.com/atlasops/planner-api/internal/models"
	"github.com/atlasops/planner-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	employees *services.EmployeeService
}

func NewAuthHandler(employees *services.EmployeeService) *AuthHandler {
	return &AuthHandler{employees: employees}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	employee, err := h.employees.Register(req)
	if err != nil {
		return fail(c, err)
	}

	token, err := middleware.GenerateToken(employee.ID, employee.Email)
	if err != nil {
		return fail(c, err)
	}

	return created(c, models.AuthResponse{Token: token, Employee: *employee})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	employee, err := h.employees.Authenticate(req)
	if err != nil {
		// Do not leak whether the email exists.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid email or password",
		})
	}

	token, err := middleware.GenerateToken(employee.ID, employee.Email)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, models.AuthResponse{Token: token, Employee: *employee})
}

func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	employee, err := h.employees.GetByID(middleware.GetEmployeeID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, employee)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	employee, err := h.employees.UpdateProfile(middleware.GetEmployeeID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, employee)
}

func (h *AuthHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid employee ID")
	}

	summary, err := h.employees.Summary(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, summary)
}
