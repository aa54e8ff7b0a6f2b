package services

import (
	"fmt"

	"github.com/atlasops/planner-api/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EmployeeService owns the employee directory and is the narrow read model
// every other service resolves owners, assignees, and members through.
type EmployeeService struct {
	db *gorm.DB
}

func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{db: db}
}

// Register creates a directory entry with a hashed credential.
func (s *EmployeeService) Register(req models.RegisterRequest) (*models.Employee, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("register: email and password are required: %w", ErrValidation)
	}

	var existing models.Employee
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("register: email already registered: %w", ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	employee := models.Employee{
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
	}

	if err := s.db.Create(&employee).Error; err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &employee, nil
}

// Authenticate checks the credential and returns the employee on success.
func (s *EmployeeService) Authenticate(req models.LoginRequest) (*models.Employee, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("login: email and password are required: %w", ErrValidation)
	}

	var employee models.Employee
	if err := s.db.Where("email = ?", req.Email).First(&employee).Error; err != nil {
		return nil, fmt.Errorf("login: %w", ErrNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("login: invalid credentials: %w", ErrValidation)
	}
	return &employee, nil
}

// GetByID returns a live employee.
func (s *EmployeeService) GetByID(id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.First(&employee, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get employee %s: %w", id, ErrNotFound)
	}
	return &employee, nil
}

// UpdateProfile applies partial profile changes for the acting employee.
func (s *EmployeeService) UpdateProfile(id uuid.UUID, req models.UpdateProfileRequest) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.First(&employee, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("update profile %s: %w", id, ErrNotFound)
	}

	if req.DisplayName != nil {
		employee.DisplayName = *req.DisplayName
	}
	if req.Title != nil {
		employee.Title = *req.Title
	}
	if req.AvatarURL != nil {
		employee.AvatarURL = *req.AvatarURL
	}
	if req.Name != nil {
		employee.Name = *req.Name
	}

	if err := s.db.Save(&employee).Error; err != nil {
		return nil, fmt.Errorf("update profile %s: %w", id, err)
	}
	return &employee, nil
}

// Summary resolves the narrow display record for an employee id.
func (s *EmployeeService) Summary(id uuid.UUID) (*models.EmployeeSummary, error) {
	employee, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	summary := employee.Summary()
	return &summary, nil
}
