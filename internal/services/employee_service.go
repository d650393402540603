package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/company-tracker-api/internal/models"
	"github.com/yukikurage/company-tracker-api/internal/patch"
	"github.com/yukikurage/company-tracker-api/internal/repository"
)

var ErrEmployeeNotFound = errors.New("employee not found")

var employeeFields = patch.Table{
	patch.Of[uint64]("userId", "user_id", false),
	patch.Of[string]("position", "position", true),
	patch.Of[string]("status", "status", true),
	patch.Of[string]("notes", "notes", true),
}

// EmployeeService manages a company's employee records.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// CreateEmployeeInput represents parameters to create an employee record.
type CreateEmployeeInput struct {
	UserID   uint64
	Position *string
	Status   *string
	Notes    *string
}

func (s *EmployeeService) ListEmployees(companyID uint64) ([]models.Employee, error) {
	employees, err := s.employeeRepo.List(repository.CompanyScope(companyID))
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *EmployeeService) CreateEmployee(companyID uint64, input CreateEmployeeInput) (*models.Employee, error) {
	employee := &models.Employee{
		CompanyID: companyID,
		UserID:    input.UserID,
		Position:  input.Position,
		Status:    input.Status,
		Notes:     input.Notes,
	}
	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

func (s *EmployeeService) UpdateEmployee(companyID, employeeID uint64, body patch.Body) (*models.Employee, error) {
	return patchScoped[models.Employee](s.employeeRepo, repository.CompanyScope(companyID), employeeID, employeeFields, body, ErrEmployeeNotFound)
}

func (s *EmployeeService) DeleteEmployee(companyID, employeeID uint64) error {
	if err := s.employeeRepo.Delete(repository.CompanyScope(companyID), employeeID); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}
