package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/company-tracker-api/internal/models"
	"github.com/yukikurage/company-tracker-api/internal/patch"
	"github.com/yukikurage/company-tracker-api/internal/repository"
)

var ErrProcessNotFound = errors.New("process not found")

var processFields = patch.Table{
	patch.Of[string]("name", "name", false),
	patch.Of[string]("description", "description", true),
	patch.Of[string]("status", "status", true),
	patch.Of[uint64]("ownerId", "owner_id", true),
}

// ProcessService manages business processes across the caller's companies.
type ProcessService struct {
	processRepo repository.ProcessRepository
	companies   *CompanyService
}

// NewProcessService creates a new ProcessService.
func NewProcessService(processRepo repository.ProcessRepository, companies *CompanyService) *ProcessService {
	return &ProcessService{
		processRepo: processRepo,
		companies:   companies,
	}
}

// CreateProcessInput represents parameters to create a process.
type CreateProcessInput struct {
	CompanyID   uint64
	Name        string
	Description *string
	Status      *string
	OwnerID     *uint64
}

// ListProcesses lists processes of every company the user belongs to, or of
// companyID alone when given.
func (s *ProcessService) ListProcesses(userID uint64, companyID *uint64) ([]models.Process, error) {
	scope, err := listScope(s.companies, userID, companyID)
	if err != nil {
		return nil, err
	}

	processes, err := s.processRepo.List(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	return processes, nil
}

func (s *ProcessService) CreateProcess(userID uint64, input CreateProcessInput) (*models.Process, error) {
	if err := s.companies.EnsureMember(input.CompanyID, userID); err != nil {
		return nil, err
	}

	process := &models.Process{
		CompanyID:   input.CompanyID,
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		OwnerID:     input.OwnerID,
	}
	if err := s.processRepo.Create(process); err != nil {
		return nil, fmt.Errorf("failed to create process: %w", err)
	}
	return process, nil
}

func (s *ProcessService) UpdateProcess(userID, processID uint64, body patch.Body) (*models.Process, error) {
	return patchScoped[models.Process](s.processRepo, repository.MemberScope(userID), processID, processFields, body, ErrProcessNotFound)
}

func (s *ProcessService) DeleteProcess(userID, processID uint64) error {
	if err := s.processRepo.Delete(repository.MemberScope(userID), processID); err != nil {
		return fmt.Errorf("failed to delete process: %w", err)
	}
	return nil
}

// listScope narrows a membership-wide listing to one company after checking
// the user belongs to it.
func listScope(companies *CompanyService, userID uint64, companyID *uint64) (repository.Scope, error) {
	if companyID == nil {
		return repository.MemberScope(userID), nil
	}
	if err := companies.EnsureMember(*companyID, userID); err != nil {
		return nil, err
	}
	return repository.CompanyScope(*companyID), nil
}
