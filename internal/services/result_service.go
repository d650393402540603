package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/company-tracker-api/internal/models"
	"github.com/yukikurage/company-tracker-api/internal/patch"
	"github.com/yukikurage/company-tracker-api/internal/repository"
)

var ErrResultNotFound = errors.New("result not found")

var resultFields = patch.Table{
	patch.Of[string]("name", "name", false),
	patch.Of[string]("description", "description", true),
	patch.Of[string]("status", "status", true),
	patch.Of[int]("completion", "completion", false),
	patch.Of[time.Time]("deadline", "deadline", true),
	patch.Of[uint64]("assigneeId", "assignee_id", true),
	patch.Of[uint64]("reporterId", "reporter_id", true),
	patch.Of[string]("expectedOutcome", "expected_outcome", true),
}

// ResultService manages results and their ordered sub-results.
type ResultService struct {
	resultRepo repository.ResultRepository
}

// NewResultService creates a new ResultService.
func NewResultService(resultRepo repository.ResultRepository) *ResultService {
	return &ResultService{resultRepo: resultRepo}
}

// SubResultInput is one entry of a sub-result list. Its position in the
// list becomes its order.
type SubResultInput struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// CreateResultInput represents parameters to create a result.
type CreateResultInput struct {
	Name            string
	Description     *string
	Status          *string
	Completion      int
	Deadline        *time.Time
	AssigneeID      *uint64
	ReporterID      *uint64
	ExpectedOutcome *string
	SubResults      []SubResultInput
}

func (s *ResultService) ListResults(companyID uint64) ([]models.Result, error) {
	results, err := s.resultRepo.List(repository.CompanyScope(companyID))
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}

func (s *ResultService) CreateResult(companyID uint64, input CreateResultInput) (*models.Result, error) {
	result := &models.Result{
		CompanyID:       companyID,
		Name:            input.Name,
		Description:     input.Description,
		Status:          input.Status,
		Completion:      input.Completion,
		Deadline:        input.Deadline,
		AssigneeID:      input.AssigneeID,
		ReporterID:      input.ReporterID,
		ExpectedOutcome: input.ExpectedOutcome,
		SubResults:      toSubResultRows(input.SubResults),
	}
	if err := s.resultRepo.Create(result); err != nil {
		return nil, fmt.Errorf("failed to create result: %w", err)
	}
	return result, nil
}

// UpdateResult applies a partial update. A present subResults field
// replaces the whole list; null clears it.
func (s *ResultService) UpdateResult(companyID, resultID uint64, body patch.Body) (*models.Result, error) {
	scope := repository.CompanyScope(companyID)

	updates, err := resultFields.Updates(body)
	if err != nil {
		return nil, err
	}

	var subResults []models.SubResult
	if body.Has("subResults") {
		var inputs []SubResultInput
		if err := body.Decode("subResults", &inputs); err != nil {
			return nil, err
		}
		subResults = toSubResultRows(inputs)
	}

	if err := s.resultRepo.UpdateWithSubResults(scope, resultID, updates, subResults); err != nil {
		return nil, fmt.Errorf("failed to update result: %w", err)
	}
	return findScoped[models.Result](s.resultRepo, scope, resultID, ErrResultNotFound)
}

func (s *ResultService) DeleteResult(companyID, resultID uint64) error {
	if err := s.resultRepo.Delete(repository.CompanyScope(companyID), resultID); err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	return nil
}

// toSubResultRows always returns a non-nil slice.
func toSubResultRows(inputs []SubResultInput) []models.SubResult {
	rows := make([]models.SubResult, len(inputs))
	for i, input := range inputs {
		rows[i] = models.SubResult{
			Name:      input.Name,
			Completed: input.Completed,
			Order:     i,
		}
	}
	return rows
}
