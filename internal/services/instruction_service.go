package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/company-tracker-api/internal/models"
	"github.com/yukikurage/company-tracker-api/internal/patch"
	"github.com/yukikurage/company-tracker-api/internal/repository"
)

var ErrInstructionNotFound = errors.New("instruction not found")

var instructionFields = patch.Table{
	patch.Of[string]("title", "title", false),
	patch.Of[string]("content", "content", true),
	patch.Of[uint64]("departmentId", "department_id", true),
}

// InstructionService manages instructions and their access lists.
type InstructionService struct {
	instructionRepo repository.InstructionRepository
	companies       *CompanyService
}

// NewInstructionService creates a new InstructionService.
func NewInstructionService(instructionRepo repository.InstructionRepository, companies *CompanyService) *InstructionService {
	return &InstructionService{
		instructionRepo: instructionRepo,
		companies:       companies,
	}
}

// AccessEntry grants one user a level of access to an instruction.
type AccessEntry struct {
	UserID      uint64
	AccessLevel string
}

// CreateInstructionInput represents parameters to create an instruction.
type CreateInstructionInput struct {
	CompanyID    uint64
	Title        string
	Content      *string
	DepartmentID *uint64
	Access       []AccessEntry
}

func (s *InstructionService) ListInstructions(userID uint64, companyID *uint64) ([]models.Instruction, error) {
	scope, err := listScope(s.companies, userID, companyID)
	if err != nil {
		return nil, err
	}

	instructions, err := s.instructionRepo.List(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructions: %w", err)
	}
	return instructions, nil
}

func (s *InstructionService) CreateInstruction(userID uint64, input CreateInstructionInput) (*models.Instruction, error) {
	if err := s.companies.EnsureMember(input.CompanyID, userID); err != nil {
		return nil, err
	}

	instruction := &models.Instruction{
		CompanyID:    input.CompanyID,
		Title:        input.Title,
		Content:      input.Content,
		DepartmentID: input.DepartmentID,
		CreatedBy:    userID,
		Access:       toAccessRows(input.Access),
	}
	if err := s.instructionRepo.Create(instruction); err != nil {
		return nil, fmt.Errorf("failed to create instruction: %w", err)
	}
	return instruction, nil
}

// UpdateInstruction applies a partial update. A present access field
// replaces the whole access list; null clears it.
func (s *InstructionService) UpdateInstruction(userID, instructionID uint64, body patch.Body) (*models.Instruction, error) {
	scope := repository.MemberScope(userID)

	updates, err := instructionFields.Updates(body)
	if err != nil {
		return nil, err
	}

	var access []models.InstructionAccess
	if body.Has("access") {
		if err := body.Decode("access", &access); err != nil {
			return nil, err
		}
		if access == nil {
			access = []models.InstructionAccess{}
		}
	}

	if err := s.instructionRepo.UpdateWithAccess(scope, instructionID, updates, access); err != nil {
		return nil, fmt.Errorf("failed to update instruction: %w", err)
	}
	return findScoped[models.Instruction](s.instructionRepo, scope, instructionID, ErrInstructionNotFound)
}

func (s *InstructionService) DeleteInstruction(userID, instructionID uint64) error {
	if err := s.instructionRepo.Delete(repository.MemberScope(userID), instructionID); err != nil {
		return fmt.Errorf("failed to delete instruction: %w", err)
	}
	return nil
}

func toAccessRows(entries []AccessEntry) []models.InstructionAccess {
	rows := make([]models.InstructionAccess, len(entries))
	for i, entry := range entries {
		rows[i] = models.InstructionAccess{
			UserID:      entry.UserID,
			AccessLevel: entry.AccessLevel,
		}
	}
	return rows
}
