package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/company-tracker-api/internal/models"
	"github.com/yukikurage/company-tracker-api/internal/patch"
	"github.com/yukikurage/company-tracker-api/internal/repository"
)

var (
	ErrOrgNodeNotFound    = errors.New("org structure node not found")
	ErrDivisionNotFound   = errors.New("division not found")
	ErrInvalidNodeType    = errors.New("type must be division or department")
	ErrDivisionIDRequired = errors.New("divisionId is required for departments")
)

var divisionFields = patch.Table{
	patch.Of[string]("name", "name", false),
	patch.Of[string]("description", "description", true),
}

var departmentFields = patch.Table{
	patch.Of[string]("name", "name", false),
	patch.Of[string]("description", "description", true),
	patch.Of[uint64]("divisionId", "division_id", false),
	patch.Of[uint64]("managerId", "manager_id", true),
}

// OrgStructureService manages the division/department tree of a company.
type OrgStructureService struct {
	nodeRepo repository.OrgNodeRepository
}

// NewOrgStructureService creates a new OrgStructureService.
func NewOrgStructureService(nodeRepo repository.OrgNodeRepository) *OrgStructureService {
	return &OrgStructureService{nodeRepo: nodeRepo}
}

// CreateOrgNodeInput represents parameters to create a division or department.
type CreateOrgNodeInput struct {
	Type        string
	Name        string
	Description *string
	DivisionID  *uint64
	ManagerID   *uint64
}

// ListOrgStructure returns divisions and departments as two flat lists.
func (s *OrgStructureService) ListOrgStructure(companyID uint64) ([]models.OrgNode, []models.OrgNode, error) {
	scope := repository.CompanyScope(companyID)

	divisions, err := s.nodeRepo.ListByKind(scope, models.OrgNodeDivision)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list divisions: %w", err)
	}
	departments, err := s.nodeRepo.ListByKind(scope, models.OrgNodeDepartment)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return divisions, departments, nil
}

// CreateOrgNode creates a division or a department depending on input.Type.
func (s *OrgStructureService) CreateOrgNode(companyID uint64, input CreateOrgNodeInput) (*models.OrgNode, error) {
	node := &models.OrgNode{
		CompanyID:   companyID,
		Name:        input.Name,
		Description: input.Description,
	}

	switch models.OrgNodeKind(input.Type) {
	case models.OrgNodeDivision:
		node.Kind = models.OrgNodeDivision
	case models.OrgNodeDepartment:
		if input.DivisionID == nil {
			return nil, ErrDivisionIDRequired
		}
		if err := s.ensureDivision(companyID, *input.DivisionID); err != nil {
			return nil, err
		}
		node.Kind = models.OrgNodeDepartment
		node.DivisionID = input.DivisionID
		node.ManagerID = input.ManagerID
	default:
		return nil, ErrInvalidNodeType
	}

	if err := s.nodeRepo.Create(node); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", node.Kind, err)
	}
	return node, nil
}

// UpdateOrgNode applies a partial update using the fields of the node's kind.
func (s *OrgStructureService) UpdateOrgNode(companyID, nodeID uint64, body patch.Body) (*models.OrgNode, error) {
	scope := repository.CompanyScope(companyID)

	node, err := findScoped[models.OrgNode](s.nodeRepo, scope, nodeID, ErrOrgNodeNotFound)
	if err != nil {
		return nil, err
	}

	fields := divisionFields
	if node.Kind == models.OrgNodeDepartment {
		fields = departmentFields
		if body.Has("divisionId") && !body.IsNull("divisionId") {
			var divisionID uint64
			if err := body.Decode("divisionId", &divisionID); err != nil {
				return nil, err
			}
			if err := s.ensureDivision(companyID, divisionID); err != nil {
				return nil, err
			}
		}
	}

	return patchScoped[models.OrgNode](s.nodeRepo, scope, nodeID, fields, body, ErrOrgNodeNotFound)
}

// DeleteOrgNode deletes a department, or a division along with its
// departments. Unknown ids are ignored.
func (s *OrgStructureService) DeleteOrgNode(companyID, nodeID uint64) error {
	scope := repository.CompanyScope(companyID)

	node, err := findScoped[models.OrgNode](s.nodeRepo, scope, nodeID, ErrOrgNodeNotFound)
	if errors.Is(err, ErrOrgNodeNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if node.Kind == models.OrgNodeDivision {
		err = s.nodeRepo.DeleteDivision(scope, nodeID)
	} else {
		err = s.nodeRepo.Delete(scope, nodeID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", node.Kind, err)
	}
	return nil
}

func (s *OrgStructureService) ensureDivision(companyID, divisionID uint64) error {
	division, err := findScoped[models.OrgNode](s.nodeRepo, repository.CompanyScope(companyID), divisionID, ErrDivisionNotFound)
	if err != nil {
		return err
	}
	if division.Kind != models.OrgNodeDivision {
		return ErrDivisionNotFound
	}
	return nil
}
