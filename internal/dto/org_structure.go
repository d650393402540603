package dto

import "github.com/yukikurage/company-tracker-api/internal/models"

// DepartmentNode is a department nested under its division
type DepartmentNode struct {
	ID          uint64             `json:"id"`
	Type        models.OrgNodeKind `json:"type"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	DivisionID  uint64             `json:"divisionId"`
	ManagerID   *uint64            `json:"managerId"`
}

// DivisionNode is a division with its departments
type DivisionNode struct {
	ID          uint64             `json:"id"`
	Type        models.OrgNodeKind `json:"type"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	Departments []DepartmentNode   `json:"departments"`
}

// BuildOrgTree nests departments under their divisions. Departments whose
// division is not in divisions are dropped. Input order is preserved.
func BuildOrgTree(divisions, departments []models.OrgNode) []DivisionNode {
	byDivision := make(map[uint64][]DepartmentNode, len(divisions))
	for _, d := range departments {
		if d.DivisionID == nil {
			continue
		}
		byDivision[*d.DivisionID] = append(byDivision[*d.DivisionID], DepartmentNode{
			ID:          d.ID,
			Type:        models.OrgNodeDepartment,
			Name:        d.Name,
			Description: d.Description,
			DivisionID:  *d.DivisionID,
			ManagerID:   d.ManagerID,
		})
	}

	tree := make([]DivisionNode, len(divisions))
	for i, div := range divisions {
		children := byDivision[div.ID]
		if children == nil {
			children = []DepartmentNode{}
		}
		tree[i] = DivisionNode{
			ID:          div.ID,
			Type:        models.OrgNodeDivision,
			Name:        div.Name,
			Description: div.Description,
			Departments: children,
		}
	}
	return tree
}
