package models

import "time"

type OrgNodeKind string

const (
	OrgNodeDivision   OrgNodeKind = "division"
	OrgNodeDepartment OrgNodeKind = "department"
)

// OrgNode is either a division or a department. Kind is fixed at creation.
// Departments always carry a DivisionID; divisions never do.
type OrgNode struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	CompanyID   uint64      `gorm:"not null;index" json:"companyId"`
	Kind        OrgNodeKind `gorm:"type:varchar(20);not null" json:"type"`
	Name        string      `gorm:"type:varchar(255);not null" json:"name"`
	Description *string     `gorm:"type:text" json:"description"`
	DivisionID  *uint64     `gorm:"index" json:"divisionId,omitempty"`
	ManagerID   *uint64     `json:"managerId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
