package models

import "time"

type CompanyRole string

const (
	RoleOwner  CompanyRole = "owner"
	RoleMember CompanyRole = "member"
)

// Membership grants a user access to everything scoped to a company.
type Membership struct {
	UserID    uint64      `gorm:"primarykey;autoIncrement:false" json:"userId"`
	CompanyID uint64      `gorm:"primarykey;autoIncrement:false" json:"companyId"`
	Role      CompanyRole `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time   `json:"createdAt"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (Membership) TableName() string {
	return "user_companies"
}
