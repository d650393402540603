package models

import "time"

type Instruction struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	CompanyID    uint64    `gorm:"not null;index" json:"companyId"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Content      *string   `gorm:"type:text" json:"content"`
	DepartmentID *uint64   `json:"departmentId"`
	CreatedBy    uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Access []InstructionAccess `gorm:"foreignKey:InstructionID" json:"access"`
}

// InstructionAccess is replaced as a whole whenever an instruction's access
// list is updated.
type InstructionAccess struct {
	ID            uint64 `gorm:"primarykey" json:"-"`
	InstructionID uint64 `gorm:"not null;index" json:"-"`
	UserID        uint64 `gorm:"not null" json:"userId"`
	AccessLevel   string `gorm:"type:varchar(20);not null" json:"accessLevel"`
}

func (InstructionAccess) TableName() string {
	return "instruction_access"
}
