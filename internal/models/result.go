package models

import "time"

type Result struct {
	ID              uint64     `gorm:"primarykey" json:"id"`
	CompanyID       uint64     `gorm:"not null;index" json:"companyId"`
	Name            string     `gorm:"type:varchar(255);not null" json:"name"`
	Description     *string    `gorm:"type:text" json:"description"`
	Status          *string    `gorm:"type:varchar(50)" json:"status"`
	Completion      int        `gorm:"not null" json:"completion"`
	Deadline        *time.Time `json:"deadline"`
	AssigneeID      *uint64    `json:"assigneeId"`
	ReporterID      *uint64    `json:"reporterId"`
	ExpectedOutcome *string    `gorm:"type:text" json:"expectedOutcome"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	// Relations
	SubResults []SubResult `gorm:"foreignKey:ResultID" json:"subResults"`
}

// SubResult rows are always read ordered by Order.
type SubResult struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	ResultID  uint64 `gorm:"not null;index" json:"resultId"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Completed bool   `gorm:"not null" json:"completed"`
	Order     int    `gorm:"column:order_index;not null" json:"order"`
}
