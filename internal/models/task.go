package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type Task struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	CompanyID      uint64     `gorm:"not null;index" json:"companyId"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Description    *string    `gorm:"type:text" json:"description"`
	DueDate        *time.Time `json:"dueDate"`
	Status         TaskStatus `gorm:"type:varchar(50);not null" json:"status"`
	Type           *string    `gorm:"type:varchar(50)" json:"type"`
	EstimatedTime  *float64   `json:"estimatedTime"`
	ActualTime     *float64   `json:"actualTime"`
	ExpectedResult *string    `gorm:"type:text" json:"expectedResult"`
	ActualResult   *string    `gorm:"type:text" json:"actualResult"`
	AssigneeID     *uint64    `gorm:"index" json:"assigneeId"`
	ReporterID     *uint64    `json:"reporterId"`
	ResultID       *uint64    `gorm:"index" json:"resultId"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
