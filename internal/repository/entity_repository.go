package repository

import (
	"github.com/yukikurage/company-tracker-api/internal/models"
	"gorm.io/gorm"
)

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &gormScopedStore[models.Employee]{db: db}
}

// NewProcessRepository creates a new ProcessRepository
func NewProcessRepository(db *gorm.DB) ProcessRepository {
	return &gormScopedStore[models.Process]{db: db}
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &gormScopedStore[models.Task]{db: db}
}
