package repository

import (
	"github.com/yukikurage/company-tracker-api/internal/models"
	"gorm.io/gorm"
)

// Scope restricts a query to the rows a caller may see. Every read and write
// against company-owned rows goes through one.
type Scope func(db *gorm.DB) *gorm.DB

// CompanyScope limits rows to a single company.
func CompanyScope(companyID uint64) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// MemberScope limits rows to the companies the user is a member of.
func MemberScope(userID uint64) Scope {
	return func(db *gorm.DB) *gorm.DB {
		companies := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Membership{}).
			Select("company_id").
			Where("user_id = ?", userID)
		return db.Where("company_id IN (?)", companies)
	}
}

// ScopedStore is the data access every company-owned entity shares.
type ScopedStore[T any] interface {
	// List returns every row visible through scope, oldest first
	List(scope Scope) ([]T, error)

	// Create inserts a new row
	Create(row *T) error

	// FindByID finds a row by ID within scope
	FindByID(scope Scope, id uint64) (*T, error)

	// Update writes the given column assignments. Nothing is written for an
	// empty map, and a row outside scope is left untouched without error.
	Update(scope Scope, id uint64, updates map[string]interface{}) error

	// Delete removes a row. Deleting a missing row is not an error.
	Delete(scope Scope, id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindOrCreateByTelegramID returns the user bound to a Telegram account,
	// creating it from attrs on first contact.
	FindOrCreateByTelegramID(telegramID int64, attrs models.User) (*models.User, error)
}

// CompanyRepository defines the interface for company and membership data access
type CompanyRepository interface {
	// CreateWithOwner creates a company and the owner membership of
	// company.OwnerID within a single transaction.
	CreateWithOwner(company *models.Company) error

	// FindByID finds a company by ID
	FindByID(id uint64) (*models.Company, error)

	// ListForUser lists the companies a user is a member of
	ListForUser(userID uint64) ([]models.Company, error)

	// FindMember finds a specific membership
	FindMember(companyID, userID uint64) (*models.Membership, error)
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	ScopedStore[models.Employee]
}

// ProcessRepository defines the interface for process data access
type ProcessRepository interface {
	ScopedStore[models.Process]
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	ScopedStore[models.Task]
}

// OrgNodeRepository defines the interface for division and department data access
type OrgNodeRepository interface {
	ScopedStore[models.OrgNode]

	// ListByKind lists the nodes of one kind
	ListByKind(scope Scope, kind models.OrgNodeKind) ([]models.OrgNode, error)

	// DeleteDivision deletes a division and every department under it
	DeleteDivision(scope Scope, id uint64) error
}

// InstructionRepository defines the interface for instruction data access.
// Reads always include the access list.
type InstructionRepository interface {
	ScopedStore[models.Instruction]

	// UpdateWithAccess writes updates and, when access is non-nil, replaces
	// the whole access list, all within one transaction.
	UpdateWithAccess(scope Scope, id uint64, updates map[string]interface{}, access []models.InstructionAccess) error
}

// ResultRepository defines the interface for result data access.
// Reads always include sub-results ordered by their order field.
type ResultRepository interface {
	ScopedStore[models.Result]

	// UpdateWithSubResults writes updates and, when subResults is non-nil,
	// replaces the whole sub-result list, all within one transaction.
	UpdateWithSubResults(scope Scope, id uint64, updates map[string]interface{}, subResults []models.SubResult) error
}

// TelegramRepository defines the interface for linked Telegram chats
type TelegramRepository interface {
	// ListGroups lists linked chats visible through scope
	ListGroups(scope Scope) ([]models.TelegramGroup, error)

	// FindGroup finds a linked chat by ID within scope
	FindGroup(scope Scope, id uint64) (*models.TelegramGroup, error)

	// FindGroupByChatID finds a linked chat by its Telegram chat ID
	FindGroupByChatID(chatID int64) (*models.TelegramGroup, error)

	// LinkGroup links a chat to a company. A chat that is already linked
	// is moved to the new company and retitled.
	LinkGroup(group *models.TelegramGroup) error

	// AddMember records a user as seen in a group. Repeats are ignored.
	AddMember(groupID, userID uint64) error

	// ListMembers lists the members of a group with their users
	ListMembers(groupID uint64) ([]models.TelegramMember, error)
}
