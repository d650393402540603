package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/company-tracker-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateCompany is returned when creating the company row fails inside the transaction.
	ErrCreateCompany = errors.New("company repository: create company failed")
	// ErrCreateMembership is returned when creating the owner membership fails inside the transaction.
	ErrCreateMembership = errors.New("company repository: create membership failed")
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

// CreateWithOwner creates a company and its owner membership atomically.
func (r *GormCompanyRepository) CreateWithOwner(company *models.Company) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateCompany, err)
		}

		member := &models.Membership{
			UserID:    company.OwnerID,
			CompanyID: company.ID,
			Role:      models.RoleOwner,
		}
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateMembership, err)
		}

		return nil
	})
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(id uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// ListForUser lists the companies a user is a member of
func (r *GormCompanyRepository) ListForUser(userID uint64) ([]models.Company, error) {
	companies := make([]models.Company, 0)
	if err := r.db.
		Joins("JOIN user_companies ON user_companies.company_id = companies.id").
		Where("user_companies.user_id = ?", userID).
		Order("companies.id ASC").
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// FindMember finds a specific membership
func (r *GormCompanyRepository) FindMember(companyID, userID uint64) (*models.Membership, error) {
	var member models.Membership
	if err := r.db.Where("company_id = ? AND user_id = ?", companyID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}
