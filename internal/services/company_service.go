package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/company-tracker-api/internal/models"
	"github.com/yukikurage/company-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidCompanyName = errors.New("company name cannot be empty")
	ErrNotCompanyMember   = errors.New("user is not a member of the company")
)

// CompanyService provides business logic for companies and memberships.
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
	}
}

// CreateCompany creates a company owned by ownerID.
func (s *CompanyService) CreateCompany(ownerID uint64, name string) (*models.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidCompanyName
	}

	company := &models.Company{
		Name:    name,
		OwnerID: ownerID,
	}
	if err := s.companyRepo.CreateWithOwner(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

// ListCompaniesForUser returns the companies the user belongs to.
func (s *CompanyService) ListCompaniesForUser(userID uint64) ([]models.Company, error) {
	companies, err := s.companyRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// EnsureMember returns ErrNotCompanyMember unless userID belongs to companyID.
func (s *CompanyService) EnsureMember(companyID, userID uint64) error {
	if _, err := s.companyRepo.FindMember(companyID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotCompanyMember
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}
	return nil
}
