package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/company-tracker-api/internal/constants"
	"github.com/yukikurage/company-tracker-api/internal/models"
	"github.com/yukikurage/company-tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	tokens      *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		tokens:      tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a password-backed user and issues a session token.
func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if len(input.Password) < constants.MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", ErrFailedToHashPassword
	}
	hash := string(hashedPassword)

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        &email,
		PasswordHash: &hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.IssueSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	// Telegram-only accounts have no password.
	if user.PasswordHash == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// TelegramIdentity is what Telegram tells us about a user.
type TelegramIdentity struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

// ResolveTelegramUser finds or creates the user for a Telegram account.
func (s *AuthService) ResolveTelegramUser(identity TelegramIdentity) (*models.User, error) {
	attrs := models.User{
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
	}
	if identity.Username != "" {
		username := identity.Username
		attrs.TelegramUsername = &username
	}

	user, err := s.userRepo.FindOrCreateByTelegramID(identity.TelegramID, attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve telegram user: %w", err)
	}
	return user, nil
}

// TelegramLogin resolves the Telegram user and issues a temporary token
// bound to it.
func (s *AuthService) TelegramLogin(identity TelegramIdentity) (*models.User, string, error) {
	user, err := s.ResolveTelegramUser(identity)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.IssueTemporary(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SelectCompany completes Telegram login for a company the user belongs to.
func (s *AuthService) SelectCompany(userID, companyID uint64) (string, error) {
	if _, err := s.companyRepo.FindMember(companyID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotCompanyMember
		}
		return "", fmt.Errorf("failed to check membership: %w", err)
	}

	return s.tokens.IssueSession(userID)
}

// CreateCompanyAndLogin completes Telegram login by founding a new company.
func (s *AuthService) CreateCompanyAndLogin(userID uint64, companyName string) (*models.Company, string, error) {
	company := &models.Company{
		Name:    strings.TrimSpace(companyName),
		OwnerID: userID,
	}
	if company.Name == "" {
		return nil, "", ErrInvalidCompanyName
	}
	if err := s.companyRepo.CreateWithOwner(company); err != nil {
		return nil, "", fmt.Errorf("failed to create company: %w", err)
	}

	token, err := s.tokens.IssueSession(userID)
	if err != nil {
		return nil, "", err
	}
	return company, token, nil
}

// Profile is the authenticated user together with their companies.
type Profile struct {
	User      *models.User
	Companies []models.Company
}

// GetProfile retrieves a user and the companies they belong to.
func (s *AuthService) GetProfile(userID uint64) (*Profile, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	companies, err := s.companyRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	return &Profile{User: user, Companies: companies}, nil
}
