package dto

import (
	"time"

	"github.com/yukikurage/company-tracker-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID               uint64  `json:"id"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            *string `json:"email"`
	TelegramUsername *string `json:"telegramUsername,omitempty"`
}

// CompanySummaryDTO is a company as listed for one of its members
type CompanySummaryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// CompanyDTO is a newly created company
type CompanyDTO struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	OwnerID uint64 `json:"ownerId"`
}

// ProfileDTO is the authenticated user with their companies
type ProfileDTO struct {
	ID        uint64              `json:"id"`
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	Email     *string             `json:"email"`
	Companies []CompanySummaryDTO `json:"companies"`
}

// TelegramMemberDTO is a user seen in a linked Telegram group
type TelegramMemberDTO struct {
	UserID           uint64    `json:"userId"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	TelegramUsername *string   `json:"telegramUsername"`
	JoinedAt         time.Time `json:"joinedAt"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:               user.ID,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Email:            user.Email,
		TelegramUsername: user.TelegramUsername,
	}
}

// ToCompanyDTO converts a Company model to CompanyDTO
func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:      company.ID,
		Name:    company.Name,
		OwnerID: company.OwnerID,
	}
}

// ToCompanySummaries converts companies to their list form
func ToCompanySummaries(companies []models.Company) []CompanySummaryDTO {
	summaries := make([]CompanySummaryDTO, len(companies))
	for i, company := range companies {
		summaries[i] = CompanySummaryDTO{ID: company.ID, Name: company.Name}
	}
	return summaries
}

// ToProfileDTO converts a user and their companies to ProfileDTO
func ToProfileDTO(user models.User, companies []models.Company) ProfileDTO {
	return ProfileDTO{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Companies: ToCompanySummaries(companies),
	}
}

// ToTelegramMemberDTOs converts group members with their users
func ToTelegramMemberDTOs(members []models.TelegramMember) []TelegramMemberDTO {
	dtos := make([]TelegramMemberDTO, len(members))
	for i, member := range members {
		dtos[i] = TelegramMemberDTO{
			UserID:           member.UserID,
			FirstName:        member.User.FirstName,
			LastName:         member.User.LastName,
			TelegramUsername: member.User.TelegramUsername,
			JoinedAt:         member.JoinedAt,
		}
	}
	return dtos
}
