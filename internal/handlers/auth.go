package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-tracker-api/internal/dto"
	"github.com/yukikurage/company-tracker-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService    *services.AuthService
	companyService *services.CompanyService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, companyService *services.CompanyService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		companyService: companyService,
	}
}

// Register creates a password-backed account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email     string `json:"email" binding:"required"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"firstName" binding:"required"`
		LastName  string `json:"lastName"`
	}

	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Register(services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  dto.ToUserDTO(*user),
	})
}

// Login exchanges email and password for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  dto.ToUserDTO(*user),
	})
}

// TelegramLogin starts the Telegram handshake and returns a temporary token.
func (h *AuthHandler) TelegramLogin(c *gin.Context) {
	type TelegramLoginRequest struct {
		ID        int64  `json:"id" binding:"required"`
		Username  string `json:"username"`
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
	}

	var req TelegramLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.TelegramLogin(services.TelegramIdentity{
		TelegramID: req.ID,
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"tokenType": "temporary",
		"user":      dto.ToUserDTO(*user),
	})
}

// TelegramCompanies lists the companies the temporary token's user can pick.
func (h *AuthHandler) TelegramCompanies(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}

	companies, err := h.companyService.ListCompaniesForUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanySummaries(companies))
}

// SelectCompany finishes the handshake for an existing membership.
func (h *AuthHandler) SelectCompany(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}

	type SelectCompanyRequest struct {
		CompanyID uint64 `json:"companyId" binding:"required"`
	}

	var req SelectCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.authService.SelectCompany(userID, req.CompanyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// CreateCompanyAndLogin finishes the handshake by founding a company.
func (h *AuthHandler) CreateCompanyAndLogin(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}

	type CreateCompanyRequest struct {
		CompanyName string `json:"companyName" binding:"required"`
	}

	var req CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, token, err := h.authService.CreateCompanyAndLogin(userID, req.CompanyName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"company": dto.ToCompanyDTO(*company),
	})
}

// Me returns the authenticated user and their companies.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}

	profile, err := h.authService.GetProfile(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile.User, profile.Companies))
}

// Logout is a no-op; tokens are stateless and simply dropped by the client.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
