package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-tracker-api/internal/dto"
	"github.com/yukikurage/company-tracker-api/internal/services"
)

type CompanyHandler struct {
	companyService *services.CompanyService
}

func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// ListCompanies returns the caller's companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
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

// CreateCompany creates a company owned by the caller
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}

	type CreateCompanyRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.CreateCompany(userID, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyDTO(*company))
}
