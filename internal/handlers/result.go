package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-tracker-api/internal/services"
)

// ResultHandler serves results with their ordered sub-results.
type ResultHandler struct {
	resultService *services.ResultService
}

func NewResultHandler(resultService *services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

func (h *ResultHandler) ListResults(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	results, err := h.resultService.ListResults(companyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *ResultHandler) CreateResult(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	type CreateResultRequest struct {
		Name            string                    `json:"name" binding:"required"`
		Description     *string                   `json:"description"`
		Status          *string                   `json:"status"`
		Completion      int                       `json:"completion"`
		Deadline        *time.Time                `json:"deadline"`
		AssigneeID      *uint64                   `json:"assigneeId"`
		ReporterID      *uint64                   `json:"reporterId"`
		ExpectedOutcome *string                   `json:"expectedOutcome"`
		SubResults      []services.SubResultInput `json:"subResults"`
	}

	var req CreateResultRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.resultService.CreateResult(companyID, services.CreateResultInput{
		Name:            req.Name,
		Description:     req.Description,
		Status:          req.Status,
		Completion:      req.Completion,
		Deadline:        req.Deadline,
		AssigneeID:      req.AssigneeID,
		ReporterID:      req.ReporterID,
		ExpectedOutcome: req.ExpectedOutcome,
		SubResults:      req.SubResults,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *ResultHandler) UpdateResult(c *gin.Context) {
	companyID, resultID, ok := companyAndID(c, "rid")
	if !ok {
		return
	}
	body, ok := bindPatch(c)
	if !ok {
		return
	}

	result, err := h.resultService.UpdateResult(companyID, resultID, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ResultHandler) DeleteResult(c *gin.Context) {
	companyID, resultID, ok := companyAndID(c, "rid")
	if !ok {
		return
	}

	if err := h.resultService.DeleteResult(companyID, resultID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
