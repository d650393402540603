package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-tracker-api/internal/services"
)

type ProcessHandler struct {
	processService *services.ProcessService
}

func NewProcessHandler(processService *services.ProcessService) *ProcessHandler {
	return &ProcessHandler{processService: processService}
}

// ListProcesses returns processes of the caller's companies.
// Can filter by companyId
func (h *ProcessHandler) ListProcesses(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	companyID, ok := parseCompanyQuery(c)
	if !ok {
		return
	}

	processes, err := h.processService.ListProcesses(userID, companyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, processes)
}

func (h *ProcessHandler) CreateProcess(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}

	type CreateProcessRequest struct {
		CompanyID   uint64  `json:"companyId" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		OwnerID     *uint64 `json:"ownerId"`
	}

	var req CreateProcessRequest
	if !bindJSON(c, &req) {
		return
	}

	process, err := h.processService.CreateProcess(userID, services.CreateProcessInput{
		CompanyID:   req.CompanyID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, process)
}

func (h *ProcessHandler) UpdateProcess(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	processID, ok := parseIDParam(c, "pid")
	if !ok {
		return
	}
	body, ok := bindPatch(c)
	if !ok {
		return
	}

	process, err := h.processService.UpdateProcess(userID, processID, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, process)
}

func (h *ProcessHandler) DeleteProcess(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	processID, ok := parseIDParam(c, "pid")
	if !ok {
		return
	}

	if err := h.processService.DeleteProcess(userID, processID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
