package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-tracker-api/internal/services"
)

type InstructionHandler struct {
	instructionService *services.InstructionService
}

func NewInstructionHandler(instructionService *services.InstructionService) *InstructionHandler {
	return &InstructionHandler{instructionService: instructionService}
}

func (h *InstructionHandler) ListInstructions(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	companyID, ok := parseCompanyQuery(c)
	if !ok {
		return
	}

	instructions, err := h.instructionService.ListInstructions(userID, companyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, instructions)
}

func (h *InstructionHandler) CreateInstruction(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}

	type AccessRequest struct {
		UserID      uint64 `json:"userId"`
		AccessLevel string `json:"accessLevel"`
	}
	type CreateInstructionRequest struct {
		CompanyID    uint64          `json:"companyId" binding:"required"`
		Title        string          `json:"title" binding:"required"`
		Content      *string         `json:"content"`
		DepartmentID *uint64         `json:"departmentId"`
		Access       []AccessRequest `json:"access"`
	}

	var req CreateInstructionRequest
	if !bindJSON(c, &req) {
		return
	}

	access := make([]services.AccessEntry, len(req.Access))
	for i, a := range req.Access {
		access[i] = services.AccessEntry{UserID: a.UserID, AccessLevel: a.AccessLevel}
	}

	instruction, err := h.instructionService.CreateInstruction(userID, services.CreateInstructionInput{
		CompanyID:    req.CompanyID,
		Title:        req.Title,
		Content:      req.Content,
		DepartmentID: req.DepartmentID,
		Access:       access,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, instruction)
}

func (h *InstructionHandler) UpdateInstruction(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	instructionID, ok := parseIDParam(c, "iid")
	if !ok {
		return
	}
	body, ok := bindPatch(c)
	if !ok {
		return
	}

	instruction, err := h.instructionService.UpdateInstruction(userID, instructionID, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, instruction)
}

func (h *InstructionHandler) DeleteInstruction(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	instructionID, ok := parseIDParam(c, "iid")
	if !ok {
		return
	}

	if err := h.instructionService.DeleteInstruction(userID, instructionID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
