package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-tracker-api/internal/dto"
	"github.com/yukikurage/company-tracker-api/internal/services"
)

// OrgStructureHandler serves a company's division/department tree.
type OrgStructureHandler struct {
	orgService *services.OrgStructureService
}

func NewOrgStructureHandler(orgService *services.OrgStructureService) *OrgStructureHandler {
	return &OrgStructureHandler{orgService: orgService}
}

// GetOrgStructure returns divisions with their departments nested inside
func (h *OrgStructureHandler) GetOrgStructure(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	divisions, departments, err := h.orgService.ListOrgStructure(companyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BuildOrgTree(divisions, departments))
}

// CreateOrgNode creates a division or a department
func (h *OrgStructureHandler) CreateOrgNode(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	type CreateOrgNodeRequest struct {
		Type        string  `json:"type" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
		DivisionID  *uint64 `json:"divisionId"`
		ManagerID   *uint64 `json:"managerId"`
	}

	var req CreateOrgNodeRequest
	if !bindJSON(c, &req) {
		return
	}

	node, err := h.orgService.CreateOrgNode(companyID, services.CreateOrgNodeInput{
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
		DivisionID:  req.DivisionID,
		ManagerID:   req.ManagerID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, node)
}

func (h *OrgStructureHandler) UpdateOrgNode(c *gin.Context) {
	companyID, nodeID, ok := companyAndID(c, "nid")
	if !ok {
		return
	}
	body, ok := bindPatch(c)
	if !ok {
		return
	}

	node, err := h.orgService.UpdateOrgNode(companyID, nodeID, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, node)
}

func (h *OrgStructureHandler) DeleteOrgNode(c *gin.Context) {
	companyID, nodeID, ok := companyAndID(c, "nid")
	if !ok {
		return
	}

	if err := h.orgService.DeleteOrgNode(companyID, nodeID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
