package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-tracker-api/internal/services"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	employees, err := h.employeeService.ListEmployees(companyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	type CreateEmployeeRequest struct {
		UserID   uint64  `json:"userId" binding:"required"`
		Position *string `json:"position"`
		Status   *string `json:"status"`
		Notes    *string `json:"notes"`
	}

	var req CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.CreateEmployee(companyID, services.CreateEmployeeInput{
		UserID:   req.UserID,
		Position: req.Position,
		Status:   req.Status,
		Notes:    req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	companyID, employeeID, ok := companyAndID(c, "eid")
	if !ok {
		return
	}
	body, ok := bindPatch(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.UpdateEmployee(companyID, employeeID, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	companyID, employeeID, ok := companyAndID(c, "eid")
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(companyID, employeeID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
