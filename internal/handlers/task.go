package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-tracker-api/internal/models"
	"github.com/yukikurage/company-tracker-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns all tasks of the company
func (h *TaskHandler) ListTasks(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(companyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title          string             `json:"title" binding:"required"`
		Description    *string            `json:"description"`
		DueDate        *time.Time         `json:"dueDate"`
		Status         *models.TaskStatus `json:"status"`
		Type           *string            `json:"type"`
		EstimatedTime  *float64           `json:"estimatedTime"`
		ActualTime     *float64           `json:"actualTime"`
		ExpectedResult *string            `json:"expectedResult"`
		ActualResult   *string            `json:"actualResult"`
		AssigneeID     *uint64            `json:"assigneeId"`
		ReporterID     *uint64            `json:"reporterId"`
		ResultID       *uint64            `json:"resultId"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(companyID, services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        req.DueDate,
		Status:         req.Status,
		Type:           req.Type,
		EstimatedTime:  req.EstimatedTime,
		ActualTime:     req.ActualTime,
		ExpectedResult: req.ExpectedResult,
		ActualResult:   req.ActualResult,
		AssigneeID:     req.AssigneeID,
		ReporterID:     req.ReporterID,
		ResultID:       req.ResultID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update to a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	companyID, taskID, ok := companyAndID(c, "tid")
	if !ok {
		return
	}
	body, ok := bindPatch(c)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(companyID, taskID, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	companyID, taskID, ok := companyAndID(c, "tid")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(companyID, taskID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
