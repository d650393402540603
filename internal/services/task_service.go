package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/company-tracker-api/internal/models"
	"github.com/yukikurage/company-tracker-api/internal/patch"
	"github.com/yukikurage/company-tracker-api/internal/repository"
)

var ErrTaskNotFound = errors.New("task not found")

var taskFields = patch.Table{
	patch.Of[string]("title", "title", false),
	patch.Of[string]("description", "description", true),
	patch.Of[time.Time]("dueDate", "due_date", true),
	patch.NonEmpty[models.TaskStatus]("status", "status"),
	patch.Of[string]("type", "type", true),
	patch.Of[float64]("estimatedTime", "estimated_time", true),
	patch.Of[float64]("actualTime", "actual_time", true),
	patch.Of[string]("expectedResult", "expected_result", true),
	patch.Of[string]("actualResult", "actual_result", true),
	patch.Of[uint64]("assigneeId", "assignee_id", true),
	patch.Of[uint64]("reporterId", "reporter_id", true),
	patch.Of[uint64]("resultId", "result_id", true),
}

// TaskService provides business logic for task operations.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTaskInput captures the data needed to create a task.
type CreateTaskInput struct {
	Title          string
	Description    *string
	DueDate        *time.Time
	Status         *models.TaskStatus
	Type           *string
	EstimatedTime  *float64
	ActualTime     *float64
	ExpectedResult *string
	ActualResult   *string
	AssigneeID     *uint64
	ReporterID     *uint64
	ResultID       *uint64
}

// ListTasks returns every task of a company.
func (s *TaskService) ListTasks(companyID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(repository.CompanyScope(companyID))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a task. Status defaults to todo.
func (s *TaskService) CreateTask(companyID uint64, input CreateTaskInput) (*models.Task, error) {
	status := models.TaskStatusTodo
	if input.Status != nil && *input.Status != "" {
		status = *input.Status
	}

	task := &models.Task{
		CompanyID:      companyID,
		Title:          input.Title,
		Description:    input.Description,
		DueDate:        input.DueDate,
		Status:         status,
		Type:           input.Type,
		EstimatedTime:  input.EstimatedTime,
		ActualTime:     input.ActualTime,
		ExpectedResult: input.ExpectedResult,
		ActualResult:   input.ActualResult,
		AssigneeID:     input.AssigneeID,
		ReporterID:     input.ReporterID,
		ResultID:       input.ResultID,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// UpdateTask applies a partial update.
func (s *TaskService) UpdateTask(companyID, taskID uint64, body patch.Body) (*models.Task, error) {
	return patchScoped[models.Task](s.taskRepo, repository.CompanyScope(companyID), taskID, taskFields, body, ErrTaskNotFound)
}

// DeleteTask deletes a task. Missing tasks are ignored.
func (s *TaskService) DeleteTask(companyID, taskID uint64) error {
	if err := s.taskRepo.Delete(repository.CompanyScope(companyID), taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
