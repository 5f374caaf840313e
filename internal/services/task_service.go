package services

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	apierrors "github.com/trackline/task-tracker-api/internal/errors"
	"github.com/trackline/task-tracker-api/internal/models"
	"github.com/trackline/task-tracker-api/internal/repository"
)

// unassignedName is recorded in audit snapshots when a task has no assignee.
const unassignedName = "Unassigned"

// TaskService handles the task lifecycle and its audit trail.
type TaskService struct {
	tasks repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks repository.TaskRepository) *TaskService {
	return &TaskService{
		tasks: tasks,
	}
}

// CreateTaskInput holds the caller-supplied fields for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssignedTo  *uint64
}

// Create persists a new task under the given project. The project is not
// checked for existence; a task referencing a missing project is tolerated.
func (s *TaskService) Create(projectID uint64, input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, apierrors.New(http.StatusBadRequest, "Task title is required")
	}
	if input.Description == "" {
		return nil, apierrors.New(http.StatusBadRequest, "Task description is required")
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusPending
	}
	if !status.Valid() {
		return nil, apierrors.New(http.StatusBadRequest, "Invalid status value")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, apierrors.New(http.StatusBadRequest, "Invalid priority value")
	}

	task := &models.Task{
		ProjectID:    projectID,
		Title:        input.Title,
		Description:  input.Description,
		Status:       status,
		Priority:     priority,
		AssignedToID: input.AssignedTo,
	}

	if err := s.tasks.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	// Reload so the broadcast payload carries the nested assignee.
	created, err := s.tasks.FindByID(task.ID, "AssignedTo")
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	return created, nil
}

// ListForProject returns the project's tasks visible to the caller: all of
// them for admins and managers, only the caller's assigned tasks otherwise.
func (s *TaskService) ListForProject(projectID uint64, caller Caller) ([]models.Task, error) {
	if SeesAllProjects(caller.Role) {
		return s.tasks.ListByProject(projectID)
	}

	return s.tasks.ListByProjectAndAssignee(projectID, caller.ID)
}

// UpdateTaskInput holds the accepted update fields. Nil means "leave
// unchanged"; AssignedToSet distinguishes clearing the assignee from not
// touching it.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Status        *models.TaskStatus
	Priority      *models.TaskPriority
	AssignedTo    *uint64
	AssignedToSet bool
}

// Update snapshots the task's current state into a TaskLog, then applies the
// changes. Both steps run in one transaction; the snapshot-then-overwrite
// ordering is what makes the log an audit of pre-update values.
func (s *TaskService) Update(taskID uint64, input UpdateTaskInput, changedBy uint64) (*models.Task, error) {
	task, err := s.tasks.FindByID(taskID, "AssignedTo")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.New(http.StatusNotFound, "Task not found")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	assigneeName := unassignedName
	if task.AssignedTo != nil {
		assigneeName = task.AssignedTo.Name
	}

	logEntry := &models.TaskLog{
		TaskID: task.ID,
		PreviousData: models.TaskSnapshot{
			Title:       task.Title,
			Description: task.Description,
			Status:      task.Status,
			Priority:    task.Priority,
			AssignedTo:  assigneeName,
		},
		ChangedAt:   time.Now(),
		ChangedByID: changedBy,
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apierrors.New(http.StatusBadRequest, "Task title is required")
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		if *input.Description == "" {
			return nil, apierrors.New(http.StatusBadRequest, "Task description is required")
		}
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apierrors.New(http.StatusBadRequest, "Invalid status value")
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, apierrors.New(http.StatusBadRequest, "Invalid priority value")
		}
		task.Priority = *input.Priority
	}
	if input.AssignedToSet {
		task.AssignedToID = input.AssignedTo
		task.AssignedTo = nil
	}

	if err := s.tasks.UpdateWithLog(task, logEntry); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.tasks.FindByID(task.ID, "AssignedTo")
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	return updated, nil
}

// Delete removes the task and returns it. Task logs are left in place.
func (s *TaskService) Delete(taskID uint64) (*models.Task, error) {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.New(http.StatusNotFound, "Task not found")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.tasks.Delete(taskID); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return task, nil
}

// Logs returns the task's audit records in insertion order. Beyond
// authentication there is no ownership check on task history.
func (s *TaskService) Logs(taskID uint64) ([]models.TaskLog, error) {
	return s.tasks.ListLogs(taskID)
}
