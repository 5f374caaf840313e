package dto

import (
	"time"

	"github.com/trackline/task-tracker-api/internal/models"
)

// UserDTO is the public view of a user in API responses. The password hash
// is never serialized.
type UserDTO struct {
	ID    uint64      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// UserListItemDTO is the reduced shape used by the user directory listing.
type UserListItemDTO struct {
	ID   uint64      `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// AuthResponseDTO is returned by register and login.
type AuthResponseDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedByID uint64    `json:"createdById"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedBy   *UserDTO  `json:"createdBy,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	ProjectID    uint64              `json:"projectId"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	AssignedToID *uint64             `json:"assignedToId"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	AssignedTo   *UserDTO            `json:"assignedTo,omitempty"`
}

// TaskLogDTO represents an audit record in API responses
type TaskLogDTO struct {
	ID           uint64              `json:"id"`
	TaskID       uint64              `json:"taskId"`
	PreviousData models.TaskSnapshot `json:"previousData"`
	ChangedAt    time.Time           `json:"changedAt"`
	ChangedBy    *UserDTO            `json:"changedBy,omitempty"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// ToUserListItemDTO converts a User model to UserListItemDTO
func ToUserListItemDTO(user models.User) UserListItemDTO {
	return UserListItemDTO{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
	}
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedByID: project.CreatedByID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	// Include creator if preloaded
	if project.CreatedBy.ID != 0 {
		creator := ToUserDTO(project.CreatedBy)
		dto.CreatedBy = &creator
	}

	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		ProjectID:    task.ProjectID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		Priority:     task.Priority,
		AssignedToID: task.AssignedToID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include assignee if preloaded
	if task.AssignedTo != nil && task.AssignedTo.ID != 0 {
		assignee := ToUserDTO(*task.AssignedTo)
		dto.AssignedTo = &assignee
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}

// ToTaskLogDTO converts a TaskLog model to TaskLogDTO
func ToTaskLogDTO(logEntry models.TaskLog) TaskLogDTO {
	dto := TaskLogDTO{
		ID:           logEntry.ID,
		TaskID:       logEntry.TaskID,
		PreviousData: logEntry.PreviousData,
		ChangedAt:    logEntry.ChangedAt,
	}

	if logEntry.ChangedBy.ID != 0 {
		changedBy := ToUserDTO(logEntry.ChangedBy)
		dto.ChangedBy = &changedBy
	}

	return dto
}

// ToTaskLogDTOs converts a slice of task logs
func ToTaskLogDTOs(logs []models.TaskLog) []TaskLogDTO {
	dtos := make([]TaskLogDTO, len(logs))
	for i, l := range logs {
		dtos[i] = ToTaskLogDTO(l)
	}
	return dtos
}
