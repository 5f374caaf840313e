package repository

import (
	"github.com/trackline/task-tracker-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by their lowercase email
	FindByEmail(email string) (*models.User, error)

	// List retrieves all users
	List() ([]models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListAll retrieves every project with its creator loaded
	ListAll() ([]models.Project, error)

	// ListByCreator retrieves the projects created by a user
	ListByCreator(userID uint64) ([]models.Project, error)

	// ListByIDs retrieves the given projects with their creators loaded
	ListByIDs(ids []uint64) ([]models.Project, error)

	// AssignedProjectIDs returns the distinct projects containing at least
	// one task assigned to the user
	AssignedProjectIDs(userID uint64) ([]uint64, error)

	// HasAssignedTask reports whether the project holds a task assigned to
	// the user
	HasAssignedTask(projectID, userID uint64) (bool, error)
}

// TaskRepository defines the interface for task and task-log data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject retrieves all tasks in a project
	ListByProject(projectID uint64) ([]models.Task, error)

	// ListByProjectAndAssignee retrieves the project's tasks assigned to a user
	ListByProjectAndAssignee(projectID, userID uint64) ([]models.Task, error)

	// UpdateWithLog appends the audit record and applies the task mutation
	// within a single transaction
	UpdateWithLog(task *models.Task, logEntry *models.TaskLog) error

	// Delete removes a task. Its task logs are left in place.
	Delete(id uint64) error

	// ListLogs retrieves a task's audit records in insertion order
	ListLogs(taskID uint64) ([]models.TaskLog, error)
}
