package repository

import (
	"github.com/trackline/task-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByProject retrieves all tasks in a project
func (r *GormTaskRepository) ListByProject(projectID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("AssignedTo").
		Where("project_id = ?", projectID).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByProjectAndAssignee retrieves the project's tasks assigned to a user
func (r *GormTaskRepository) ListByProjectAndAssignee(projectID, userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("AssignedTo").
		Where("project_id = ? AND assigned_to_id = ?", projectID, userID).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateWithLog appends the audit record and applies the task mutation within
// a single transaction. The snapshot must be inserted before the overwrite so
// the log captures pre-update state.
func (r *GormTaskRepository) UpdateWithLog(task *models.Task, logEntry *models.TaskLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(logEntry).Error; err != nil {
			return err
		}

		// Omit associations so the preloaded assignee is not written back.
		return tx.Omit(clause.Associations).Save(task).Error
	})
}

// Delete removes a task. Its task logs are deliberately left in place.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// ListLogs retrieves a task's audit records in insertion order
func (r *GormTaskRepository) ListLogs(taskID uint64) ([]models.TaskLog, error) {
	var logs []models.TaskLog
	err := r.db.Preload("ChangedBy").
		Where("task_id = ?", taskID).
		Order("id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
