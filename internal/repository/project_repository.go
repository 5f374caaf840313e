package repository

import (
	"github.com/trackline/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListAll retrieves every project with its creator loaded
func (r *GormProjectRepository) ListAll() ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Preload("CreatedBy").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByCreator retrieves the projects created by a user
func (r *GormProjectRepository) ListByCreator(userID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Where("created_by_id = ?", userID).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByIDs retrieves the given projects with their creators loaded
func (r *GormProjectRepository) ListByIDs(ids []uint64) ([]models.Project, error) {
	if len(ids) == 0 {
		return []models.Project{}, nil
	}

	var projects []models.Project
	if err := r.db.Preload("CreatedBy").Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// AssignedProjectIDs returns the distinct projects containing at least one
// task assigned to the user
func (r *GormProjectRepository) AssignedProjectIDs(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Task{}).
		Distinct("project_id").
		Where("assigned_to_id = ?", userID).
		Pluck("project_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// HasAssignedTask reports whether the project holds a task assigned to the user
func (r *GormProjectRepository) HasAssignedTask(projectID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("project_id = ? AND assigned_to_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
