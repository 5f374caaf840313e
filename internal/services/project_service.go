package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apierrors "github.com/trackline/task-tracker-api/internal/errors"
	"github.com/trackline/task-tracker-api/internal/models"
	"github.com/trackline/task-tracker-api/internal/repository"
)

// ProjectService handles project creation and role-scoped visibility.
type ProjectService struct {
	projects repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projects: projects,
	}
}

// Create persists a new project owned by the caller.
func (s *ProjectService) Create(name, description string, createdBy uint64) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierrors.New(http.StatusBadRequest, "Project name is required")
	}

	project := &models.Project{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedByID: createdBy,
	}

	if err := s.projects.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListForUser returns the projects visible to the caller. Admins and
// managers see everything; everyone else sees the union of projects they
// created and projects holding a task assigned to them.
func (s *ProjectService) ListForUser(caller Caller) ([]models.Project, error) {
	if SeesAllProjects(caller.Role) {
		return s.projects.ListAll()
	}

	var (
		own         []models.Project
		assignedIDs []uint64
	)

	// The two feeding queries are independent; run them in parallel.
	var g errgroup.Group
	g.Go(func() error {
		var err error
		own, err = s.projects.ListByCreator(caller.ID)
		return err
	})
	g.Go(func() error {
		var err error
		assignedIDs, err = s.projects.AssignedProjectIDs(caller.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve visible projects: %w", err)
	}

	ids := VisibleProjectIDs(own, assignedIDs)
	return s.projects.ListByIDs(ids)
}

// GetByIDForUser returns the project when the caller may read it: any admin
// or manager, the creator, or the assignee of at least one of its tasks.
func (s *ProjectService) GetByIDForUser(projectID uint64, caller Caller) (*models.Project, error) {
	project, err := s.projects.FindByID(projectID, "CreatedBy")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.New(http.StatusNotFound, "Project not found")
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if SeesAllProjects(caller.Role) || project.CreatedByID == caller.ID {
		return project, nil
	}

	hasTask, err := s.projects.HasAssignedTask(projectID, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check task assignment: %w", err)
	}
	if hasTask {
		return project, nil
	}

	return nil, apierrors.New(http.StatusForbidden, "Unauthorized to access this project")
}
