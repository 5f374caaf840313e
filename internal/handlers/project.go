package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trackline/task-tracker-api/internal/dto"
	apierrors "github.com/trackline/task-tracker-api/internal/errors"
	"github.com/trackline/task-tracker-api/internal/middleware"
	"github.com/trackline/task-tracker-api/internal/services"
)

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// getCaller reads the authenticated identity attached by RequireAuth.
func getCaller(c *gin.Context) (services.Caller, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		return services.Caller{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return services.Caller{}, false
	}
	return services.Caller{ID: id, Role: role}, true
}

// Create creates a new project owned by the caller.
func (h *ProjectHandler) Create(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Create(req.Name, req.Description, caller.ID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// List returns the projects visible to the caller.
func (h *ProjectHandler) List(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projects, err := h.projectService.ListForUser(caller)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// GetByID returns a single project if the caller may read it.
func (h *ProjectHandler) GetByID(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projectService.GetByIDForUser(projectID, caller)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}
