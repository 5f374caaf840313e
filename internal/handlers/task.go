package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trackline/task-tracker-api/internal/dto"
	apierrors "github.com/trackline/task-tracker-api/internal/errors"
	"github.com/trackline/task-tracker-api/internal/events"
	"github.com/trackline/task-tracker-api/internal/models"
	"github.com/trackline/task-tracker-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers and publishes task
// events to the notification hub.
type TaskHandler struct {
	taskService *services.TaskService
	hub         *events.Hub
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, hub *events.Hub) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		hub:         hub,
	}
}

// Create creates a new task under a project and broadcasts it.
func (h *TaskHandler) Create(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	type CreateTaskRequest struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Status      string  `json:"status"`
		Priority    string  `json:"priority"`
		AssignedTo  *uint64 `json:"assignedTo"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(projectID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	taskDTO := dto.ToTaskDTO(*task)
	h.hub.Publish(events.TaskCreated, taskDTO)

	c.JSON(http.StatusCreated, taskDTO)
}

// ListByProject returns the project's tasks visible to the caller.
func (h *TaskHandler) ListByProject(c *gin.Context) {
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

	tasks, err := h.taskService.ListForProject(projectID, caller)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// updatableTaskFields is the allow-list for PUT /tasks/:id. Anything else in
// the request body is rejected; in particular the project reference is not
// mutable.
var updatableTaskFields = map[string]struct{}{
	"title":       {},
	"description": {},
	"status":      {},
	"priority":    {},
	"assignedTo":  {},
}

// Update applies an explicit set of field changes to a task, writing the
// audit snapshot first, then broadcasts the updated task.
func (h *TaskHandler) Update(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	// Parse raw JSON to detect which fields were sent.
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	for key := range raw {
		if _, ok := updatableTaskFields[key]; !ok {
			apierrors.BadRequest(c, "Unknown field: "+key)
			return
		}
	}

	input, apiErr := buildUpdateInput(raw)
	if apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	task, err := h.taskService.Update(taskID, input, caller.ID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	taskDTO := dto.ToTaskDTO(*task)
	h.hub.Publish(events.TaskUpdated, taskDTO)

	c.JSON(http.StatusOK, taskDTO)
}

// buildUpdateInput converts the raw field map into a typed update.
func buildUpdateInput(raw map[string]any) (services.UpdateTaskInput, *apierrors.APIError) {
	var input services.UpdateTaskInput

	if v, ok := raw["title"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, apierrors.New(http.StatusBadRequest, "Invalid value for field: title")
		}
		input.Title = &s
	}
	if v, ok := raw["description"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, apierrors.New(http.StatusBadRequest, "Invalid value for field: description")
		}
		input.Description = &s
	}
	if v, ok := raw["status"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, apierrors.New(http.StatusBadRequest, "Invalid value for field: status")
		}
		status := models.TaskStatus(s)
		input.Status = &status
	}
	if v, ok := raw["priority"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, apierrors.New(http.StatusBadRequest, "Invalid value for field: priority")
		}
		priority := models.TaskPriority(s)
		input.Priority = &priority
	}
	if v, ok := raw["assignedTo"]; ok {
		input.AssignedToSet = true
		if v != nil {
			n, ok := v.(float64)
			if !ok || n < 0 {
				return input, apierrors.New(http.StatusBadRequest, "Invalid value for field: assignedTo")
			}
			id := uint64(n)
			input.AssignedTo = &id
		}
	}

	return input, nil
}

// Delete removes a task. Its audit logs are left in place.
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if _, err := h.taskService.Delete(taskID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// Logs returns a task's change history.
func (h *TaskHandler) Logs(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	logs, err := h.taskService.Logs(taskID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskLogDTOs(logs))
}
