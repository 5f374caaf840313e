package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trackline/task-tracker-api/internal/dto"
	apierrors "github.com/trackline/task-tracker-api/internal/errors"
	"github.com/trackline/task-tracker-api/internal/services"
)

// UserHandler serves the user directory.
type UserHandler struct {
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// List returns every registered user as {id, name, role}.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	items := make([]dto.UserListItemDTO, len(users))
	for i, u := range users {
		items[i] = dto.ToUserListItemDTO(u)
	}

	c.JSON(http.StatusOK, items)
}
