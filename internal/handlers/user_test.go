package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trackline/task-tracker-api/internal/dto"
	"github.com/trackline/task-tracker-api/internal/models"
)

func TestUserHandler_List(t *testing.T) {
	env := setupTestEnv(t)

	alice := env.register(t, "Alice", "alice@example.com", "supersecret", "Admin")
	env.register(t, "Bob", "bob@example.com", "supersecret", "")

	w := env.do(t, http.MethodGet, "/users", alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	users := decodeJSON[[]dto.UserListItemDTO](t, w)
	require.Len(t, users, 2)

	// The directory exposes id, name and role only.
	require.NotContains(t, w.Body.String(), "email")
	require.NotContains(t, w.Body.String(), "@example.com")

	byName := map[string]models.Role{}
	for _, u := range users {
		byName[u.Name] = u.Role
	}
	require.Equal(t, models.RoleAdmin, byName["Alice"])
	require.Equal(t, models.RoleDeveloper, byName["Bob"])
}

func TestUserHandler_ListEmptyDirectory(t *testing.T) {
	env := setupTestEnv(t)

	// Token verification is stateless, so a signed token works even with an
	// empty user table.
	token, err := env.jwt.GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/users", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "No users found")
}

func TestUserHandler_ListRequiresToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
