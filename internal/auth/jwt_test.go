package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trackline/task-tracker-api/internal/models"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), time.Hour)

	user := &models.User{
		ID:    42,
		Name:  "Test User",
		Email: "test@example.com",
		Role:  models.RoleManager,
	}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, uint64(42), claims.UserID)
	require.Equal(t, models.RoleManager, claims.Role)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), -time.Minute)

	token, err := svc.GenerateToken(&models.User{ID: 1, Role: models.RoleDeveloper})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer := NewJWTService([]byte("secret-a"), time.Hour)
	verifier := NewJWTService([]byte("secret-b"), time.Hour)

	token, err := issuer.GenerateToken(&models.User{ID: 1, Role: models.RoleDeveloper})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}
