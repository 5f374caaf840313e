package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/trackline/task-tracker-api/internal/auth"
	apierrors "github.com/trackline/task-tracker-api/internal/errors"
	"github.com/trackline/task-tracker-api/internal/models"
)

// Context keys for the authenticated caller.
const (
	ContextKeyUserID   = "userID"
	ContextKeyUserRole = "userRole"
)

// RequireAuth verifies the bearer token on the request and attaches the
// decoded identity to the context. A missing token is a 401; a token that is
// present but fails verification (malformed, expired, bad signature) is a
// 403. The split depends only on whether a token was supplied at all.
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		var tokenString string
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
			tokenString = parts[1]
		}

		if tokenString == "" {
			apierrors.Unauthorized(c, "Access token required")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			apierrors.Forbidden(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserRole, claims.Role)
		c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allow-list. It must
// run after RequireAuth. No current endpoint mounts it; it is part of the
// contract for endpoints that need a role gate.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			apierrors.Forbidden(c, "Access forbidden: insufficient role")
			c.Abort()
			return
		}

		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "Access forbidden: insufficient role")
		c.Abort()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := v.(uint64)
	return id, ok
}

// GetUserRole retrieves the current user role from context
func GetUserRole(c *gin.Context) (models.Role, bool) {
	v, exists := c.Get(ContextKeyUserRole)
	if !exists {
		return "", false
	}

	role, ok := v.(models.Role)
	return role, ok
}
