package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trackline/task-tracker-api/internal/auth"
	"github.com/trackline/task-tracker-api/internal/dto"
	"github.com/trackline/task-tracker-api/internal/events"
	"github.com/trackline/task-tracker-api/internal/middleware"
	"github.com/trackline/task-tracker-api/internal/models"
	"github.com/trackline/task-tracker-api/internal/repository"
	"github.com/trackline/task-tracker-api/internal/services"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	jwt    *auth.JWTService
	hub    *events.Hub
}

// setupTestEnv builds the full route table over an in-memory database,
// mirroring the wiring in cmd/server.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.TaskLog{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	jwtService := auth.NewJWTService([]byte("test-secret"), time.Hour)
	hub := events.NewHub()

	authService := services.NewAuthService(userRepo, jwtService)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(authService)
	projectHandler := NewProjectHandler(projectService)
	taskHandler := NewTaskHandler(taskService, hub)

	requireAuth := middleware.RequireAuth(jwtService)

	r := gin.New()

	authGroup := r.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	r.GET("/users", requireAuth, userHandler.List)

	projectGroup := r.Group("/projects")
	projectGroup.Use(requireAuth)
	projectGroup.POST("", projectHandler.Create)
	projectGroup.GET("", projectHandler.List)
	projectGroup.GET("/:id", projectHandler.GetByID)
	projectGroup.POST("/:id/tasks", taskHandler.Create)
	projectGroup.GET("/:id/tasks", taskHandler.ListByProject)

	taskGroup := r.Group("/tasks")
	taskGroup.Use(requireAuth)
	taskGroup.PUT("/:id", taskHandler.Update)
	taskGroup.DELETE("/:id", taskHandler.Delete)
	taskGroup.GET("/:id/logs", taskHandler.Logs)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"message": "Route not found"})
	})

	return &testEnv{
		db:     db,
		router: r,
		jwt:    jwtService,
		hub:    hub,
	}
}

// do performs a JSON request against the test router. An empty token leaves
// the request unauthenticated.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns the response.
func (e *testEnv) register(t *testing.T, name, email, password, role string) dto.AuthResponseDTO {
	t.Helper()

	payload := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	if role != "" {
		payload["role"] = role
	}

	w := e.do(t, http.MethodPost, "/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.AuthResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
