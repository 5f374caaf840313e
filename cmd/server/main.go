package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/trackline/task-tracker-api/internal/auth"
	"github.com/trackline/task-tracker-api/internal/config"
	"github.com/trackline/task-tracker-api/internal/database"
	"github.com/trackline/task-tracker-api/internal/events"
	"github.com/trackline/task-tracker-api/internal/handlers"
	"github.com/trackline/task-tracker-api/internal/middleware"
	"github.com/trackline/task-tracker-api/internal/repository"
	"github.com/trackline/task-tracker-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	db := database.GetDB()

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	jwtService := auth.NewJWTService([]byte(cfg.JWTSecret), cfg.JWTTTL)
	hub := events.NewHub()

	authService := services.NewAuthService(userRepo, jwtService)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService, hub)
	eventsHandler := handlers.NewEventsHandler(hub)

	// Initialize Gin router
	r := gin.Default()

	requireAuth := middleware.RequireAuth(jwtService)

	// Liveness endpoint
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Task Tracker API is running")
	})

	// Auth routes (public)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// User directory (protected)
	r.GET("/users", requireAuth, userHandler.List)

	// Project routes (protected)
	projectGroup := r.Group("/projects")
	projectGroup.Use(requireAuth)
	{
		projectGroup.POST("", projectHandler.Create)
		projectGroup.GET("", projectHandler.List)
		projectGroup.GET("/:id", projectHandler.GetByID)
		projectGroup.POST("/:id/tasks", taskHandler.Create)
		projectGroup.GET("/:id/tasks", taskHandler.ListByProject)
	}

	// Task routes (protected)
	taskGroup := r.Group("/tasks")
	taskGroup.Use(requireAuth)
	{
		taskGroup.PUT("/:id", taskHandler.Update)
		taskGroup.DELETE("/:id", taskHandler.Delete)
		taskGroup.GET("/:id/logs", taskHandler.Logs)
	}

	// Real-time broadcast feed. The channel itself carries no authentication;
	// clients self-filter by assignee.
	r.GET("/events", eventsHandler.Stream)

	// 404 fallback
	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"message": "Route not found"})
	})

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
