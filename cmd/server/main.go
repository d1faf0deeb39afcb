package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"todoboard/internal/config"
	"todoboard/internal/constants"
	"todoboard/internal/database"
	"todoboard/internal/handlers"
	"todoboard/internal/middleware"
	"todoboard/internal/models"
	"todoboard/internal/repository"
	"todoboard/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	permRepo := repository.NewPermissionRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	boardService := services.NewBoardService(boardRepo, permRepo)
	todoService := services.NewTodoService(todoRepo, boardRepo)
	permService := services.NewPermissionService(permRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	boardHandler := handlers.NewBoardHandler(boardService)
	todoHandler := handlers.NewTodoHandler(todoService)
	permHandler := handlers.NewPermissionHandler(permService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Todo Board API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Board list for the authenticated caller
		api.GET("/user/boards", middleware.RequireAuth(), permHandler.ListUserBoards)

		// Board routes (protected)
		boards := api.Group("/boards")
		boards.Use(middleware.RequireAuth())
		{
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("", boardHandler.ListBoards)

			viewer := middleware.RequireBoardPermission(permRepo, models.PermissionViewer)
			editor := middleware.RequireBoardPermission(permRepo, models.PermissionEditor)
			owner := middleware.RequireBoardPermission(permRepo, models.PermissionOwner)

			boards.GET("/:id", viewer, middleware.InjectBoardPermission(permRepo), boardHandler.GetBoard)
			boards.PUT("/:id", editor, boardHandler.UpdateBoard)
			boards.DELETE("/:id", owner, boardHandler.DeleteBoard)

			// Sharing routes
			boards.POST("/:id/share", owner, permHandler.ShareBoard)
			boards.GET("/:id/permissions", viewer, permHandler.ListPermissions)
			boards.PUT("/:id/permissions/:user_id", owner, permHandler.UpdatePermission)
			boards.DELETE("/:id/permissions/:user_id", owner, permHandler.RemovePermission)

			// Todo routes
			boards.GET("/:id/todos", viewer, todoHandler.ListTodos)
			boards.POST("/:id/todos", editor, todoHandler.CreateTodo)
			boards.GET("/:id/todos/:todo_id", viewer, todoHandler.GetTodo)
			boards.PUT("/:id/todos/:todo_id", editor, todoHandler.UpdateTodo)
			boards.DELETE("/:id/todos/:todo_id", editor, todoHandler.DeleteTodo)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
