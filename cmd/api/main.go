package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"moneyflow/internal/chat"
	"moneyflow/internal/config"
	"moneyflow/internal/database"
	"moneyflow/internal/handlers"
	"moneyflow/internal/logger"
	"moneyflow/internal/middleware"
	"moneyflow/internal/services"
	"moneyflow/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "moneyflow/internal/docs" // Import swagger docs
)

// @title           MoneyFlow API
// @version         1.0
// @description     MoneyFlow is a personal finance application that tracks income and expenses, reports analytics, and answers questions through an LLM-backed financial advisor.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, categoryService)
	analyticsService := services.NewAnalyticsService(db)
	auditService := services.NewAuditService(db)

	// Wire the advisor: aggregator over the same database, a Gemini gateway,
	// and a process-lifetime session store.
	gateway, err := chat.NewGeminiGateway(context.Background(), appConfig.GeminiAPIKey, appConfig.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to create gemini gateway: %w", err)
	}
	aggregator := chat.NewAggregator(db)
	advisor := chat.NewAdvisor(gateway, aggregator, chat.NewSessionStore())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	chatHandler := handlers.NewChatHandler(advisor, aggregator)
	adminHandler := handlers.NewAdminHandler(userService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Account routes
	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.Me)
	protected.PUT("/auth/me", authHandler.UpdateProfile)
	protected.DELETE("/auth/me", authHandler.DeactivateAccount)
	protected.POST("/auth/change-password", authHandler.ChangePassword)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Analytics routes
	analytics := protected.Group("/analytics")
	analytics.GET("/summary", analyticsHandler.Summary)
	analytics.GET("/category-breakdown", analyticsHandler.CategoryBreakdown)
	analytics.GET("/monthly-comparison", analyticsHandler.MonthlyComparison)
	analytics.GET("/trend", analyticsHandler.Trend)
	analytics.GET("/dashboard", analyticsHandler.Dashboard)

	// Chatbot routes, rate-limited per user since each request may fan out
	// into paid model calls
	chatbot := protected.Group("/chatbot")
	chatbot.Use(middleware.RateLimit(appConfig.ChatRatePerMinute, appConfig.ChatRateBurst))
	chatbot.POST("/chat", chatHandler.Chat)
	chatbot.GET("/financial-summary", chatHandler.FinancialSummary)
	chatbot.GET("/spending-analysis", chatHandler.SpendingAnalysis)
	chatbot.GET("/quick-advice", chatHandler.QuickAdvice)
	chatbot.POST("/clear-history", chatHandler.ClearHistory)

	// Admin routes
	admin := protected.Group("/admin")
	admin.Use(middleware.AdminMiddleware())
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeactivateUser)
	admin.GET("/stats", adminHandler.Stats)

	log.Infof("Starting MoneyFlow backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
