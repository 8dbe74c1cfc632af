// Package server assembles the HTTP router.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/jodijonatan/cashnote/internal/docs" // Import swagger docs
	"github.com/jodijonatan/cashnote/internal/handlers"
	"github.com/jodijonatan/cashnote/internal/middleware"
	"github.com/jodijonatan/cashnote/internal/services"
)

// Deps holds everything the router needs.
type Deps struct {
	DB                 *gorm.DB
	Users              services.UserServicer
	Transactions       services.TransactionServicer
	Targets            services.TargetServicer
	Advisor            services.AdvisorServicer
	Audit              services.AuditServicer
	Tokens             *middleware.TokenIssuer
	Google             handlers.GoogleSignIn // nil disables Google sign-in
	FrontendURL        string
	CORSAllowedOrigins []string
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(d Deps) *gin.Engine {
	authHandler := handlers.NewAuthHandler(d.Users, d.Audit, d.Tokens, d.Google, d.FrontendURL)
	transactionHandler := handlers.NewTransactionHandler(d.Transactions, d.Audit)
	targetHandler := handlers.NewTargetHandler(d.Targets, d.Audit)
	advisorHandler := handlers.NewAdvisorHandler(d.Advisor)
	healthHandler := handlers.NewHealthHandler(d.DB)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(d.CORSAllowedOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.GET("/health", healthHandler.Health)

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/google", authHandler.GoogleLogin)
	auth.GET("/google/callback", authHandler.GoogleCallback)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(d.Tokens))

	protected.GET("/profile", authHandler.GetProfile)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/summary", transactionHandler.GetSummary)
	transactions.GET("/chart", transactionHandler.GetChart)
	transactions.GET("/categories", transactionHandler.GetCategoryBreakdown)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	targets := protected.Group("/targets")
	targets.GET("", targetHandler.GetUserTargets)
	targets.POST("", targetHandler.CreateTarget)
	targets.GET("/summary", targetHandler.GetSummary)
	targets.PUT("/:id", targetHandler.UpdateTarget)
	targets.DELETE("/:id", targetHandler.DeleteTarget)
	targets.POST("/:id/progress", targetHandler.AddProgress)

	ai := protected.Group("/ai")
	ai.POST("/advisor", advisorHandler.Advise)
	ai.POST("/analyze", advisorHandler.Analyze)

	return router
}
