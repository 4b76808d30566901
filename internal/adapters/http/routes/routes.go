package routes

import (
	"bankerdir/internal/adapters/http/handlers"
	"bankerdir/internal/adapters/http/middleware"
	"bankerdir/internal/adapters/persistence/repositories"
	"bankerdir/internal/config"
	"bankerdir/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	bankerRepo := repositories.NewBankerRepository(db)
	lenderRepo := repositories.NewLenderRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	bankerService := services.NewBankerService(bankerRepo)
	lenderService := services.NewLenderService(lenderRepo)
	reviewService := services.NewReviewService(reviewRepo, bankerRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	bankerHandler := handlers.NewBankerHandler(bankerService)
	lenderHandler := handlers.NewLenderHandler(lenderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, userHandler,
		bankerHandler, lenderHandler, reviewHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	bankerHandler *handlers.BankerHandler,
	lenderHandler *handlers.LenderHandler,
	reviewHandler *handlers.ReviewHandler,
	cfg *config.Config,
) {
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public, stricter rate limit)
	auth := router.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	// Authenticated auth routes
	authProtected := router.Group("/auth", middleware.AuthMiddleware(cfg))
	authProtected.Get("/me", authHandler.Me)
	authProtected.Post("/logout-all", authHandler.LogoutAll)

	// Banker directory
	bankers := router.Group("/bankers", middleware.AuthMiddleware(cfg))
	bankers.Get("/", bankerHandler.ListBankers)
	bankers.Post("/", middleware.AdminOnly(), bankerHandler.CreateBanker)
	bankers.Post("/upload", middleware.AdminOnly(), bankerHandler.UploadBankers)
	bankers.Put("/:id", middleware.AdminOnly(), bankerHandler.UpdateBanker)
	bankers.Delete("/:id", middleware.AdminOnly(), bankerHandler.DeleteBanker)

	// Lender directory
	lenders := router.Group("/lenders", middleware.AuthMiddleware(cfg))
	lenders.Get("/", lenderHandler.ListLenders)
	lenders.Post("/", middleware.AdminOnly(), lenderHandler.CreateLender)
	lenders.Put("/:id", middleware.AdminOnly(), lenderHandler.UpdateLender)
	lenders.Delete("/:id", middleware.AdminOnly(), lenderHandler.DeleteLender)

	// Review queue
	reviews := router.Group("/reviews", middleware.AuthMiddleware(cfg))
	reviews.Get("/", reviewHandler.ListSubmissions)
	reviews.Post("/", reviewHandler.Submit)
	reviews.Post("/:id/approve", middleware.AdminOnly(), reviewHandler.Approve)
	reviews.Post("/:id/reject", middleware.AdminOnly(), reviewHandler.Reject)

	// User management
	users := router.Group("/users", middleware.AuthMiddleware(cfg))
	users.Get("/by-email", userHandler.GetUserByEmail)
	users.Get("/", middleware.AdminOnly(), userHandler.ListUsers)
	users.Get("/:id", middleware.AdminOnly(), userHandler.GetUser)
	users.Put("/:id", middleware.AdminOnly(), userHandler.UpdateUser)
	users.Delete("/:id", middleware.AdminOnly(), userHandler.DeleteUser)
}
