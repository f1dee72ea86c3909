package routes

import (
	"librental/internal/adapters/http/handlers"
	"librental/internal/adapters/http/middleware"
	"librental/internal/adapters/persistence/repositories"
	"librental/internal/config"
	"librental/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)

	// Initialize services
	notifier := services.NewNotifier()
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	bookService := services.NewBookService(bookRepo)
	reservationService := services.NewReservationService(reservationRepo, bookRepo, userRepo, notifier)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	bookHandler := handlers.NewBookHandler(bookService)
	reservationHandler := handlers.NewReservationHandler(reservationService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, userHandler, bookHandler, reservationHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	bookHandler *handlers.BookHandler,
	reservationHandler *handlers.ReservationHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Book catalog routes (public reads, librarian writes)
	bookRoutes := router.Group("/books")
	setupBookRoutes(bookRoutes, bookHandler, cfg)

	// Reservation routes (authenticated)
	reservationRoutes := router.Group("/reservations")
	reservationRoutes.Use(middleware.AuthMiddleware(cfg))
	setupReservationRoutes(reservationRoutes, reservationHandler)

	// User management routes (Admin only)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited against brute force)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupBookRoutes configures catalog routes
func setupBookRoutes(router fiber.Router, handler *handlers.BookHandler, cfg *config.Config) {
	// Public reads with catalog caching
	router.Get("/", middleware.CatalogCache(), handler.List)
	router.Get("/:external_id", middleware.CatalogCache(), handler.GetByExternalID)

	// Librarian/Admin writes
	librarianRoutes := router.Group("")
	librarianRoutes.Use(middleware.AuthMiddleware(cfg))
	librarianRoutes.Use(middleware.LibrarianOrAdmin())

	librarianRoutes.Post("/", handler.Create)
	librarianRoutes.Put("/:external_id", handler.Update)
}

// setupReservationRoutes configures reservation routes
func setupReservationRoutes(router fiber.Router, handler *handlers.ReservationHandler) {
	// Members can view their own reservations
	router.Get("/my", middleware.NoCacheHeaders(), handler.GetMyReservations)

	// Librarian/Admin routes
	librarianRoutes := router.Group("")
	librarianRoutes.Use(middleware.LibrarianOrAdmin())

	librarianRoutes.Post("/", handler.Create)
	librarianRoutes.Get("/", handler.List)
	librarianRoutes.Get("/overdue", handler.GetOverdue)
	librarianRoutes.Get("/user/:user_id", handler.GetByUser)
	librarianRoutes.Get("/:id", handler.GetByID)
	librarianRoutes.Put("/:id/return", handler.Return)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	// Self-service routes (Authenticated)
	router.Put("/me", handler.UpdateProfile)
	router.Put("/me/password", middleware.StrictRateLimiter(), handler.ChangePassword)

	// Admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())

	adminRoutes.Get("/", handler.List)
	adminRoutes.Get("/:id", handler.GetByID)
	adminRoutes.Put("/:id", handler.Update)
	adminRoutes.Delete("/:id", handler.Delete)
}
