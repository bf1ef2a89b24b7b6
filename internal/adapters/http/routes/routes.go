package routes

import (
	"github.com/Ekantik19/SC2002-sub000/internal/adapters/http/handlers"
	"github.com/Ekantik19/SC2002-sub000/internal/adapters/http/middleware"
	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/repositories"
	"github.com/Ekantik19/SC2002-sub000/internal/config"
	"github.com/Ekantik19/SC2002-sub000/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	registrationRepo := repositories.NewRegistrationRepository(db)
	enquiryRepo := repositories.NewEnquiryRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)

	eligibilityService := services.NewEligibilityService()
	inventoryService := services.NewInventoryService(projectRepo, registrationRepo)

	projectService := services.NewProjectService(projectRepo, applicationRepo, registrationRepo)
	applicationService := services.NewApplicationService(
		applicationRepo,
		projectRepo,
		userRepo,
		registrationRepo,
		eligibilityService,
		inventoryService,
	)
	withdrawalService := services.NewWithdrawalService(applicationRepo, inventoryService)
	registrationService := services.NewRegistrationService(
		registrationRepo,
		applicationRepo,
		projectRepo,
		userRepo,
		inventoryService,
	)
	enquiryService := services.NewEnquiryService(enquiryRepo, projectRepo, registrationService)
	reportService := services.NewReportService(applicationRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService, userService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, withdrawalService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	enquiryHandler := handlers.NewEnquiryHandler(enquiryService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public + protected)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User routes
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)

	// Project routes
	projectRoutes := apiV1.Group("/projects")
	projectRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProjectRoutes(projectRoutes, projectHandler, applicationHandler, registrationHandler, enquiryHandler)

	// Application routes
	applicationRoutes := apiV1.Group("/applications")
	applicationRoutes.Use(middleware.AuthMiddleware(cfg))
	setupApplicationRoutes(applicationRoutes, applicationHandler)

	// Officer registration routes
	registrationRoutes := apiV1.Group("/registrations")
	registrationRoutes.Use(middleware.AuthMiddleware(cfg))
	setupRegistrationRoutes(registrationRoutes, registrationHandler)

	// Enquiry routes
	enquiryRoutes := apiV1.Group("/enquiries")
	enquiryRoutes.Use(middleware.AuthMiddleware(cfg))
	setupEnquiryRoutes(enquiryRoutes, enquiryHandler)

	// Report routes (manager only)
	reportRoutes := apiV1.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg))
	reportRoutes.Use(middleware.ManagerOnly())
	setupReportRoutes(reportRoutes, reportHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Patch("/me/password", handler.ChangePassword)

	// Manager only
	router.Get("/", middleware.ManagerOnly(), handler.List)
	router.Patch("/:id/role", middleware.ManagerOnly(), handler.SetRole)
}

// setupProjectRoutes configures project routes
func setupProjectRoutes(
	router fiber.Router,
	projectHandler *handlers.ProjectHandler,
	applicationHandler *handlers.ApplicationHandler,
	registrationHandler *handlers.RegistrationHandler,
	enquiryHandler *handlers.EnquiryHandler,
) {
	router.Get("/", projectHandler.List)
	router.Get("/mine", middleware.ManagerOnly(), projectHandler.MyProjects)
	router.Get("/:id", projectHandler.Get)
	router.Get("/:id/enquiries", enquiryHandler.ListByProject)

	// Manager only
	router.Post("/", middleware.ManagerOnly(), projectHandler.Create)
	router.Put("/:id", middleware.ManagerOnly(), projectHandler.Update)
	router.Delete("/:id", middleware.ManagerOnly(), projectHandler.Delete)
	router.Patch("/:id/visibility", middleware.ManagerOnly(), projectHandler.SetVisibility)
	router.Get("/:id/registrations", middleware.ManagerOnly(), registrationHandler.ListByProject)

	// Handling staff
	router.Get("/:id/applications", middleware.OfficerOrManager(), applicationHandler.ListByProject)
}

// setupApplicationRoutes configures application lifecycle routes
func setupApplicationRoutes(router fiber.Router, handler *handlers.ApplicationHandler) {
	// Applicants (officers may also apply, just not for a project they handle)
	router.Post("/", middleware.ApplicantOrOfficer(), handler.Submit)
	router.Get("/mine", handler.Mine)
	router.Post("/:id/withdrawal", handler.RequestWithdrawal)

	// Officer actions
	router.Post("/:id/book", middleware.OfficerOrManager(), handler.Book)

	// Manager actions
	router.Post("/:id/approve", middleware.ManagerOnly(), handler.Approve)
	router.Post("/:id/reject", middleware.ManagerOnly(), handler.Reject)
	router.Post("/:id/withdrawal/approve", middleware.ManagerOnly(), handler.ApproveWithdrawal)
	router.Post("/:id/withdrawal/reject", middleware.ManagerOnly(), handler.RejectWithdrawal)
}

// setupRegistrationRoutes configures officer registration routes
func setupRegistrationRoutes(router fiber.Router, handler *handlers.RegistrationHandler) {
	router.Post("/", middleware.OfficerOnly(), handler.Register)
	router.Get("/mine", middleware.OfficerOrManager(), handler.Mine)

	// Manager actions
	router.Post("/:id/approve", middleware.ManagerOnly(), handler.Approve)
	router.Post("/:id/reject", middleware.ManagerOnly(), handler.Reject)
}

// setupEnquiryRoutes configures enquiry routes
func setupEnquiryRoutes(router fiber.Router, handler *handlers.EnquiryHandler) {
	router.Post("/", handler.Submit)
	router.Get("/mine", handler.Mine)
	router.Put("/:id", handler.Edit)
	router.Delete("/:id", handler.Delete)

	// Handling staff
	router.Post("/:id/reply", middleware.OfficerOrManager(), handler.Reply)

	// Manager only
	router.Get("/", middleware.ManagerOnly(), handler.List)
}

// setupReportRoutes configures report routes
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Get("/applications", handler.Generate)
}
