package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/config"
	_ "github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/docs"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires services and handlers onto app.
func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	gate := access.NewGate(db)
	invitationService := services.NewInvitationService(db, cfg, gate)
	authService := services.NewAuthService(db, cfg, gate, invitationService)
	workspaceService := services.NewWorkspaceService(db, gate)
	projectService := services.NewProjectService(db, gate)
	tableService := services.NewTableService(db, gate)
	fieldService := services.NewFieldService(db, gate)
	recordService := services.NewRecordService(db, gate)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	healthHandler := handlers.NewHealthHandler(db)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, projectService)
	entityHandler := handlers.NewEntityHandler(projectService, tableService, fieldService)
	recordHandler := handlers.NewRecordHandler(recordService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	pageHandler := handlers.NewPageHandler(workspaceService, invitationService)

	app.Get("/swagger/*", swagger.HandlerDefault)

	// Pages: the session is optional here, RouteGate decides redirects.
	session := middleware.OptionalSession(cfg)
	routeGate := middleware.RouteGate(workspaceService)
	app.Get("/dashboard", session, routeGate, pageHandler.Dashboard)
	app.Get("/login", session, routeGate, pageHandler.Login)
	app.Get("/signup", session, routeGate, pageHandler.Signup)
	app.Get("/onboarding", session, routeGate, pageHandler.Onboarding)
	app.Get("/invitations/:token", session, pageHandler.Invitation)

	api := app.Group("/api")
	if cfg.RateLimit > 0 {
		api.Use(rateLimit(cfg.RateLimit))
	}

	api.Get("/health", healthHandler.Check)
	api.Get("/palette", handlers.Palette)
	api.Get("/invitations/:token/preview", invitationHandler.Preview)

	auth := api.Group("/auth")
	if cfg.AuthRateLimit > 0 {
		auth.Use(rateLimit(cfg.AuthRateLimit))
	}
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// Registered after the public routes so they never reach the JWT check.
	protected := api.Group("", middleware.JWTProtected(cfg))

	protected.Get("/me", authHandler.Me)
	protected.Patch("/me", authHandler.UpdateMe)

	protected.Post("/workspaces", workspaceHandler.Create)
	protected.Get("/workspaces", workspaceHandler.List)
	protected.Get("/workspaces/:id", workspaceHandler.Get)
	protected.Delete("/workspaces/:id", workspaceHandler.Delete)
	protected.Get("/workspaces/:id/members", workspaceHandler.Members)
	protected.Get("/workspaces/:id/tables", workspaceHandler.Tables)
	protected.Get("/workspaces/:id/hierarchy", workspaceHandler.Hierarchy)
	protected.Post("/workspaces/:id/projects", entityHandler.CreateProject)
	protected.Post("/workspaces/:id/tables", entityHandler.CreateTable)
	protected.Post("/workspaces/:id/invitations", invitationHandler.Create)
	protected.Get("/workspaces/:id/invitations", invitationHandler.List)

	protected.Get("/projects/:id", entityHandler.GetProject)
	protected.Patch("/projects/:id", entityHandler.UpdateProject)
	protected.Delete("/projects/:id", entityHandler.DeleteProject)

	protected.Get("/tables/:id", entityHandler.GetTable)
	protected.Patch("/tables/:id", entityHandler.UpdateTable)
	protected.Delete("/tables/:id", entityHandler.DeleteTable)
	protected.Post("/tables/:id/fields", entityHandler.CreateField)
	protected.Patch("/fields/:id", entityHandler.UpdateField)
	protected.Delete("/fields/:id", entityHandler.DeleteField)

	protected.Get("/tables/:id/records", recordHandler.List)
	protected.Post("/tables/:id/records", recordHandler.Create)
	protected.Get("/tables/:id/records/:recordId", recordHandler.Get)
	protected.Put("/tables/:id/records/:recordId", recordHandler.Update)
	protected.Delete("/tables/:id/records/:recordId", recordHandler.Delete)

	protected.Delete("/invitations/:id", invitationHandler.Revoke)
	protected.Post("/invitations/:token/accept", invitationHandler.Accept)
}

func rateLimit(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               perMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}
