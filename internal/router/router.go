package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/hygiea-go-api/internal/config"
	"github.com/noah-isme/hygiea-go-api/internal/handler"
	"github.com/noah-isme/hygiea-go-api/internal/middleware"
	"github.com/noah-isme/hygiea-go-api/internal/observability"
	"github.com/noah-isme/hygiea-go-api/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	SessionHandler     *handler.SessionHandler
	DirectoryHandler   *handler.DirectoryHandler
	SettingsHandler    *handler.SettingsHandler
	RecordHandler      *handler.RecordHandler
	DraftHandler       *handler.DraftHandler
	DiagnosticsHandler *handler.DiagnosticsHandler
	ActivityHandler    *handler.ActivityHandler
	SeedHandler        *handler.SeedHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.SessionHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("login", 10, time.Minute))
		deps.SessionHandler.Register(auth)
	}

	anySession := middleware.RequireRole(service.RoleTeam, service.RoleAdmin)

	if deps.DirectoryHandler != nil {
		directory := api.Group("/directory", jwtMiddleware, anySession)
		deps.DirectoryHandler.Register(directory)
	}

	if deps.SettingsHandler != nil {
		settings := api.Group("/settings", jwtMiddleware, anySession)
		deps.SettingsHandler.Register(settings)
		deps.SettingsHandler.RegisterAdmin(api.Group("/settings", jwtMiddleware, middleware.RequireRole(service.RoleAdmin)))
	}

	if deps.RecordHandler != nil {
		records := api.Group("/records", jwtMiddleware, anySession, middleware.RateLimit("records", 30, time.Minute))
		deps.RecordHandler.Register(records)
	}

	if deps.DraftHandler != nil {
		draft := api.Group("/draft", jwtMiddleware, anySession)
		deps.DraftHandler.Register(draft)
	}

	// Diagnostics backs the pre-login status panel, so it stays open.
	if deps.DiagnosticsHandler != nil {
		deps.DiagnosticsHandler.Register(api.Group("/diagnostics"))
	}

	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(service.RoleAdmin))

	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(admin.Group("/activity"))
	}

	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(admin.Group("/seed"))
	}
}
