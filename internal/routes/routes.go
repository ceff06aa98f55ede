package routes

import (
	"time"

	"github.com/canozbey/planwise-backend/internal/config"
	"github.com/canozbey/planwise-backend/internal/handlers"
	"github.com/canozbey/planwise-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	eventHandler *handlers.EventHandler,
	permissionHandler *handlers.PermissionHandler,
	versionHandler *handlers.VersionHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Events (JWT required). /batch is registered before /:id so it wins.
	events := api.Group("/events", middleware.JWTProtected(cfg))
	events.Post("/batch", eventHandler.BatchCreate)
	events.Post("/", eventHandler.Create)
	events.Get("/", eventHandler.List)
	events.Get("/:id", eventHandler.Get)
	events.Put("/:id", eventHandler.Update)
	events.Delete("/:id", eventHandler.Delete)

	// Collaboration
	events.Post("/:id/share", permissionHandler.Share)
	events.Get("/:id/permissions", permissionHandler.List)
	events.Put("/:id/permissions/:userId", permissionHandler.Update)
	events.Delete("/:id/permissions/:userId", permissionHandler.Delete)

	// Version history
	events.Get("/:id/changelog", versionHandler.Changelog)
	events.Get("/:id/history/:versionId", versionHandler.GetVersion)
	events.Post("/:id/rollback/:versionId", versionHandler.Rollback)
	events.Get("/:id/diff/:versionId1/:versionId2", versionHandler.Diff)
}
