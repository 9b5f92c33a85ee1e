package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sitesmith/sitesmith/internal/config"
	"github.com/sitesmith/sitesmith/internal/handlers"
	"github.com/sitesmith/sitesmith/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	siteHandler *handlers.SiteHandler,
	previewHandler *handlers.PreviewHandler,
	watchHandler *handlers.WatchHandler,
	systemHandler *handlers.SystemHandler,
) {
	// ─── Public ──────────────────────────────────────────────────────────
	app.Get("/api/health", systemHandler.Health)
	app.Get("/sites/:clientId", previewHandler.RenderSite)

	// ─── Auth ────────────────────────────────────────────────────────────
	app.Post("/api/auth/login", authHandler.Login)
	app.Post("/api/auth/refresh", authHandler.Refresh)

	// ─── Protected routes ────────────────────────────────────────────────
	api := app.Group("/api", middleware.JWTProtected(cfg.JWTSecret))

	api.Get("/auth/me", authHandler.Me)
	api.Get("/system/info", systemHandler.Info)

	// Site generation and editing
	api.Post("/clients/:id/site/generate", siteHandler.Generate)
	api.Post("/clients/:id/site/manual", siteHandler.SaveManualEdit)
	api.Get("/clients/:id/site", siteHandler.CurrentArtifact)
	api.Get("/clients/:id/site/conversation", siteHandler.GetConversation)

	// Preview refresh (WebSocket)
	api.Use("/clients/:id/site/watch", watchHandler.UpgradeCheck())
	api.Get("/clients/:id/site/watch", watchHandler.HandleWatch())
}
