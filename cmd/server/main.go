package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sitesmith/sitesmith/internal/config"
	"github.com/sitesmith/sitesmith/internal/crm"
	"github.com/sitesmith/sitesmith/internal/database"
	"github.com/sitesmith/sitesmith/internal/generator"
	"github.com/sitesmith/sitesmith/internal/handlers"
	"github.com/sitesmith/sitesmith/internal/routes"
	"github.com/sitesmith/sitesmith/internal/services"
)

func main() {
	// JSON structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting Sitesmith", "version", handlers.Version)

	// ─── Config ──────────────────────────────────────────────────────────
	cfg := config.Load()

	// ─── Database ────────────────────────────────────────────────────────
	if err := database.Connect(cfg); err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	db := database.DB

	if cfg.GLMAPIKey == "" {
		slog.Warn("GLM_API_KEY not set, site generation will fail until configured")
	}

	// ─── Core services ──────────────────────────────────────────────────
	directory := crm.NewDirectory(db)
	store := services.NewVersionStore(db)
	notifier := services.NewNotifier()

	// One automatic retry on transient network failure; every other
	// failure surfaces to the operator as-is.
	gen := generator.WithRetry(generator.NewClient(cfg))
	reconciler := services.NewReconciler(directory, store, gen, notifier)

	// ─── Handlers ───────────────────────────────────────────────────────
	authHandler := handlers.NewAuthHandler(cfg)
	siteHandler := handlers.NewSiteHandler(cfg, reconciler, store)
	previewHandler := handlers.NewPreviewHandler(store)
	watchHandler := handlers.NewWatchHandler(notifier)
	systemHandler := handlers.NewSystemHandler(db)

	// ─── Fiber App ──────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      "sitesmith v" + handlers.Version,
		ServerHeader: "sitesmith",
		BodyLimit:    10 * 1024 * 1024, // manual edits can carry a full site
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": message,
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))

	app.Use(recover.New(recover.Config{
		EnableStackTrace: false,
	}))

	// Security headers for the API. The public site pages are exempt
	// from framing restrictions so the editor can preview them.
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		if len(c.Path()) < 7 || c.Path()[:7] != "/sites/" {
			c.Set("X-Frame-Options", "DENY")
		}
		return c.Next()
	})

	// Request logger
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if c.Path() == "/api/health" {
			return err
		}
		slog.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.IP(),
		)
		return err
	})

	// ─── Routes ─────────────────────────────────────────────────────────
	routes.Setup(app, cfg, authHandler, siteHandler, previewHandler, watchHandler, systemHandler)

	// ─── Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		slog.Info("Shutting down Sitesmith...")

		if err := app.Shutdown(); err != nil {
			slog.Error("Fiber shutdown error", "error", err)
		}

		if sqlDB, err := database.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	// ─── Start ──────────────────────────────────────────────────────────
	listenAddr := ":" + cfg.Port
	slog.Info("Sitesmith listening", "addr", listenAddr)

	if err := app.Listen(listenAddr); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
