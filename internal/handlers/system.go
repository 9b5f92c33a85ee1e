package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime = time.Now()
var Version = "1.0.0"

type SystemHandler struct {
	db *gorm.DB
}

func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

func (h *SystemHandler) Health(c *fiber.Ctx) error {
	dbStatus := "ok"
	statusCode := fiber.StatusOK

	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		statusCode = fiber.StatusServiceUnavailable
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "unreachable: " + err.Error()
		statusCode = fiber.StatusServiceUnavailable
	}

	overall := "ok"
	if statusCode != fiber.StatusOK {
		overall = "degraded"
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":  overall,
		"service": "sitesmith",
		"version": Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"uptime":  time.Since(startTime).String(),
		"db":      dbStatus,
	})
}

func (h *SystemHandler) Info(c *fiber.Ctx) error {
	var clientCount, artifactCount, conversationCount int64
	h.db.Model(&struct{}{}).Table("clients").Count(&clientCount)
	h.db.Model(&struct{}{}).Table("site_artifacts").Count(&artifactCount)
	h.db.Model(&struct{}{}).Table("site_conversations").Count(&conversationCount)

	return c.JSON(fiber.Map{
		"version":       Version,
		"uptime":        time.Since(startTime).String(),
		"clients":       clientCount,
		"sites":         artifactCount,
		"conversations": conversationCount,
	})
}
