package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sitesmith/sitesmith/internal/config"
	"github.com/sitesmith/sitesmith/internal/crm"
	"github.com/sitesmith/sitesmith/internal/generator"
	"github.com/sitesmith/sitesmith/internal/services"
)

type SiteHandler struct {
	cfg        *config.Config
	reconciler *services.Reconciler
	store      *services.VersionStore
}

func NewSiteHandler(cfg *config.Config, reconciler *services.Reconciler, store *services.VersionStore) *SiteHandler {
	return &SiteHandler{cfg: cfg, reconciler: reconciler, store: store}
}

// Generate runs one AI turn for the client and returns the new artifact
// together with the full transcript.
func (h *SiteHandler) Generate(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid client ID",
		})
	}

	var req struct {
		Instruction string `json:"instruction"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request body",
		})
	}

	artifact, err := h.reconciler.Generate(c.UserContext(), clientID, req.Instruction)
	if err != nil {
		return h.writeError(c, err)
	}

	history, err := h.store.History(clientID)
	if err != nil {
		slog.Error("Failed to load conversation after generation", "client_id", clientID, "error", err)
		history = nil
	}

	return c.JSON(fiber.Map{
		"artifact":     artifact,
		"conversation": history,
		"public_url":   h.cfg.PublicBaseURL + "/sites/" + clientID.String(),
	})
}

// SaveManualEdit overwrites the artifact with the editor's html.
func (h *SiteHandler) SaveManualEdit(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid client ID",
		})
	}

	var req struct {
		HTML string `json:"html"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request body",
		})
	}

	artifact, err := h.reconciler.SaveManualEdit(c.UserContext(), clientID, req.HTML)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"artifact": artifact,
	})
}

// CurrentArtifact hydrates the editing UI's code view.
func (h *SiteHandler) CurrentArtifact(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid client ID",
		})
	}

	artifact, err := h.store.GetLatestArtifact(clientID)
	if err != nil {
		return h.writeError(c, err)
	}
	if artifact == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   true,
			"code":    "no_artifact",
			"message": "No site has been generated for this client yet",
		})
	}

	path, err := h.store.PointerPath(clientID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"artifact":    artifact,
		"public_path": path,
	})
}

// GetConversation returns the full transcript for the chat pane.
func (h *SiteHandler) GetConversation(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid client ID",
		})
	}

	history, err := h.store.History(clientID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(fiber.Map{"conversation": history})
}

// writeError maps the failure taxonomy onto stable codes. The raw
// upstream payload is echoed only for upstream rejections, never for
// other kinds.
func (h *SiteHandler) writeError(c *fiber.Ctx, err error) error {
	var upstream *generator.UpstreamError
	var netErr *generator.NetworkError

	switch {
	case errors.Is(err, services.ErrInstructionRequired), errors.Is(err, services.ErrHTMLRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"code":    "validation",
			"message": err.Error(),
		})
	case errors.Is(err, crm.ErrClientNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   true,
			"code":    "client_not_found",
			"message": "Client not found",
		})
	case errors.Is(err, generator.ErrAuthConfigMissing):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   true,
			"code":    "config_missing",
			"message": "The AI generation service is not configured",
		})
	case errors.As(err, &upstream):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":           true,
			"code":            "upstream_rejected",
			"message":         "The AI generation service rejected the request",
			"upstream_status": upstream.Status,
			"upstream_detail": upstream.Detail,
		})
	case errors.Is(err, generator.ErrEmptyCompletion):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   true,
			"code":    "empty_completion",
			"message": "The AI generation service returned an empty response",
		})
	case errors.As(err, &netErr):
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"error":   true,
			"code":    "network_failure",
			"message": "Could not reach the AI generation service",
		})
	default:
		slog.Error("Site operation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"code":    "internal",
			"message": "Internal server error",
		})
	}
}
