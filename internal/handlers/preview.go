package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sitesmith/sitesmith/internal/services"
)

// placeholderDocument is what /sites/{clientId} serves before the first
// generation. A missing site is an expected state, not an error, so
// this is a 200 like any other page.
const placeholderDocument = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Coming Soon</title>
<style>
  body { font-family: system-ui, sans-serif; display: flex; align-items: center; justify-content: center; min-height: 100vh; margin: 0; background: #f5f5f4; color: #44403c; }
  main { text-align: center; padding: 2rem; }
  h1 { font-weight: 600; }
</style>
</head>
<body>
<main>
  <h1>This site hasn't been created yet</h1>
  <p>Check back soon.</p>
</main>
</body>
</html>
`

type PreviewHandler struct {
	store *services.VersionStore
}

func NewPreviewHandler(store *services.VersionStore) *PreviewHandler {
	return &PreviewHandler{store: store}
}

// RenderSite serves the client's current html verbatim. No sanitizing
// or rewriting happens here: the generation prompt demands a complete
// self-contained document and the preview trusts it.
func (h *PreviewHandler) RenderSite(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("clientId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Not found")
	}

	artifact, err := h.store.GetLatestArtifact(clientID)
	if err != nil {
		slog.Error("Failed to load artifact for preview", "client_id", clientID, "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	c.Set(fiber.HeaderContentType, "text/html; charset=utf-8")
	if artifact == nil {
		return c.SendString(placeholderDocument)
	}
	return c.SendString(artifact.HTML)
}
