package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sitesmith/sitesmith/internal/services"
)

// WatchHandler streams artifact-replacement events over a websocket so
// the editor UI reloads its preview pane after every save.
type WatchHandler struct {
	notifier *services.Notifier
}

func NewWatchHandler(notifier *services.Notifier) *WatchHandler {
	return &WatchHandler{notifier: notifier}
}

// UpgradeCheck is middleware that checks if the request is a websocket upgrade
func (h *WatchHandler) UpgradeCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// HandleWatch pushes one JSON event per artifact replacement. Events
// carry no body; the watcher re-fetches the artifact itself.
func (h *WatchHandler) HandleWatch() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		clientID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			c.WriteMessage(websocket.TextMessage, []byte("Error: Invalid client ID"))
			return
		}

		events, cancel := h.notifier.Subscribe(clientID)
		defer cancel()

		// Drain reads so we notice the peer closing.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-events:
				if err := c.WriteJSON(fiber.Map{
					"event":     "artifact_updated",
					"client_id": clientID.String(),
				}); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}
