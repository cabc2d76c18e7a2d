package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dstasiak/cs2-tracker/live"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The feed is read-only broadcast data, so any origin may subscribe.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeRankingFeed upgrades the connection and subscribes it to ranking
// update notifications. Clients connect to /ws/ranking.
func (h *WebSocketHandler) ServeRankingFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client, just log it.
		slog.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}
	live.NewClient(h.hub, conn)
}
