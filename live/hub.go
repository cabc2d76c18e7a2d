// Package live pushes ranking change notifications to websocket subscribers.
// Services call NotifyRankingChanged after any write that affects the
// leaderboard; connected clients re-fetch /api/ranking/ on receipt.
package live

import (
	"encoding/json"
	"log/slog"
	"sync"
)

const rankingUpdatedType = "RANKING_UPDATED"

type Message struct {
	Type   string `json:"type"`
	Reason string `json:"reason,omitempty"`
}

type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu      sync.RWMutex
	clients map[*Client]bool

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("websocket client registered", slog.Int("clients", h.clientCount()))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug("websocket client unregistered", slog.Int("clients", h.clientCount()))

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer: drop the message rather than block the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// NotifyRankingChanged implements the services.RankingNotifier contract.
func (h *Hub) NotifyRankingChanged(reason string) {
	payload, err := json.Marshal(Message{Type: rankingUpdatedType, Reason: reason})
	if err != nil {
		h.logger.Error("failed to marshal ranking update message", slog.Any("error", err))
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("ranking update dropped, broadcast channel full")
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
