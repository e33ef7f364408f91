package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bryanchriswhite/rifthold/internal/logger"
	"github.com/bryanchriswhite/rifthold/internal/window"
)

// Event names carried over the websocket stream.
const (
	EventWindowList      = "windows:list"
	EventThumbnail       = "window:thumbnail"
	EventRefreshComplete = "windows:thumbnails-complete"
	EventOverviewShow    = "overview:show"
)

// Event is one websocket message.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ThumbnailPayload correlates a thumbnail with its window.
type ThumbnailPayload struct {
	ID        string `json:"id"`
	Thumbnail string `json:"thumbnail"`
}

// Hub fans events out to connected websocket clients. It implements
// refresh.Emitter, so async refresh results stream straight to the UI.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // local overlay UI only
			},
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// HandleEvents upgrades the request and keeps the connection until the
// client goes away. Clients only listen; inbound messages are drained
// and discarded.
func (h *Hub) HandleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithComponent("api").Error().
			Err(err).
			Msg("websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends ev to every connected client, dropping clients whose
// connection errors.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(ev); err != nil {
			logger.WithComponent("api").Debug().
				Err(err).
				Msg("dropping websocket client")
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// WindowList implements refresh.Emitter.
func (h *Hub) WindowList(windows []window.Info) {
	h.Broadcast(Event{Type: EventWindowList, Payload: windows})
}

// Thumbnail implements refresh.Emitter.
func (h *Hub) Thumbnail(id, thumbnail string) {
	h.Broadcast(Event{Type: EventThumbnail, Payload: ThumbnailPayload{ID: id, Thumbnail: thumbnail}})
}

// RefreshComplete implements refresh.Emitter.
func (h *Hub) RefreshComplete() {
	h.Broadcast(Event{Type: EventRefreshComplete})
}

// OverviewShow notifies the UI that the global shortcut fired.
func (h *Hub) OverviewShow() {
	h.Broadcast(Event{Type: EventOverviewShow})
}
