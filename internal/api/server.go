// Package api exposes the window service over HTTP and a websocket
// event stream, the transport consumed by the overlay UI.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bryanchriswhite/rifthold/internal/config"
	"github.com/bryanchriswhite/rifthold/internal/hotkey"
	"github.com/bryanchriswhite/rifthold/internal/logger"
	"github.com/bryanchriswhite/rifthold/internal/service"
	"github.com/bryanchriswhite/rifthold/internal/window"
)

// Server routes window operations to the service layer.
type Server struct {
	router    *mux.Router
	svc       *service.WindowService
	configMgr *config.Manager
	hotkeys   *hotkey.Manager
	hub       *Hub
}

// NewServer wires the routes. The hub must be the same emitter the
// service's refresh coordinator writes to.
func NewServer(svc *service.WindowService, configMgr *config.Manager, hotkeys *hotkey.Manager, hub *Hub) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		svc:       svc,
		configMgr: configMgr,
		hotkeys:   hotkeys,
		hub:       hub,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/windows", s.handleListWindows).Methods("GET")
	api.HandleFunc("/windows/refresh", s.handleRefresh).Methods("POST")
	api.HandleFunc("/windows/{id}/activate", s.handleActivate).Methods("POST")

	api.HandleFunc("/shortcut", s.handleGetShortcut).Methods("GET")
	api.HandleFunc("/shortcut", s.handleSetShortcut).Methods("PUT")

	api.HandleFunc("/permissions", s.handlePermissions).Methods("GET")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	api.HandleFunc("/events", s.hub.HandleEvents)
}

// Router returns the configured handler, for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves the API on the given port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logger.WithComponent("api").Info().
		Str("addr", addr).
		Msg("starting server")
	return http.ListenAndServe(addr, s.router)
}

func boolQuery(r *http.Request, name string, def bool) bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func (s *Server) handleListWindows(w http.ResponseWriter, r *http.Request) {
	refresh := boolQuery(r, "refresh", false)
	thumbnails := boolQuery(r, "thumbnails", true)

	windows := s.svc.List(refresh, thumbnails)
	if windows == nil {
		windows = []window.Info{}
	}

	writeJSON(w, http.StatusOK, windows)
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := s.svc.Activate(id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, window.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.svc.StartAsyncRefresh()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleGetShortcut(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"shortcut": s.hotkeys.Current()})
}

func (s *Server) handleSetShortcut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Shortcut string `json:"shortcut"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.hotkeys.Rebind(req.Shortcut); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.configMgr.SetShortcut(req.Shortcut); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"shortcut": req.Shortcut})
}

func (s *Server) handlePermissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"screen_recording": s.svc.ScreenRecordingPermitted(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"clients": s.hub.ClientCount(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithComponent("api").Error().
			Err(err).
			Msg("failed to encode response")
	}
}
