package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/telemock/callsim/internal/core/port"
)

// Handler exposes the simulator to the call manager. Each websocket
// connection on /ws becomes one attach/detach session with its own
// engine instance.
type Handler struct {
	newEngine func() port.CallHandler
	sessions  *SessionManager
}

func NewHandler(newEngine func() port.CallHandler, sessions *SessionManager) *Handler {
	return &Handler{
		newEngine: newEngine,
		sessions:  sessions,
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ws", h.ServeWS)
	r.Get("/healthz", h.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": h.sessions.Count(),
	})
}
