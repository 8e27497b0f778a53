package handlers

import (
	"log/slog"
	"net/http"

	"github.com/makeadle/dle-service/internal/app/play"
	"github.com/makeadle/dle-service/internal/sweeper"
)

// Handler wires HTTP routes to the play service.
type Handler struct {
	svc       *play.Service
	logger    *slog.Logger
	publicURL string
	statusFn  func() sweeper.Status
}

// NewHandler constructs a Handler. publicURL prefixes links in share codes.
func NewHandler(svc *play.Service, logger *slog.Logger, publicURL string, statusFn func() sweeper.Status) *Handler {
	return &Handler{
		svc:       svc,
		logger:    logger,
		publicURL: publicURL,
		statusFn:  statusFn,
	}
}

// HealthResponse reports liveness and hosting load.
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Sweeps   int    `json:"sweeps,omitempty"`
	Evicted  int    `json:"evicted,omitempty"`
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"}, h.logger)
}

// Ready reports readiness for traffic along with session counts.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ready", Sessions: len(h.svc.Sessions())}
	if h.statusFn != nil {
		st := h.statusFn()
		resp.Sweeps = st.Sweeps
		resp.Evicted = st.TotalEvicted
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}
