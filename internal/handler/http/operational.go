package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/models"
)

const (
	welcomeMessage = "Welcome to the post-board API"
	healthTimeout  = 2 * time.Second
)

func (h *Handler) welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(welcomeMessage)); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

// healthz reports whether the storage backend answers a ping.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		logger.FromRequest(r).Err(err).Msg("storage health check failed")
		writeJSON(w, r, models.HealthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, r, models.HealthResponse{Status: "ok"}, http.StatusOK)
}
