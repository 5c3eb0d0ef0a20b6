package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// HealthHandler reports process liveness and build version.
type HealthHandler struct {
	version string
	logger  *zap.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(version string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{version: version, logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, func() error {
		return WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": h.version,
		})
	})
}
