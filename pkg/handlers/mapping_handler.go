package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/services"
)

// MapColumnsRequest for POST /api/mapping/columns
type MapColumnsRequest struct {
	Headers []string                  `json:"headers"`
	Samples map[string][]string       `json:"samples,omitempty"`
	Units   []models.OrganizationUnit `json:"units"`
}

// MapIdentityRequest for POST /api/mapping/identity
type MapIdentityRequest struct {
	Headers []string `json:"headers"`
}

// MappingHandler handles survey column mapping requests.
type MappingHandler struct {
	mappingService services.MappingService
	logger         *zap.Logger
}

// NewMappingHandler creates a new mapping handler.
func NewMappingHandler(mappingService services.MappingService, logger *zap.Logger) *MappingHandler {
	return &MappingHandler{
		mappingService: mappingService,
		logger:         logger,
	}
}

// RegisterRoutes registers the mapping handler's routes on the given mux.
func (h *MappingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/mapping/columns", h.MapColumns)
	mux.HandleFunc("POST /api/mapping/identity", h.MapIdentity)
}

// MapColumns handles POST /api/mapping/columns
func (h *MappingHandler) MapColumns(w http.ResponseWriter, r *http.Request) {
	var req MapColumnsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"body": "invalid JSON"})
		})
		return
	}

	if len(req.Headers) == 0 {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"headers": "at least one header is required"})
		})
		return
	}

	mappings, err := h.mappingService.MapColumns(r.Context(), req.Headers, req.Samples, req.Units)
	if err != nil {
		h.respondError(w, "map columns", err)
		return
	}

	respondJSON(w, h.logger, func() error {
		return WriteJSON(w, http.StatusOK, map[string]any{"mappings": mappings})
	})
}

// MapIdentity handles POST /api/mapping/identity
func (h *MappingHandler) MapIdentity(w http.ResponseWriter, r *http.Request) {
	var req MapIdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"body": "invalid JSON"})
		})
		return
	}

	if len(req.Headers) == 0 {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"headers": "at least one header is required"})
		})
		return
	}

	mapping, err := h.mappingService.MapIdentityColumns(r.Context(), req.Headers)
	if err != nil {
		h.respondError(w, "map identity columns", err)
		return
	}

	respondJSON(w, h.logger, func() error {
		return WriteJSON(w, http.StatusOK, map[string]any{"mapping": mapping})
	})
}

func (h *MappingHandler) respondError(w http.ResponseWriter, op string, err error) {
	status, message, details := MapError(err)
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err))
	respondJSON(w, h.logger, func() error { return ErrorResponse(w, status, message, details) })
}
