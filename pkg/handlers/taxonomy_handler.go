package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/prompts"
	"github.com/campus-pulse/insight-engine/pkg/services"
)

// DiscoverCategoriesRequest for POST /api/taxonomy/discover
type DiscoverCategoriesRequest struct {
	UnitName          string            `json:"unitName"`
	CurrentCategories []models.Category `json:"currentCategories"`
	Instructions      []string          `json:"instructions,omitempty"`
	Comments          []string          `json:"comments"`
}

// SuggestTaxonomyRequest for POST /api/taxonomy/suggest
type SuggestTaxonomyRequest struct {
	UnitName           string            `json:"unitName"`
	UnitDescription    string            `json:"unitDesc,omitempty"`
	SampleComments     []string          `json:"sampleComments,omitempty"`
	ExistingCategories []models.Category `json:"existingCategories,omitempty"`
	Mode               string            `json:"mode"`
}

// TaxonomyHandler handles category discovery and suggestion requests.
type TaxonomyHandler struct {
	discoveryService services.DiscoveryService
	taxonomyService  services.TaxonomyService
	logger           *zap.Logger
}

// NewTaxonomyHandler creates a new taxonomy handler.
func NewTaxonomyHandler(discoveryService services.DiscoveryService, taxonomyService services.TaxonomyService, logger *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		discoveryService: discoveryService,
		taxonomyService:  taxonomyService,
		logger:           logger,
	}
}

// RegisterRoutes registers the taxonomy handler's routes on the given mux.
func (h *TaxonomyHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/taxonomy/discover", h.Discover)
	mux.HandleFunc("POST /api/taxonomy/suggest", h.Suggest)
}

// Discover handles POST /api/taxonomy/discover
func (h *TaxonomyHandler) Discover(w http.ResponseWriter, r *http.Request) {
	var req DiscoverCategoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"body": "invalid JSON"})
		})
		return
	}

	fields := map[string]string{}
	if req.UnitName == "" {
		fields["unitName"] = "is required"
	}
	if len(req.Comments) == 0 {
		fields["comments"] = "at least one comment is required"
	}
	if len(fields) > 0 {
		respondJSON(w, h.logger, func() error { return ValidationResponse(w, fields) })
		return
	}

	categories, err := h.discoveryService.DiscoverCategories(r.Context(), services.DiscoveryRequest{
		UnitName:          req.UnitName,
		CurrentCategories: req.CurrentCategories,
		Instructions:      req.Instructions,
		Comments:          req.Comments,
	})
	if err != nil {
		h.respondError(w, "discover categories", err)
		return
	}

	if categories == nil {
		categories = []models.DiscoveredCategory{}
	}
	respondJSON(w, h.logger, func() error {
		return WriteJSON(w, http.StatusOK, map[string]any{"categories": categories})
	})
}

// Suggest handles POST /api/taxonomy/suggest
func (h *TaxonomyHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestTaxonomyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"body": "invalid JSON"})
		})
		return
	}

	fields := map[string]string{}
	if req.UnitName == "" {
		fields["unitName"] = "is required"
	}
	mode := prompts.SuggestionMode(req.Mode)
	if !mode.Valid() {
		fields["mode"] = "must be CATEGORIES or SUBCATEGORIES"
	}
	if len(fields) > 0 {
		respondJSON(w, h.logger, func() error { return ValidationResponse(w, fields) })
		return
	}

	suggestions, err := h.taxonomyService.Suggest(r.Context(), services.SuggestionRequest{
		UnitName:           req.UnitName,
		UnitDescription:    req.UnitDescription,
		SampleComments:     req.SampleComments,
		ExistingCategories: req.ExistingCategories,
		Mode:               mode,
	})
	if err != nil {
		h.respondError(w, "suggest taxonomy", err)
		return
	}

	if suggestions == nil {
		suggestions = []models.DiscoveredCategory{}
	}
	respondJSON(w, h.logger, func() error {
		return WriteJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
	})
}

func (h *TaxonomyHandler) respondError(w http.ResponseWriter, op string, err error) {
	status, message, details := MapError(err)
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err))
	respondJSON(w, h.logger, func() error { return ErrorResponse(w, status, message, details) })
}
