package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/prompts"
	"github.com/campus-pulse/insight-engine/pkg/repositories"
	"github.com/campus-pulse/insight-engine/pkg/services"
)

// RunAnalysisRequest for POST /api/analysis/run
type RunAnalysisRequest struct {
	Comments []models.RawFeedbackInput `json:"comments"`
	Taxonomy []struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	} `json:"taxonomy"`
	AllUnits []struct {
		Name string `json:"name"`
	} `json:"allUnits"`
	UnitContext struct {
		Name         string   `json:"name"`
		Instructions []string `json:"instructions"`
	} `json:"unitContext"`
}

// ClassifyRequest for POST /api/analysis/classify
type ClassifyRequest struct {
	Comments []models.RawFeedbackInput `json:"comments"`
	Context  struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	} `json:"context"`
	Taxonomy models.Taxonomy           `json:"taxonomy"`
	AllUnits []models.OrganizationUnit `json:"allUnits,omitempty"`
}

// SaveSegmentsRequest for POST /api/units/{id}/segments
type SaveSegmentsRequest struct {
	Segments []models.ReconciledSegment `json:"segments"`
}

// AnalysisHandler handles segmentation and classification HTTP requests.
type AnalysisHandler struct {
	analysisService services.AnalysisService
	segmentRepo     repositories.SegmentRepository
	logger          *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler. segmentRepo may be nil
// when the service runs without a database; the persistence route then
// responds 500.
func NewAnalysisHandler(analysisService services.AnalysisService, segmentRepo repositories.SegmentRepository, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		segmentRepo:     segmentRepo,
		logger:          logger,
	}
}

// RegisterRoutes registers the analysis handler's routes on the given mux.
func (h *AnalysisHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/analysis/run", h.RunAnalysis)
	mux.HandleFunc("POST /api/analysis/classify", h.Classify)
	mux.HandleFunc("POST /api/units/{id}/segments", h.SaveSegments)
}

// RunAnalysis handles POST /api/analysis/run
func (h *AnalysisHandler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	var req RunAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"body": "invalid JSON"})
		})
		return
	}

	fields := map[string]string{}
	if len(req.Comments) == 0 {
		fields["comments"] = "at least one comment is required"
	}
	for i, c := range req.Comments {
		if c.RawText == "" {
			fields["comments["+strconv.Itoa(i)+"].raw_text"] = "must not be empty"
		}
	}
	if req.UnitContext.Name == "" {
		fields["unitContext.name"] = "is required"
	}
	if len(fields) > 0 {
		respondJSON(w, h.logger, func() error { return ValidationResponse(w, fields) })
		return
	}

	// The run-analysis route carries a name-only taxonomy; ids are not
	// known yet, so the result stays unreconciled.
	var taxonomy models.Taxonomy
	for i, t := range req.Taxonomy {
		taxonomy.Categories = append(taxonomy.Categories, models.Category{
			ID:          int64(i + 1),
			Name:        t.Name,
			Description: t.Description,
		})
	}
	var units []models.OrganizationUnit
	for i, u := range req.AllUnits {
		units = append(units, models.OrganizationUnit{ID: int64(i + 1), Name: u.Name})
	}

	results, err := h.analysisService.Analyze(r.Context(), services.AnalyzeRequest{
		Unit: prompts.UnitContext{
			Name:         req.UnitContext.Name,
			Instructions: req.UnitContext.Instructions,
		},
		Taxonomy: taxonomy,
		AllUnits: units,
		Comments: req.Comments,
	})
	if err != nil {
		h.respondError(w, "run analysis", err)
		return
	}

	if results == nil {
		results = []services.AnalysisResult{}
	}
	respondJSON(w, h.logger, func() error { return WriteJSON(w, http.StatusOK, results) })
}

// Classify handles POST /api/analysis/classify
func (h *AnalysisHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"body": "invalid JSON"})
		})
		return
	}

	fields := map[string]string{}
	if len(req.Comments) == 0 {
		fields["comments"] = "at least one comment is required"
	}
	if req.Context.Name == "" {
		fields["context.name"] = "is required"
	}
	if len(req.Taxonomy.Categories) == 0 {
		fields["taxonomy.categories"] = "at least one category is required"
	}
	if len(fields) > 0 {
		respondJSON(w, h.logger, func() error { return ValidationResponse(w, fields) })
		return
	}

	results, err := h.analysisService.Classify(r.Context(), services.AnalyzeRequest{
		Unit: prompts.UnitContext{
			Name:        req.Context.Name,
			Description: req.Context.Description,
		},
		Taxonomy: req.Taxonomy,
		AllUnits: req.AllUnits,
		Comments: req.Comments,
	})
	if err != nil {
		h.respondError(w, "classify", err)
		return
	}

	if results == nil {
		results = []models.ReconciledSegment{}
	}
	respondJSON(w, h.logger, func() error {
		return WriteJSON(w, http.StatusOK, map[string]any{"results": results})
	})
}

// SaveSegments handles POST /api/units/{id}/segments
func (h *AnalysisHandler) SaveSegments(w http.ResponseWriter, r *http.Request) {
	unitID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"id": "must be a numeric unit id"})
		})
		return
	}

	if h.segmentRepo == nil {
		respondJSON(w, h.logger, func() error {
			return ErrorResponse(w, http.StatusInternalServerError, "segment storage is not configured", nil)
		})
		return
	}

	var req SaveSegmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"body": "invalid JSON"})
		})
		return
	}
	if len(req.Segments) == 0 {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"segments": "at least one segment is required"})
		})
		return
	}

	if err := h.segmentRepo.SaveBatch(r.Context(), unitID, req.Segments); err != nil {
		h.respondError(w, "save segments", err)
		return
	}

	respondJSON(w, h.logger, func() error {
		return WriteJSON(w, http.StatusOK, map[string]any{"saved": len(req.Segments)})
	})
}

func (h *AnalysisHandler) respondError(w http.ResponseWriter, op string, err error) {
	status, message, details := MapError(err)
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err))
	respondJSON(w, h.logger, func() error { return ErrorResponse(w, status, message, details) })
}

// respondJSON runs a response writer func and logs encoding failures, which
// cannot be reported to the client anymore.
func respondJSON(w http.ResponseWriter, logger *zap.Logger, write func() error) {
	if err := write(); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}
