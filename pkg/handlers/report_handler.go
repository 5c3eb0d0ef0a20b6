package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/services"
)

// GenerateReportRequest for POST /api/units/{id}/report
type GenerateReportRequest struct {
	SurveyID        *int64                  `json:"survey_id,omitempty"`
	UnitName        string                  `json:"unitName"`
	UnitDescription string                  `json:"unitDescription,omitempty"`
	Stats           models.ReportStats      `json:"stats"`
	Breakdown       []models.CategoryMetric `json:"categoryBreakdown,omitempty"`
	Segments        []models.Segment        `json:"segments"`
}

// ReportHandler handles executive report generation requests.
type ReportHandler struct {
	reportService services.ReportService
	logger        *zap.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService services.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// RegisterRoutes registers the report handler's routes on the given mux.
func (h *ReportHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/units/{id}/report", h.Generate)
}

// Generate handles POST /api/units/{id}/report
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	unitID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"id": "must be a numeric unit id"})
		})
		return
	}

	var req GenerateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"body": "invalid JSON"})
		})
		return
	}

	// Segments are optional: when the body omits them the service samples
	// the unit's stored segments instead.
	if req.UnitName == "" {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"unitName": "is required"})
		})
		return
	}

	saved, err := h.reportService.Generate(r.Context(), services.ReportRequest{
		UnitID:          unitID,
		SurveyID:        req.SurveyID,
		UnitName:        req.UnitName,
		UnitDescription: req.UnitDescription,
		Stats:           req.Stats,
		Breakdown:       req.Breakdown,
		Segments:        req.Segments,
	})
	if err != nil {
		status, message, details := MapError(err)
		h.logger.Error("request failed",
			zap.String("op", "generate report"),
			zap.Int("status", status),
			zap.Error(err))
		respondJSON(w, h.logger, func() error { return ErrorResponse(w, status, message, details) })
		return
	}

	respondJSON(w, h.logger, func() error { return WriteJSON(w, http.StatusOK, saved) })
}
