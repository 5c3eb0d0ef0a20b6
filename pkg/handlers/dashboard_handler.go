package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/repositories"
	"github.com/campus-pulse/insight-engine/pkg/services"
)

// DashboardHandler serves unit listings and precomputed dashboards.
type DashboardHandler struct {
	unitRepo         repositories.UnitRepository
	dashboardService services.DashboardService
	logger           *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(unitRepo repositories.UnitRepository, dashboardService services.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		unitRepo:         unitRepo,
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// RegisterRoutes registers the dashboard handler's routes on the given mux.
func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/units", h.ListUnits)
	mux.HandleFunc("GET /api/units/{id}/dashboard", h.UnitDashboard)
	mux.HandleFunc("GET /api/dashboard/executive", h.ExecutiveOverview)
}

// ListUnits handles GET /api/units
func (h *DashboardHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.unitRepo.GetAll(r.Context())
	if err != nil {
		h.respondError(w, "list units", err)
		return
	}

	if units == nil {
		units = []models.OrganizationUnit{}
	}
	respondJSON(w, h.logger, func() error {
		return WriteJSON(w, http.StatusOK, map[string]any{"units": units})
	})
}

// UnitDashboard handles GET /api/units/{id}/dashboard
func (h *DashboardHandler) UnitDashboard(w http.ResponseWriter, r *http.Request) {
	unitID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"id": "must be a numeric unit id"})
		})
		return
	}

	var surveyID *int64
	if raw := r.URL.Query().Get("survey_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondJSON(w, h.logger, func() error {
				return ValidationResponse(w, map[string]string{"survey_id": "must be numeric"})
			})
			return
		}
		surveyID = &id
	}

	dashboard, err := h.dashboardService.GetUnitDashboard(r.Context(), unitID, surveyID)
	if err != nil {
		h.respondError(w, "unit dashboard", err)
		return
	}

	respondJSON(w, h.logger, func() error { return WriteJSON(w, http.StatusOK, dashboard) })
}

// ExecutiveOverview handles GET /api/dashboard/executive
func (h *DashboardHandler) ExecutiveOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.GetExecutiveOverview(r.Context())
	if err != nil {
		h.respondError(w, "executive overview", err)
		return
	}

	respondJSON(w, h.logger, func() error { return WriteJSON(w, http.StatusOK, overview) })
}

func (h *DashboardHandler) respondError(w http.ResponseWriter, op string, err error) {
	status, message, details := MapError(err)
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err))
	respondJSON(w, h.logger, func() error { return ErrorResponse(w, status, message, details) })
}
