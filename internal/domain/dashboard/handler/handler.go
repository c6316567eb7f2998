// Package handler exposes the dashboard over a JSON HTTP API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/novaretail/customer-intelligence/internal/domain/dashboard"
	"github.com/novaretail/customer-intelligence/internal/domain/dataset"
	"github.com/novaretail/customer-intelligence/internal/domain/filter"
)

// queryParams maps URL query parameter names to filterable logical fields.
var queryParams = map[string]dataset.Field{
	"segment":  dataset.FieldLabel,
	"region":   dataset.FieldRegion,
	"category": dataset.FieldCategory,
	"channel":  dataset.FieldChannel,
	"age":      dataset.FieldAgeGroup,
	"gender":   dataset.FieldGender,
}

// DashboardHandler serves dashboard reports and filter options.
type DashboardHandler struct {
	svc    *dashboard.Service
	logger *slog.Logger
}

// NewDashboardHandler constructs a new handler.
func NewDashboardHandler(svc *dashboard.Service, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger}
}

// Register mounts the handler's routes on mux.
func (h *DashboardHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/dashboard", h.GetDashboard)
	mux.HandleFunc("GET /v1/filters", h.GetFilters)
	mux.HandleFunc("GET /v1/health", h.GetHealth)
}

// GetDashboard runs one dashboard pass under the filters given as query
// parameters. Each filterable field accepts repeated values; an absent
// parameter means no constraint.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sel := filter.DefaultSelection()
	query := r.URL.Query()
	for param, field := range queryParams {
		if values, ok := query[param]; ok && len(values) > 0 {
			sel[field] = values
		}
	}

	report, err := h.svc.Run(sel)
	if errors.Is(err, filter.ErrNoRowsMatch) {
		// User-correctable: different filters will produce a report.
		h.writeJSON(w, http.StatusConflict, map[string]string{
			"warning": "No data matches selected filters.",
		})
		return
	}
	if err != nil {
		h.logger.Error("dashboard pass failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal error",
		})
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

// GetFilters returns the option list per filterable field.
func (h *DashboardHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.FilterOptions())
}

// GetHealth reports liveness.
func (h *DashboardHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DashboardHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
