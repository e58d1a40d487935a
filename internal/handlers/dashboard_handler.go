package handlers

import (
	"net/http"

	"kidlearn/internal/logger"
	"kidlearn/internal/service"
)

// DashboardHandler serves the parent dashboard aggregates
type DashboardHandler struct {
	dashboardService *service.DashboardService
	log              *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, log: log}
}

// Dashboard returns the full parent dashboard for a user
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	d, err := h.dashboardService.Dashboard(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// WeeklyActivity returns the seven day buckets of the current week
func (h *DashboardHandler) WeeklyActivity(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	days, err := h.dashboardService.WeeklyActivity(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, days)
}

// SessionTime returns a user's uncapped total minutes
func (h *DashboardHandler) SessionTime(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	st, err := h.dashboardService.SessionTime(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}
