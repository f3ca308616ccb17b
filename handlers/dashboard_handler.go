package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	service "grantsproject/services"
	"grantsproject/utils"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(service service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	view, err := h.service.BuildDashboard(ctx)
	if err != nil {
		utils.HandleMessageResponse(w, fmt.Sprintf("Failed to build dashboard: %v", err), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Dashboard built successfully", view, http.StatusOK)
}

func (h *DashboardHandler) GetGrantMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summary, err := h.service.GrantMetrics(ctx, r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Grant not found", http.StatusNotFound)
		return
	}

	utils.HandleDataResponse(w, "Grant metrics retrieved successfully", summary, http.StatusOK)
}

func (h *DashboardHandler) GetStatusBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	stats, err := h.service.StatusBreakdown(ctx)
	if err != nil {
		utils.HandleMessageResponse(w, fmt.Sprintf("Failed to get status breakdown: %v", err), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Status breakdown retrieved successfully", stats, http.StatusOK)
}
