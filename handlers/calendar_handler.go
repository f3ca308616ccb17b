package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"grantsproject/models"
	service "grantsproject/services"
	"grantsproject/utils"
)

type CalendarHandler struct {
	service service.CalendarService
}

func NewCalendarHandler(service service.CalendarService) *CalendarHandler {
	return &CalendarHandler{
		service: service,
	}
}

// GetMonthView serves the merged calendar for one month. Query params: year,
// month (1-12, both default to the current month) and type (event type
// filter, defaults to All).
func (h *CalendarHandler) GetMonthView(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid year parameter", http.StatusBadRequest)
			return
		}
		year = y
	}

	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			utils.HandleMessageResponse(w, "Invalid month parameter", http.StatusBadRequest)
			return
		}
		month = time.Month(m)
	}

	filterType := r.URL.Query().Get("type")
	if filterType == "" {
		filterType = models.EventFilterAll
	}
	switch filterType {
	case models.EventFilterAll, models.EventDeadline, models.EventReview, models.EventVisit, models.EventReport:
	default:
		utils.HandleMessageResponse(w, "Invalid type parameter", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	view, err := h.service.MonthView(ctx, year, month, filterType)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Calendar retrieved successfully", view, http.StatusOK)
}
