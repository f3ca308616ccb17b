package handlers

import (
	"context"
	"net/http"
	"time"

	service "grantsproject/services"
	"grantsproject/utils"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications := h.service.List()
	utils.HandleListResponse(w, "Notifications retrieved successfully", len(notifications), notifications, http.StatusOK)
}

func (h *NotificationHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message" validate:"required"`
	}
	if err := utils.DecodeAndValidate(w, r, &payload); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	notification, err := h.service.Add(ctx, payload.Message)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Notification created successfully", notification, http.StatusCreated)
}

func (h *NotificationHandler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Clear(ctx); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Notifications cleared successfully", http.StatusOK)
}
