package handlers

import (
	"context"
	"net/http"
	"time"

	"grantsproject/models"
	service "grantsproject/services"
	"grantsproject/utils"
)

// GrantDetailHandler serves the sub-collections nested under a grant:
// pledges, gifts, addresses, tracking sections and tasks, and manually
// created calendar events.
type GrantDetailHandler struct {
	service service.GrantDetailService
}

func NewGrantDetailHandler(service service.GrantDetailService) *GrantDetailHandler {
	return &GrantDetailHandler{
		service: service,
	}
}

// Pledges

func (h *GrantDetailHandler) CreatePledge(w http.ResponseWriter, r *http.Request) {
	var pledge models.Pledge
	if err := utils.DecodeAndValidate(w, r, &pledge); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.AddPledge(ctx, r.PathValue("id"), &pledge)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Pledge created successfully", created, http.StatusCreated)
}

func (h *GrantDetailHandler) ListPledges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pledges, err := h.service.ListPledges(ctx, r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleListResponse(w, "Pledges retrieved successfully", len(pledges), pledges, http.StatusOK)
}

func (h *GrantDetailHandler) UpdatePledge(w http.ResponseWriter, r *http.Request) {
	fields, err := utils.DecodeUpdateFields(w, r)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.UpdatePledge(ctx, r.PathValue("pledgeId"), fields); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Pledge updated successfully", http.StatusOK)
}

func (h *GrantDetailHandler) DeletePledge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.DeletePledge(ctx, r.PathValue("pledgeId")); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Pledge deleted successfully", http.StatusOK)
}

// Gifts

func (h *GrantDetailHandler) CreateGift(w http.ResponseWriter, r *http.Request) {
	var gift models.Gift
	if err := utils.DecodeAndValidate(w, r, &gift); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.AddGift(ctx, r.PathValue("id"), &gift)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Gift created successfully", created, http.StatusCreated)
}

func (h *GrantDetailHandler) ListGifts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	gifts, err := h.service.ListGifts(ctx, r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleListResponse(w, "Gifts retrieved successfully", len(gifts), gifts, http.StatusOK)
}

func (h *GrantDetailHandler) UpdateGift(w http.ResponseWriter, r *http.Request) {
	fields, err := utils.DecodeUpdateFields(w, r)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.UpdateGift(ctx, r.PathValue("giftId"), fields); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Gift updated successfully", http.StatusOK)
}

func (h *GrantDetailHandler) DeleteGift(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.DeleteGift(ctx, r.PathValue("giftId")); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Gift deleted successfully", http.StatusOK)
}

// Addresses

func (h *GrantDetailHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var address models.Address
	if err := utils.DecodeAndValidate(w, r, &address); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.AddAddress(ctx, r.PathValue("id"), &address)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Address created successfully", created, http.StatusCreated)
}

func (h *GrantDetailHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	addresses, err := h.service.ListAddresses(ctx, r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleListResponse(w, "Addresses retrieved successfully", len(addresses), addresses, http.StatusOK)
}

func (h *GrantDetailHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	fields, err := utils.DecodeUpdateFields(w, r)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.UpdateAddress(ctx, r.PathValue("addressId"), fields); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Address updated successfully", http.StatusOK)
}

func (h *GrantDetailHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.DeleteAddress(ctx, r.PathValue("addressId")); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Address deleted successfully", http.StatusOK)
}

// Tracking sections and tasks

func (h *GrantDetailHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var section models.TrackingSection
	if err := utils.DecodeAndValidate(w, r, &section); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.AddSection(ctx, r.PathValue("id"), &section)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Tracking section created successfully", created, http.StatusCreated)
}

func (h *GrantDetailHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sections, err := h.service.ListSections(ctx, r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleListResponse(w, "Tracking sections retrieved successfully", len(sections), sections, http.StatusOK)
}

func (h *GrantDetailHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	fields, err := utils.DecodeUpdateFields(w, r)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.UpdateSection(ctx, r.PathValue("sectionId"), fields); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Tracking section updated successfully", http.StatusOK)
}

func (h *GrantDetailHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.DeleteSection(ctx, r.PathValue("sectionId")); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Tracking section deleted successfully", http.StatusOK)
}

func (h *GrantDetailHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var task models.TrackingTask
	if err := utils.DecodeAndValidate(w, r, &task); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.AddTask(ctx, r.PathValue("id"), r.PathValue("sectionId"), &task)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Tracking task created successfully", created, http.StatusCreated)
}

func (h *GrantDetailHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tasks, err := h.service.ListTasks(ctx, r.PathValue("sectionId"))
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleListResponse(w, "Tracking tasks retrieved successfully", len(tasks), tasks, http.StatusOK)
}

func (h *GrantDetailHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	fields, err := utils.DecodeUpdateFields(w, r)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.UpdateTask(ctx, r.PathValue("taskId"), fields); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Tracking task updated successfully", http.StatusOK)
}

func (h *GrantDetailHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.DeleteTask(ctx, r.PathValue("taskId")); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Tracking task deleted successfully", http.StatusOK)
}

// Manual calendar events

func (h *GrantDetailHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event models.CalendarEvent
	if err := utils.DecodeAndValidate(w, r, &event); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.AddEvent(ctx, r.PathValue("id"), &event)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Calendar event created successfully", created, http.StatusCreated)
}

func (h *GrantDetailHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	events, err := h.service.ListEvents(ctx, r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleListResponse(w, "Calendar events retrieved successfully", len(events), events, http.StatusOK)
}

func (h *GrantDetailHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	fields, err := utils.DecodeUpdateFields(w, r)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.UpdateEvent(ctx, r.PathValue("eventId"), fields); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Calendar event updated successfully", http.StatusOK)
}

func (h *GrantDetailHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.DeleteEvent(ctx, r.PathValue("eventId")); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Calendar event deleted successfully", http.StatusOK)
}
