package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	middleware "grantsproject/middlewares"
	"grantsproject/models"
	service "grantsproject/services"
	"grantsproject/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GrantHandler struct {
	service service.GrantService
}

func NewGrantHandler(service service.GrantService) *GrantHandler {
	return &GrantHandler{
		service: service,
	}
}

func (h *GrantHandler) CreateGrant(w http.ResponseWriter, r *http.Request) {
	var grant models.Grant
	if err := utils.DecodeAndValidate(w, r, &grant); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())
	grant.Metadata.CreatedBy = username
	grant.Metadata.UpdatedBy = username

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	createdGrant, err := h.service.CreateGrant(ctx, &grant)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Grant created successfully", createdGrant, http.StatusCreated)
}

func (h *GrantHandler) GetGrantByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	grant, err := h.service.GetGrantByID(ctx, id)
	if err != nil {
		utils.HandleMessageResponse(w, "Grant not found", http.StatusNotFound)
		return
	}

	utils.HandleDataResponse(w, "Grant retrieved successfully", grant, http.StatusOK)
}

func (h *GrantHandler) GetAllGrants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	grants, err := h.service.GetAllGrants(ctx)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleListResponse(w, "Grants retrieved successfully", len(grants), grants, http.StatusOK)
}

func (h *GrantHandler) UpdateGrant(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var grant models.Grant
	if err := utils.DecodeAndValidate(w, r, &grant); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())
	grant.Metadata.UpdatedBy = username

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	updatedGrant, err := h.service.UpdateGrant(ctx, id, &grant)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Grant updated successfully", updatedGrant, http.StatusOK)
}

// DeleteGrant runs the cascading delete. A partial failure still returns the
// cascade result so the caller can see exactly which paths survived.
func (h *GrantHandler) DeleteGrant(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := h.service.DeleteGrant(ctx, id)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !result.Complete() {
		utils.HandleDataResponse(w, "Grant delete partially failed", result, http.StatusOK)
		return
	}

	utils.HandleDataResponse(w, "Grant deleted successfully", result, http.StatusOK)
}

func (h *GrantHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(32 << 20)
	if err != nil {
		utils.HandleMessageResponse(w, "Failed to parse multipart form", http.StatusBadRequest)
		return
	}

	grantID := r.PathValue("id")

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.HandleMessageResponse(w, "Failed to get file from form", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > 10<<20 { // 10 MB
		utils.HandleMessageResponse(w, "File size too large (max 10MB)", http.StatusBadRequest)
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	attachment, err := h.service.UploadAttachment(ctx, grantID, header.Filename, file, username, contentType)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "File uploaded successfully", attachment, http.StatusOK)
}

func (h *GrantHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	fileIDStr := r.PathValue("fileId")
	fileID, err := primitive.ObjectIDFromHex(fileIDStr)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid file ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	downloadStream, err := h.service.DownloadAttachment(ctx, fileID)
	if err != nil {
		utils.HandleMessageResponse(w, "File not found", http.StatusNotFound)
		return
	}
	defer downloadStream.Close()

	fileInfo := downloadStream.GetFile()

	contentType := "application/octet-stream"
	if len(fileInfo.Metadata) > 0 {
		var metaMap map[string]interface{}
		if err := bson.Unmarshal(fileInfo.Metadata, &metaMap); err == nil {
			if ctRaw, exists := metaMap["contentType"]; exists {
				if contentTypeStr, ok := ctRaw.(string); ok && contentTypeStr != "" {
					contentType = contentTypeStr
				}
			}
		}
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileInfo.Name))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(fileInfo.Length, 10))

	_, err = io.Copy(w, downloadStream)
	if err != nil {
		utils.HandleMessageResponse(w, "Failed to download file", http.StatusInternalServerError)
		return
	}
}

func (h *GrantHandler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	grantID := r.PathValue("id")

	fileIDStr := r.PathValue("fileId")
	fileID, err := primitive.ObjectIDFromHex(fileIDStr)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid file ID format", http.StatusBadRequest)
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	err = h.service.DeleteAttachment(ctx, grantID, fileID, username)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Attachment deleted successfully", http.StatusOK)
}
