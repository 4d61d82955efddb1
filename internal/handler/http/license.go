package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/timedesk/timeclock-backend-go/internal/domain/license"
	"github.com/timedesk/timeclock-backend-go/internal/handler/http/response"
)

type LicenseHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	DeleteFile(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type LicenseHandlerImpl struct {
	licenseService license.LicenseService
}

func NewLicenseHandler(licenseService license.LicenseService) LicenseHandler {
	return &LicenseHandlerImpl{licenseService: licenseService}
}

// Create implements LicenseHandler.
func (h *LicenseHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req license.CreateLicenseRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create license decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.licenseService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "License submitted successfully", resp)
}

// Edit implements LicenseHandler.
func (h *LicenseHandlerImpl) Edit(w http.ResponseWriter, r *http.Request) {
	var req license.EditLicenseRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Edit license decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.licenseService.Edit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "License updated successfully", resp)
}

// DeleteFile implements LicenseHandler.
func (h *LicenseHandlerImpl) DeleteFile(w http.ResponseWriter, r *http.Request) {
	var req license.DeleteFileRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Delete license file decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.licenseService.DeleteFile(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attachment deleted successfully", nil)
}

// Delete implements LicenseHandler.
func (h *LicenseHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "License ID is required", nil)
		return
	}

	if err := h.licenseService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "License deleted successfully", nil)
}

// Get implements LicenseHandler.
func (h *LicenseHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "License ID is required", nil)
		return
	}

	resp, err := h.licenseService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements LicenseHandler.
func (h *LicenseHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var req license.ListLicensesRequest

	q := r.URL.Query()
	if userID := q.Get("userId"); userID != "" {
		req.UserID = &userID
	}
	if statusStr := q.Get("status"); statusStr != "" {
		status, err := strconv.Atoi(statusStr)
		if err != nil {
			response.BadRequest(w, "status must be a number", nil)
			return
		}
		req.Status = &status
	}
	if dateStart := q.Get("dateStart"); dateStart != "" {
		req.DateStart = &dateStart
	}
	if dateEnd := q.Get("dateEnd"); dateEnd != "" {
		req.DateEnd = &dateEnd
	}
	req.Page, _ = strconv.Atoi(q.Get("page"))
	req.Limit, _ = strconv.Atoi(q.Get("limit"))

	resp, err := h.licenseService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int(resp.Total) / resp.Limit
	if int(resp.Total)%resp.Limit > 0 {
		totalPages++
	}
	response.SuccessWithMeta(w, resp.Data, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.Total,
		TotalPages: totalPages,
	})
}

// Approve implements LicenseHandler.
func (h *LicenseHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "License ID is required", nil)
		return
	}

	resp, err := h.licenseService.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "License approved", resp)
}

// Reject implements LicenseHandler.
func (h *LicenseHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "License ID is required", nil)
		return
	}

	var req license.RejectLicenseRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Reject license decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	resp, err := h.licenseService.Reject(r.Context(), id, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "License rejected", resp)
}
