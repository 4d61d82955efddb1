package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/timedesk/timeclock-backend-go/internal/domain/timeslot"
	"github.com/timedesk/timeclock-backend-go/internal/handler/http/response"
)

type TimeRegisterHandler interface {
	SetTime(w http.ResponseWriter, r *http.Request)
	SetNewTime(w http.ResponseWriter, r *http.Request)
	GetByDate(w http.ResponseWriter, r *http.Request)
	GetRange(w http.ResponseWriter, r *http.Request)
	Justify(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type TimeRegisterHandlerImpl struct {
	timeRegisterService timeslot.TimeRegisterService
}

func NewTimeRegisterHandler(timeRegisterService timeslot.TimeRegisterService) TimeRegisterHandler {
	return &TimeRegisterHandlerImpl{timeRegisterService: timeRegisterService}
}

// SetTime implements TimeRegisterHandler.
func (h *TimeRegisterHandlerImpl) SetTime(w http.ResponseWriter, r *http.Request) {
	var req timeslot.SetTimeRequest

	// The toggle works with an empty body too.
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("SetTime decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	resp, err := h.timeRegisterService.SetTime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// SetNewTime implements TimeRegisterHandler.
func (h *TimeRegisterHandlerImpl) SetNewTime(w http.ResponseWriter, r *http.Request) {
	var req timeslot.SetNewTimeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetNewTime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.timeRegisterService.SetNewTime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time register created successfully", resp)
}

// GetByDate implements TimeRegisterHandler.
func (h *TimeRegisterHandlerImpl) GetByDate(w http.ResponseWriter, r *http.Request) {
	req := timeslot.GetByDateRequest{
		Date: r.URL.Query().Get("date"),
	}

	resp, err := h.timeRegisterService.GetByDate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetRange implements TimeRegisterHandler.
func (h *TimeRegisterHandlerImpl) GetRange(w http.ResponseWriter, r *http.Request) {
	req := timeslot.GetRangeRequest{
		DateStart: r.URL.Query().Get("dateStart"),
		DateEnd:   r.URL.Query().Get("dateEnd"),
	}
	if userID := r.URL.Query().Get("userId"); userID != "" {
		req.UserID = &userID
	}

	resp, err := h.timeRegisterService.GetRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Justify implements TimeRegisterHandler.
func (h *TimeRegisterHandlerImpl) Justify(w http.ResponseWriter, r *http.Request) {
	var req timeslot.JustifySlotRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Justify decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.timeRegisterService.Justify(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Justification recorded", resp)
}

// Delete implements TimeRegisterHandler.
func (h *TimeRegisterHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Register ID is required", nil)
		return
	}

	if err := h.timeRegisterService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time register deleted successfully", nil)
}
