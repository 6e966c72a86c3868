package handler

import (
	"encoding/json"
	"net/http"

	"hospital-assistant/internal/delivery/dto"
	"hospital-assistant/internal/delivery/http/middleware"
	"hospital-assistant/internal/usecase"
	"hospital-assistant/pkg/response"
	"hospital-assistant/pkg/validator"

	"github.com/gorilla/mux"
)

// DoctorHandler serves the doctor dashboard. Every route behind it has
// already passed the directory check, so the resolved profile is trusted.
type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) GetTodayAppointments(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.GetDoctorProfileFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Doctor profile not found in context")
		return
	}

	appointments, err := h.doctorUsecase.GetTodayAppointments(r.Context(), profile.Name)
	if err != nil {
		response.InternalServerError(w, "Failed to get today's appointments")
		return
	}

	response.Success(w, http.StatusOK, "Today's appointments retrieved successfully", appointments)
}

func (h *DoctorHandler) GetUpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.GetDoctorProfileFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Doctor profile not found in context")
		return
	}

	appointments, err := h.doctorUsecase.GetUpcomingAppointments(r.Context(), profile.Name)
	if err != nil {
		response.InternalServerError(w, "Failed to get upcoming appointments")
		return
	}

	response.Success(w, http.StatusOK, "Upcoming appointments retrieved successfully", appointments)
}

func (h *DoctorHandler) GetPastWeekAppointments(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.GetDoctorProfileFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Doctor profile not found in context")
		return
	}

	appointments, err := h.doctorUsecase.GetPastWeekAppointments(r.Context(), profile.Name)
	if err != nil {
		response.InternalServerError(w, "Failed to get past week's appointments")
		return
	}

	response.Success(w, http.StatusOK, "Past week's appointments retrieved successfully", appointments)
}

func (h *DoctorHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.GetDoctorProfileFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Doctor profile not found in context")
		return
	}

	// Reason is optional; an empty body is fine.
	var req dto.DoctorCancelRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	vars := mux.Vars(r)
	err := h.doctorUsecase.CancelAppointment(r.Context(), vars["id"], profile.Name, req.Reason)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotYourAppointment:
			response.Forbidden(w, "This appointment is not with you")
		case usecase.ErrAlreadyCancelled:
			response.Conflict(w, "Appointment is no longer active")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}
