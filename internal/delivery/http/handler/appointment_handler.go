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

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	patientKey, ok := middleware.GetPatientKeyFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.BookAppointment(r.Context(), patientKey, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidPatientName, usecase.ErrInvalidPatientAge,
			usecase.ErrInvalidPatientGender, usecase.ErrInvalidDateFormat,
			usecase.ErrInvalidTimeFormat, usecase.ErrPastDate,
			usecase.ErrDoctorOffDay, usecase.ErrOutsideWorkingHours:
			response.BadRequest(w, err.Error())
		case usecase.ErrDepartmentNotFound, usecase.ErrDoctorNotFound:
			response.NotFound(w, err.Error())
		case usecase.ErrSlotTaken, usecase.ErrPatientBusy, usecase.ErrDuplicateVisit:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	patientKey, ok := middleware.GetPatientKeyFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	appointments, err := h.appointmentUsecase.GetMyAppointments(r.Context(), patientKey)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	patientKey, ok := middleware.GetPatientKeyFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	vars := mux.Vars(r)
	err := h.appointmentUsecase.CancelAppointment(r.Context(), vars["id"], patientKey)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrAlreadyCancelled:
			response.Conflict(w, "Appointment is already cancelled")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}
