package handler

import (
	"net/http"

	"hospital-assistant/internal/usecase"
	"hospital-assistant/pkg/response"
)

// ScheduleHandler serves the public catalog and availability endpoints.
type ScheduleHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
}

func NewScheduleHandler(appointmentUsecase usecase.AppointmentUsecase) *ScheduleHandler {
	return &ScheduleHandler{appointmentUsecase: appointmentUsecase}
}

func (h *ScheduleHandler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	departments := h.appointmentUsecase.GetDepartments(r.Context())
	response.Success(w, http.StatusOK, "Departments retrieved successfully", departments)
}

func (h *ScheduleHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	department := query.Get("department")
	doctor := query.Get("doctor")
	date := query.Get("date")

	if department == "" || doctor == "" || date == "" {
		response.BadRequest(w, "department, doctor, and date query parameters are required")
		return
	}

	slots, err := h.appointmentUsecase.GetAvailableSlots(r.Context(), department, doctor, date)
	if err != nil {
		switch err {
		case usecase.ErrDepartmentNotFound, usecase.ErrDoctorNotFound:
			response.NotFound(w, err.Error())
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}
