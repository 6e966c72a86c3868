package converter

import (
	"time"

	"hospital-assistant/internal/delivery/dto"
	"hospital-assistant/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its response DTO.
// The status field is derived against now, never read from storage as-is.
func AppointmentToResponse(appointment *entity.Appointment, now time.Time) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:            appointment.ID,
		PatientName:   appointment.PatientName,
		PatientAge:    appointment.PatientAge,
		PatientGender: appointment.PatientGender,
		Department:    appointment.Department,
		Doctor:        appointment.Doctor,
		Date:          appointment.Date,
		Time:          appointment.Time,
		Status:        string(appointment.DisplayStatus(now)),
		CreatedAt:     appointment.CreatedAt,
	}
}

// AppointmentsToResponses converts a slice of entities to response DTOs.
func AppointmentsToResponses(appointments []entity.Appointment, now time.Time) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i], now)
	}
	return responses
}
