package dto

import "time"

// Request DTOs

type BookAppointmentRequest struct {
	PatientName   string `json:"patient_name" validate:"required,min=2,max=100"`
	PatientAge    int    `json:"patient_age" validate:"gte=0,lte=150"`
	PatientGender string `json:"patient_gender" validate:"required,oneof=Male Female Other"`
	Department    string `json:"department" validate:"required"`
	Doctor        string `json:"doctor" validate:"required"`
	Date          string `json:"date" validate:"required"`
	Time          string `json:"time" validate:"required"`
}

type DoctorCancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// Response DTOs

type AppointmentResponse struct {
	ID            string    `json:"id"`
	PatientName   string    `json:"patient_name"`
	PatientAge    int       `json:"patient_age"`
	PatientGender string    `json:"patient_gender"`
	Department    string    `json:"department"`
	Doctor        string    `json:"doctor"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type AvailableSlotsResponse struct {
	Department string   `json:"department"`
	Doctor     string   `json:"doctor"`
	Date       string   `json:"date"`
	Slots      []string `json:"slots"`
}

type DepartmentListResponse struct {
	Departments map[string][]string `json:"departments"`
}
