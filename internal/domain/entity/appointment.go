package entity

import (
	"time"
)

// AppointmentStatus represents the stored status of an appointment.
// Expired is never stored; it is derived at read time from the current clock.
type AppointmentStatus string

const (
	StatusConfirmed         AppointmentStatus = "confirmed"
	StatusCancelled         AppointmentStatus = "cancelled"
	StatusCancelledByDoctor AppointmentStatus = "cancelled_by_doctor"
	StatusExpired           AppointmentStatus = "expired"
)

// Appointment is a booked visit. Date and Time are calendar keys in
// "2006-01-02" and "15:04" form and are compared as strings, never as ranges.
type Appointment struct {
	ID            string            `json:"id"`
	PatientKey    string            `json:"patient_key"`
	PatientName   string            `json:"patient_name"`
	PatientAge    int               `json:"patient_age"`
	PatientGender string            `json:"patient_gender"`
	Department    string            `json:"department"`
	Doctor        string            `json:"doctor"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Status        AppointmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}

// IsConfirmed checks if the appointment still occupies its slot.
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// IsCancelled checks if the appointment was cancelled by either party.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled || a.Status == StatusCancelledByDoctor
}

// StartsBefore reports whether the appointment's date+time instant is
// strictly before t. Malformed records are treated as not yet started.
func (a *Appointment) StartsBefore(t time.Time) bool {
	start, err := time.ParseInLocation("2006-01-02 15:04", a.Date+" "+a.Time, t.Location())
	if err != nil {
		return false
	}
	return start.Before(t)
}

// DisplayStatus derives the user-visible status: cancellation wins, then a
// start time in the past reads as expired, otherwise the visit is scheduled.
func (a *Appointment) DisplayStatus(now time.Time) AppointmentStatus {
	if a.IsCancelled() {
		return a.Status
	}
	if a.StartsBefore(now) {
		return StatusExpired
	}
	return a.Status
}
