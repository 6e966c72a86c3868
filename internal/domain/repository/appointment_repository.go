package repository

import (
	"errors"

	"hospital-assistant/internal/domain/entity"
)

var (
	ErrSlotTaken        = errors.New("slot already has a confirmed appointment")
	ErrNotFound         = errors.New("appointment not found")
	ErrNotOwned         = errors.New("appointment does not belong to requester")
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")
)

// AppointmentRepository owns every appointment record. All mutations go
// through it and its occupancy check is atomic with the insert, so two
// concurrent bookings for one slot can never both succeed.
type AppointmentRepository interface {
	// Insert stores a new record and assigns its ID. Fails with
	// ErrSlotTaken when the (doctor, date, time) triple is occupied by a
	// confirmed record.
	Insert(appointment *entity.Appointment) error

	// FindByID returns nil, nil when no record has the given id.
	FindByID(id string) (*entity.Appointment, error)

	// Cancel tombstones the record owned by requesterKey. Fails with
	// ErrNotFound, ErrNotOwned, or ErrAlreadyCancelled.
	Cancel(id, requesterKey string) error

	// UpdateStatus sets the stored status regardless of ownership; callers
	// are expected to have authorized the transition.
	UpdateStatus(id string, status entity.AppointmentStatus) error

	// ListByPatient returns every record for the patient, in no particular
	// order.
	ListByPatient(patientKey string) []entity.Appointment

	// ListByDoctor returns the doctor's records matching keep.
	ListByDoctor(doctor string, keep func(*entity.Appointment) bool) []entity.Appointment

	// IsOccupied reports whether a confirmed record holds the slot.
	IsOccupied(doctor, date, timeSlot string) bool
}
