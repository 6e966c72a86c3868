package repository

import (
	"fmt"
	"sync"

	"hospital-assistant/internal/domain/entity"
	domainRepo "hospital-assistant/internal/domain/repository"
)

// appointmentRepository keeps every record in a process-local map guarded by
// one mutex. The occupancy check inside Insert runs under the same lock as
// the write, which makes it the final authority on double bookings.
type appointmentRepository struct {
	mu           sync.Mutex
	appointments map[string]*entity.Appointment
	counter      int
}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{
		appointments: make(map[string]*entity.Appointment),
	}
}

func (r *appointmentRepository) Insert(appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.occupiedLocked(appointment.Doctor, appointment.Date, appointment.Time) {
		return domainRepo.ErrSlotTaken
	}

	r.counter++
	appointment.ID = fmt.Sprintf("APT-%s-%04d", appointment.CreatedAt.Format("20060102"), r.counter)
	appointment.Status = entity.StatusConfirmed

	clone := *appointment
	r.appointments[appointment.ID] = &clone
	return nil
}

func (r *appointmentRepository) FindByID(id string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointment, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	clone := *appointment
	return &clone, nil
}

func (r *appointmentRepository) Cancel(id, requesterKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointment, ok := r.appointments[id]
	if !ok {
		return domainRepo.ErrNotFound
	}
	if appointment.PatientKey != requesterKey {
		return domainRepo.ErrNotOwned
	}
	if appointment.IsCancelled() {
		return domainRepo.ErrAlreadyCancelled
	}

	appointment.Status = entity.StatusCancelled
	return nil
}

func (r *appointmentRepository) UpdateStatus(id string, status entity.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointment, ok := r.appointments[id]
	if !ok {
		return domainRepo.ErrNotFound
	}
	appointment.Status = status
	return nil
}

func (r *appointmentRepository) ListByPatient(patientKey string) []entity.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.Appointment
	for _, appointment := range r.appointments {
		if appointment.PatientKey == patientKey {
			out = append(out, *appointment)
		}
	}
	return out
}

func (r *appointmentRepository) ListByDoctor(doctor string, keep func(*entity.Appointment) bool) []entity.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.Appointment
	for _, appointment := range r.appointments {
		if appointment.Doctor != doctor {
			continue
		}
		if keep == nil || keep(appointment) {
			out = append(out, *appointment)
		}
	}
	return out
}

func (r *appointmentRepository) IsOccupied(doctor, date, timeSlot string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.occupiedLocked(doctor, date, timeSlot)
}

// occupiedLocked must be called with r.mu held.
func (r *appointmentRepository) occupiedLocked(doctor, date, timeSlot string) bool {
	for _, appointment := range r.appointments {
		if appointment.Doctor == doctor && appointment.Date == date &&
			appointment.Time == timeSlot && appointment.IsConfirmed() {
			return true
		}
	}
	return false
}
