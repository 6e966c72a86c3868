package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"hospital-assistant/internal/converter"
	"hospital-assistant/internal/delivery/dto"
	"hospital-assistant/internal/domain/entity"
	"hospital-assistant/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var ErrNotYourAppointment = errors.New("appointment is not with you")

// DoctorUsecase backs the doctor dashboard. Callers must already have been
// resolved to a doctor identity by the directory; no authorization happens
// here beyond matching the appointment's doctor name.
type DoctorUsecase interface {
	GetTodayAppointments(ctx context.Context, doctor string) (*dto.AppointmentListResponse, error)
	GetUpcomingAppointments(ctx context.Context, doctor string) (*dto.AppointmentListResponse, error)
	GetPastWeekAppointments(ctx context.Context, doctor string) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, id, doctor, reason string) error
}

type doctorUsecase struct {
	log  *logrus.Logger
	repo repository.AppointmentRepository
	now  func() time.Time
}

func NewDoctorUsecase(log *logrus.Logger, repo repository.AppointmentRepository) DoctorUsecase {
	return &doctorUsecase{
		log:  log,
		repo: repo,
		now:  time.Now,
	}
}

func (u *doctorUsecase) GetTodayAppointments(ctx context.Context, doctor string) (*dto.AppointmentListResponse, error) {
	now := u.now()
	today := now.Format("2006-01-02")

	appointments := u.repo.ListByDoctor(doctor, func(a *entity.Appointment) bool {
		return a.Date == today && !a.IsCancelled()
	})
	sortByDateTime(appointments, false)

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, now),
		Total:        len(appointments),
	}, nil
}

func (u *doctorUsecase) GetUpcomingAppointments(ctx context.Context, doctor string) (*dto.AppointmentListResponse, error) {
	now := u.now()
	today := now.Format("2006-01-02")

	appointments := u.repo.ListByDoctor(doctor, func(a *entity.Appointment) bool {
		return a.Date >= today && a.IsConfirmed()
	})
	sortByDateTime(appointments, false)

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, now),
		Total:        len(appointments),
	}, nil
}

// GetPastWeekAppointments covers the trailing seven days up to and including
// today, most recent first.
func (u *doctorUsecase) GetPastWeekAppointments(ctx context.Context, doctor string) (*dto.AppointmentListResponse, error) {
	now := u.now()
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7).Format("2006-01-02")

	appointments := u.repo.ListByDoctor(doctor, func(a *entity.Appointment) bool {
		return a.Date >= weekAgo && a.Date <= today && !a.IsCancelled()
	})
	sortByDateTime(appointments, true)

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, now),
		Total:        len(appointments),
	}, nil
}

// CancelAppointment lets a doctor cancel a visit booked with them. The
// resulting status is distinct from a patient cancellation so the patient
// can see who called it off.
func (u *doctorUsecase) CancelAppointment(ctx context.Context, id, doctor, reason string) error {
	appointment, err := u.repo.FindByID(id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.Doctor != doctor {
		return ErrNotYourAppointment
	}
	if !appointment.IsConfirmed() {
		return ErrAlreadyCancelled
	}

	if err := u.repo.UpdateStatus(id, entity.StatusCancelledByDoctor); err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}

	u.log.Infof("Appointment cancelled by doctor: id=%s, doctor=%s, reason=%q", id, doctor, reason)
	return nil
}

func sortByDateTime(appointments []entity.Appointment, descending bool) {
	sort.Slice(appointments, func(i, j int) bool {
		if descending {
			i, j = j, i
		}
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date < appointments[j].Date
		}
		return appointments[i].Time < appointments[j].Time
	})
}
