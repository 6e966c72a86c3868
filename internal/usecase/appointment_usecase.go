package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"hospital-assistant/internal/catalog"
	"hospital-assistant/internal/converter"
	"hospital-assistant/internal/delivery/dto"
	"hospital-assistant/internal/domain/entity"
	"hospital-assistant/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidPatientName   = errors.New("patient name must be at least 2 characters")
	ErrInvalidPatientAge    = errors.New("patient age must be between 0 and 150")
	ErrInvalidPatientGender = errors.New("gender must be Male, Female, or Other")
	ErrInvalidDateFormat    = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat    = errors.New("invalid time format, use HH:MM")
	ErrPastDate             = errors.New("cannot book in the past")
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDoctorNotFound       = errors.New("doctor not found in department")
	ErrDoctorOffDay         = errors.New("doctor is not available on this day")
	ErrOutsideWorkingHours  = errors.New("time is outside the doctor's working hours")
	ErrSlotTaken            = errors.New("doctor already has an appointment at this time")
	ErrPatientBusy          = errors.New("you already have an appointment at this time")
	ErrDuplicateVisit       = errors.New("you already have an appointment with this doctor on this day")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentNotOwned  = errors.New("appointment does not belong to you")
	ErrAlreadyCancelled     = errors.New("appointment is already cancelled")
)

type AppointmentUsecase interface {
	GetDepartments(ctx context.Context) *dto.DepartmentListResponse
	GetAvailableSlots(ctx context.Context, department, doctor, date string) (*dto.AvailableSlotsResponse, error)
	BookAppointment(ctx context.Context, patientKey string, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, id, patientKey string) error
	GetMyAppointments(ctx context.Context, patientKey string) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	log     *logrus.Logger
	catalog *catalog.Catalog
	repo    repository.AppointmentRepository
	now     func() time.Time
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	cat *catalog.Catalog,
	repo repository.AppointmentRepository,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:     log,
		catalog: cat,
		repo:    repo,
		now:     time.Now,
	}
}

func (u *appointmentUsecase) GetDepartments(ctx context.Context) *dto.DepartmentListResponse {
	return &dto.DepartmentListResponse{Departments: u.catalog.Departments()}
}

// GetAvailableSlots subtracts the doctor's occupied slots from the catalog
// template. On the current date, slots at or before the wall clock are
// dropped; past dates always come back empty.
func (u *appointmentUsecase) GetAvailableSlots(ctx context.Context, department, doctor, date string) (*dto.AvailableSlotsResponse, error) {
	if !u.catalog.HasDepartment(department) {
		return nil, ErrDepartmentNotFound
	}
	if !u.catalog.HasDoctor(department, doctor) {
		return nil, ErrDoctorNotFound
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDateFormat
	}

	resp := &dto.AvailableSlotsResponse{
		Department: department,
		Doctor:     doctor,
		Date:       date,
		Slots:      u.freeSlots(doctor, date),
	}
	return resp, nil
}

func (u *appointmentUsecase) freeSlots(doctor, date string) []string {
	now := u.now()
	today := now.Format("2006-01-02")
	if date < today {
		return []string{}
	}

	template := u.catalog.SlotsFor(doctor, date)
	currentTime := now.Format("15:04")

	free := []string{}
	for _, slot := range template {
		if date == today && slot <= currentTime {
			continue
		}
		if u.repo.IsOccupied(doctor, date, slot) {
			continue
		}
		free = append(free, slot)
	}
	return free
}

// BookAppointment validates a booking request rule by rule and inserts the
// record. The store re-checks occupancy atomically with the write, so a
// concurrent duplicate loses there even if it passed the checks here.
func (u *appointmentUsecase) BookAppointment(ctx context.Context, patientKey string, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	req.PatientName = strings.TrimSpace(req.PatientName)

	if len(req.PatientName) < 2 {
		return nil, ErrInvalidPatientName
	}
	if req.PatientAge < 0 || req.PatientAge > 150 {
		return nil, ErrInvalidPatientAge
	}
	switch req.PatientGender {
	case "Male", "Female", "Other":
	default:
		return nil, ErrInvalidPatientGender
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, ErrInvalidDateFormat
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	now := u.now()
	if req.Date < now.Format("2006-01-02") {
		return nil, ErrPastDate
	}

	if !u.catalog.HasDepartment(req.Department) {
		return nil, ErrDepartmentNotFound
	}
	if !u.catalog.HasDoctor(req.Department, req.Doctor) {
		return nil, ErrDoctorNotFound
	}

	template := u.catalog.SlotsFor(req.Doctor, req.Date)
	if len(template) == 0 {
		return nil, ErrDoctorOffDay
	}
	if !containsSlot(template, req.Time) {
		return nil, ErrOutsideWorkingHours
	}

	if u.repo.IsOccupied(req.Doctor, req.Date, req.Time) {
		return nil, ErrSlotTaken
	}

	// A patient holds at most one visit per time slot and one visit per
	// doctor per day.
	for _, existing := range u.repo.ListByPatient(patientKey) {
		if !existing.IsConfirmed() {
			continue
		}
		if existing.Date == req.Date && existing.Time == req.Time {
			return nil, ErrPatientBusy
		}
		if existing.Date == req.Date && existing.Doctor == req.Doctor {
			return nil, ErrDuplicateVisit
		}
	}

	appointment := &entity.Appointment{
		PatientKey:    patientKey,
		PatientName:   req.PatientName,
		PatientAge:    req.PatientAge,
		PatientGender: req.PatientGender,
		Department:    req.Department,
		Doctor:        req.Doctor,
		Date:          req.Date,
		Time:          req.Time,
		CreatedAt:     now,
	}

	if err := u.repo.Insert(appointment); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to insert appointment for patient %s: %+v", patientKey, err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%s, doctor=%s, date=%s, time=%s", appointment.ID, appointment.Doctor, appointment.Date, appointment.Time)
	return converter.AppointmentToResponse(appointment, now), nil
}

func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id, patientKey string) error {
	if err := u.repo.Cancel(id, patientKey); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrAppointmentNotFound
		case errors.Is(err, repository.ErrNotOwned):
			return ErrAppointmentNotOwned
		case errors.Is(err, repository.ErrAlreadyCancelled):
			return ErrAlreadyCancelled
		default:
			u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
			return err
		}
	}

	u.log.Infof("Appointment cancelled: id=%s", id)
	return nil
}

// GetMyAppointments returns the patient's visits sorted by date then time
// ascending. Cancelled records are hidden; past ones read as expired.
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, patientKey string) (*dto.AppointmentListResponse, error) {
	now := u.now()

	var visible []entity.Appointment
	for _, appointment := range u.repo.ListByPatient(patientKey) {
		if appointment.IsCancelled() {
			continue
		}
		visible = append(visible, appointment)
	}

	sort.Slice(visible, func(i, j int) bool {
		if visible[i].Date != visible[j].Date {
			return visible[i].Date < visible[j].Date
		}
		return visible[i].Time < visible[j].Time
	})

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(visible, now),
		Total:        len(visible),
	}, nil
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
