package repository

import (
	"sync"
	"testing"
	"time"

	"hospital-assistant/internal/domain/entity"
	domainRepo "hospital-assistant/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAppointment(patientKey, doctor, date, timeSlot string) *entity.Appointment {
	return &entity.Appointment{
		PatientKey:    patientKey,
		PatientName:   "Test Patient",
		PatientAge:    30,
		PatientGender: "Other",
		Department:    "Cardiology",
		Doctor:        doctor,
		Date:          date,
		Time:          timeSlot,
		CreatedAt:     time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC),
	}
}

func TestInsertAssignsIDAndStatus(t *testing.T) {
	repo := NewAppointmentRepository()

	apt := newAppointment("P1", "Dr. Harsh Sharma", "2025-06-10", "09:00")
	require.NoError(t, repo.Insert(apt))

	assert.Equal(t, "APT-20250609-0001", apt.ID)
	assert.Equal(t, entity.StatusConfirmed, apt.Status)

	stored, err := repo.FindByID(apt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "P1", stored.PatientKey)
}

func TestInsertRejectsOccupiedSlot(t *testing.T) {
	repo := NewAppointmentRepository()

	require.NoError(t, repo.Insert(newAppointment("P1", "Dr. Harsh Sharma", "2025-06-10", "09:00")))

	err := repo.Insert(newAppointment("P2", "Dr. Harsh Sharma", "2025-06-10", "09:00"))
	assert.ErrorIs(t, err, domainRepo.ErrSlotTaken)

	// A different slot or doctor is fine.
	assert.NoError(t, repo.Insert(newAppointment("P2", "Dr. Harsh Sharma", "2025-06-10", "09:30")))
	assert.NoError(t, repo.Insert(newAppointment("P2", "Dr. Deepak Rao", "2025-06-10", "09:00")))
}

func TestConcurrentInsertsOneWinner(t *testing.T) {
	repo := NewAppointmentRepository()

	const attempts = 50
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = repo.Insert(newAppointment("P1", "Dr. Harsh Sharma", "2025-06-10", "09:00"))
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case err == domainRepo.ErrSlotTaken:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func TestCancelFreesSlot(t *testing.T) {
	repo := NewAppointmentRepository()

	apt := newAppointment("P1", "Dr. Harsh Sharma", "2025-06-10", "09:00")
	require.NoError(t, repo.Insert(apt))
	require.True(t, repo.IsOccupied("Dr. Harsh Sharma", "2025-06-10", "09:00"))

	require.NoError(t, repo.Cancel(apt.ID, "P1"))
	assert.False(t, repo.IsOccupied("Dr. Harsh Sharma", "2025-06-10", "09:00"))

	// The freed slot can be rebooked immediately.
	assert.NoError(t, repo.Insert(newAppointment("P2", "Dr. Harsh Sharma", "2025-06-10", "09:00")))
}

func TestCancelErrors(t *testing.T) {
	repo := NewAppointmentRepository()

	apt := newAppointment("P1", "Dr. Harsh Sharma", "2025-06-10", "09:00")
	require.NoError(t, repo.Insert(apt))

	assert.ErrorIs(t, repo.Cancel("APT-00000000-9999", "P1"), domainRepo.ErrNotFound)
	assert.ErrorIs(t, repo.Cancel(apt.ID, "P2"), domainRepo.ErrNotOwned)

	require.NoError(t, repo.Cancel(apt.ID, "P1"))
	assert.ErrorIs(t, repo.Cancel(apt.ID, "P1"), domainRepo.ErrAlreadyCancelled)
}

func TestUpdateStatus(t *testing.T) {
	repo := NewAppointmentRepository()

	apt := newAppointment("P1", "Dr. Harsh Sharma", "2025-06-10", "09:00")
	require.NoError(t, repo.Insert(apt))

	require.NoError(t, repo.UpdateStatus(apt.ID, entity.StatusCancelledByDoctor))
	stored, err := repo.FindByID(apt.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelledByDoctor, stored.Status)
	assert.False(t, repo.IsOccupied("Dr. Harsh Sharma", "2025-06-10", "09:00"))

	assert.ErrorIs(t, repo.UpdateStatus("APT-00000000-9999", entity.StatusCancelled), domainRepo.ErrNotFound)
}

func TestFindByIDMissing(t *testing.T) {
	repo := NewAppointmentRepository()

	apt, err := repo.FindByID("nope")
	require.NoError(t, err)
	assert.Nil(t, apt)
}

func TestListByPatient(t *testing.T) {
	repo := NewAppointmentRepository()

	require.NoError(t, repo.Insert(newAppointment("P1", "Dr. Harsh Sharma", "2025-06-10", "09:00")))
	require.NoError(t, repo.Insert(newAppointment("P1", "Dr. Deepak Rao", "2025-06-11", "10:00")))
	require.NoError(t, repo.Insert(newAppointment("P2", "Dr. Harsh Sharma", "2025-06-10", "10:00")))

	mine := repo.ListByPatient("P1")
	assert.Len(t, mine, 2)
	for _, apt := range mine {
		assert.Equal(t, "P1", apt.PatientKey)
	}

	assert.Empty(t, repo.ListByPatient("P3"))
}

func TestListByDoctorWithPredicate(t *testing.T) {
	repo := NewAppointmentRepository()

	require.NoError(t, repo.Insert(newAppointment("P1", "Dr. Harsh Sharma", "2025-06-10", "09:00")))
	require.NoError(t, repo.Insert(newAppointment("P2", "Dr. Harsh Sharma", "2025-06-11", "09:00")))
	require.NoError(t, repo.Insert(newAppointment("P3", "Dr. Deepak Rao", "2025-06-10", "09:00")))

	all := repo.ListByDoctor("Dr. Harsh Sharma", nil)
	assert.Len(t, all, 2)

	tuesday := repo.ListByDoctor("Dr. Harsh Sharma", func(a *entity.Appointment) bool {
		return a.Date == "2025-06-10"
	})
	require.Len(t, tuesday, 1)
	assert.Equal(t, "P1", tuesday[0].PatientKey)
}

func TestFindByIDReturnsCopy(t *testing.T) {
	repo := NewAppointmentRepository()

	apt := newAppointment("P1", "Dr. Harsh Sharma", "2025-06-10", "09:00")
	require.NoError(t, repo.Insert(apt))

	first, err := repo.FindByID(apt.ID)
	require.NoError(t, err)
	first.Status = entity.StatusCancelled

	second, err := repo.FindByID(apt.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusConfirmed, second.Status)
}
