package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayStatus(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		apt  Appointment
		want AppointmentStatus
	}{
		{"upcoming", Appointment{Date: "2025-06-11", Time: "09:00", Status: StatusConfirmed}, StatusConfirmed},
		{"later today", Appointment{Date: "2025-06-10", Time: "14:00", Status: StatusConfirmed}, StatusConfirmed},
		{"elapsed", Appointment{Date: "2025-06-10", Time: "09:00", Status: StatusConfirmed}, StatusExpired},
		{"cancelled wins over elapsed", Appointment{Date: "2025-06-01", Time: "09:00", Status: StatusCancelled}, StatusCancelled},
		{"doctor cancellation preserved", Appointment{Date: "2025-06-11", Time: "09:00", Status: StatusCancelledByDoctor}, StatusCancelledByDoctor},
		{"malformed time never expires", Appointment{Date: "2025-06-01", Time: "morning", Status: StatusConfirmed}, StatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.apt.DisplayStatus(now))
		})
	}
}

func TestIsCancelledCoversBothParties(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusCancelled}).IsCancelled())
	assert.True(t, (&Appointment{Status: StatusCancelledByDoctor}).IsCancelled())
	assert.False(t, (&Appointment{Status: StatusConfirmed}).IsCancelled())
}
