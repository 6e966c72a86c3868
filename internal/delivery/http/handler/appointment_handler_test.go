package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-assistant/internal/catalog"
	"hospital-assistant/internal/delivery/dto"
	"hospital-assistant/internal/delivery/http/middleware"
	repoimpl "hospital-assistant/internal/repository"
	"hospital-assistant/internal/usecase"
	"hospital-assistant/pkg/response"
	"hospital-assistant/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlers() (*AppointmentHandler, *ScheduleHandler) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	u := usecase.NewAppointmentUsecase(log, catalog.New(), repoimpl.NewAppointmentRepository())
	return NewAppointmentHandler(u, validator.NewValidator()), NewScheduleHandler(u)
}

// nextWorkingDate finds an upcoming date with open slots for the doctor.
func nextWorkingDate(t *testing.T, doctor string) (string, []string) {
	t.Helper()
	c := catalog.New()
	for i := 1; i <= 7; i++ {
		date := time.Now().AddDate(0, 0, i).Format("2006-01-02")
		if slots := c.SlotsFor(doctor, date); len(slots) > 0 {
			return date, slots
		}
	}
	t.Fatalf("no working date found for %s", doctor)
	return "", nil
}

func asPatient(req *http.Request, patientKey string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.PatientKeyKey, patientKey)
	return req.WithContext(ctx)
}

func bookingBody(t *testing.T, date, timeSlot string) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(dto.BookAppointmentRequest{
		PatientName:   "Asha Verma",
		PatientAge:    34,
		PatientGender: "Female",
		Department:    "Cardiology",
		Doctor:        "Dr. Harsh Sharma",
		Date:          date,
		Time:          timeSlot,
	})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestBookAppointmentHandler(t *testing.T) {
	appointmentHandler, _ := newHandlers()
	date, slots := nextWorkingDate(t, "Dr. Harsh Sharma")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bookingBody(t, date, slots[0]))
	rec := httptest.NewRecorder()
	appointmentHandler.BookAppointment(rec, asPatient(req, "P1"))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Appointment booked successfully", resp.Message)
}

func TestBookAppointmentHandlerRequiresIdentity(t *testing.T) {
	appointmentHandler, _ := newHandlers()
	date, slots := nextWorkingDate(t, "Dr. Harsh Sharma")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bookingBody(t, date, slots[0]))
	rec := httptest.NewRecorder()
	appointmentHandler.BookAppointment(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBookAppointmentHandlerValidation(t *testing.T) {
	appointmentHandler, _ := newHandlers()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader([]byte(`{"patient_name":"A"}`)))
	rec := httptest.NewRecorder()
	appointmentHandler.BookAppointment(rec, asPatient(req, "P1"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed", resp.Message)
}

func TestBookAppointmentHandlerConflict(t *testing.T) {
	appointmentHandler, _ := newHandlers()
	date, slots := nextWorkingDate(t, "Dr. Harsh Sharma")

	first := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bookingBody(t, date, slots[0]))
	rec := httptest.NewRecorder()
	appointmentHandler.BookAppointment(rec, asPatient(first, "P1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	second := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bookingBody(t, date, slots[0]))
	rec = httptest.NewRecorder()
	appointmentHandler.BookAppointment(rec, asPatient(second, "P2"))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelAppointmentHandlerForbidden(t *testing.T) {
	appointmentHandler, _ := newHandlers()
	date, slots := nextWorkingDate(t, "Dr. Harsh Sharma")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bookingBody(t, date, slots[0]))
	rec := httptest.NewRecorder()
	appointmentHandler.BookAppointment(rec, asPatient(req, "P1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var booked dto.AppointmentResponse
	require.NoError(t, json.Unmarshal(data, &booked))

	del := httptest.NewRequest(http.MethodDelete, "/api/v1/appointments/"+booked.ID, nil)
	del = mux.SetURLVars(del, map[string]string{"id": booked.ID})
	rec = httptest.NewRecorder()
	appointmentHandler.CancelAppointment(rec, asPatient(del, "P2"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	del = httptest.NewRequest(http.MethodDelete, "/api/v1/appointments/"+booked.ID, nil)
	del = mux.SetURLVars(del, map[string]string{"id": booked.ID})
	rec = httptest.NewRecorder()
	appointmentHandler.CancelAppointment(rec, asPatient(del, "P1"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetMyAppointmentsHandler(t *testing.T) {
	appointmentHandler, _ := newHandlers()
	date, slots := nextWorkingDate(t, "Dr. Harsh Sharma")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bookingBody(t, date, slots[0]))
	rec := httptest.NewRecorder()
	appointmentHandler.BookAppointment(rec, asPatient(req, "P1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	list := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/me", nil)
	rec = httptest.NewRecorder()
	appointmentHandler.GetMyAppointments(rec, asPatient(list, "P1"))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestGetAvailableSlotsHandler(t *testing.T) {
	_, scheduleHandler := newHandlers()
	date, slots := nextWorkingDate(t, "Dr. Harsh Sharma")

	url := fmt.Sprintf("/api/v1/appointments/slots?department=Cardiology&doctor=%s&date=%s", "Dr.+Harsh+Sharma", date)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	scheduleHandler.GetAvailableSlots(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var payload dto.AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Subset(t, slots, payload.Slots)
}

func TestGetAvailableSlotsHandlerMissingParams(t *testing.T) {
	_, scheduleHandler := newHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/slots?doctor=Dr.+Harsh+Sharma", nil)
	rec := httptest.NewRecorder()
	scheduleHandler.GetAvailableSlots(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAvailableSlotsHandlerUnknownDepartment(t *testing.T) {
	_, scheduleHandler := newHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/slots?department=Astrology&doctor=Dr.+X&date=2025-06-10", nil)
	rec := httptest.NewRecorder()
	scheduleHandler.GetAvailableSlots(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDepartmentsHandler(t *testing.T) {
	_, scheduleHandler := newHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil)
	rec := httptest.NewRecorder()
	scheduleHandler.GetDepartments(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var payload dto.DepartmentListResponse
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Contains(t, payload.Departments, "Cardiology")
}
