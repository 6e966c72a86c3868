package http

import (
	"net/http"

	"hospital-assistant/internal/delivery/http/handler"
	"hospital-assistant/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	scheduleHandler    *handler.ScheduleHandler
	appointmentHandler *handler.AppointmentHandler
	doctorHandler      *handler.DoctorHandler
	connectHandler     *handler.ConnectHandler
	authMiddleware     *middleware.AuthMiddleware
	doctorMiddleware   *middleware.DoctorMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	scheduleHandler *handler.ScheduleHandler,
	appointmentHandler *handler.AppointmentHandler,
	doctorHandler *handler.DoctorHandler,
	connectHandler *handler.ConnectHandler,
	authMiddleware *middleware.AuthMiddleware,
	doctorMiddleware *middleware.DoctorMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		scheduleHandler:    scheduleHandler,
		appointmentHandler: appointmentHandler,
		doctorHandler:      doctorHandler,
		connectHandler:     connectHandler,
		authMiddleware:     authMiddleware,
		doctorMiddleware:   doctorMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes
	api.HandleFunc("/connect", r.connectHandler.Connect).Methods(http.MethodPost)
	api.HandleFunc("/departments", r.scheduleHandler.GetDepartments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/slots", r.scheduleHandler.GetAvailableSlots).Methods(http.MethodGet)

	// Patient routes (protected)
	patient := api.PathPrefix("/appointments").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.HandleFunc("", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/me", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/{id}", r.appointmentHandler.CancelAppointment).Methods(http.MethodDelete)

	// Doctor dashboard (protected - allow-listed doctors only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(r.doctorMiddleware.RequireDoctor)
	doctor.HandleFunc("/appointments/today", r.doctorHandler.GetTodayAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/upcoming", r.doctorHandler.GetUpcomingAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/past-week", r.doctorHandler.GetPastWeekAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}", r.doctorHandler.CancelAppointment).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
