package http

import (
	"net/http"

	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/http/handler"
	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	doctorHandler      *handler.DoctorHandler
	patientHandler     *handler.PatientHandler
	appointmentHandler *handler.AppointmentHandler
	diagnosisHandler   *handler.DiagnosisHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	diagnosisHandler *handler.DiagnosisHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		doctorHandler:      doctorHandler,
		patientHandler:     patientHandler,
		appointmentHandler: appointmentHandler,
		diagnosisHandler:   diagnosisHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Clinic routes (protected - any authenticated staff)
	clinic := api.PathPrefix("").Subrouter()
	clinic.Use(r.authMiddleware.Authenticate)
	clinic.Use(middleware.RequireStaff)

	// Doctors
	clinic.HandleFunc("/doctors", r.doctorHandler.GetAll).Methods(http.MethodGet)
	clinic.HandleFunc("/doctors/{id}", r.doctorHandler.GetByID).Methods(http.MethodGet)
	clinic.HandleFunc("/doctors/{id}", r.doctorHandler.Update).Methods(http.MethodPut)
	clinic.HandleFunc("/doctors/{id}/patients", r.doctorHandler.GetPatients).Methods(http.MethodGet)

	// Patients
	clinic.HandleFunc("/patients/{id}", r.patientHandler.GetByID).Methods(http.MethodGet)
	clinic.HandleFunc("/patients/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	clinic.HandleFunc("/patients/{id}/history", r.patientHandler.GetHistory).Methods(http.MethodGet)

	// Appointments
	clinic.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	clinic.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	clinic.HandleFunc("/appointments/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	clinic.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	// Diagnoses
	clinic.HandleFunc("/diagnoses", r.diagnosisHandler.Create).Methods(http.MethodPost)

	// Audit trail (admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetByID).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
