package http

import (
	"database/sql"
	"net/http"

	"github.com/clinic-appointment-crm/clinic-service/internal/accounts"
	"github.com/clinic-appointment-crm/clinic-service/internal/admin"
	"github.com/clinic-appointment-crm/clinic-service/internal/appointment"
	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
	"github.com/clinic-appointment-crm/clinic-service/internal/doctor"
	"github.com/clinic-appointment-crm/clinic-service/internal/messaging"
	"github.com/clinic-appointment-crm/clinic-service/internal/patient"
	"github.com/clinic-appointment-crm/clinic-service/internal/prescription"
	"github.com/clinic-appointment-crm/clinic-service/internal/reception"
	"github.com/clinic-appointment-crm/clinic-service/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all routes for the application
func SetupRouter(database *sql.DB, tokens *auth.TokenService, authCfg auth.Config, perms auth.Permissions, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *mux.Router {
	// A nil *telemetry.Metrics must stay a nil interface in the services,
	// so the conversions happen behind a non-nil check.
	var (
		authMetrics         auth.MetricsRecorder
		permMetrics         auth.PermissionMetricsRecorder
		accountMetrics      accounts.MetricsRecorder
		appointmentMetrics  appointment.MetricsRecorder
		prescriptionMetrics prescription.MetricsRecorder
	)
	if metrics != nil {
		authMetrics = metrics
		permMetrics = metrics
		accountMetrics = metrics
		appointmentMetrics = metrics
		prescriptionMetrics = metrics
	}

	// Initialize account components
	accountRepo := accounts.NewRepository(database)
	accountService := accounts.NewService(accountRepo, tokens, publisher, accountMetrics, accounts.DefaultMinPasswordLength)
	accountHandler := accounts.NewHandler(accountService, authCfg)

	// Initialize role profile components
	patientRepo := patient.NewRepository(database)
	patientService := patient.NewService(patientRepo, accountService)
	patientHandler := patient.NewHandler(patientService)

	doctorRepo := doctor.NewRepository(database)
	doctorService := doctor.NewService(doctorRepo, accountService)
	doctorHandler := doctor.NewHandler(doctorService)

	receptionRepo := reception.NewRepository(database)
	receptionService := reception.NewService(receptionRepo, accountService)
	receptionHandler := reception.NewHandler(receptionService)

	adminRepo := admin.NewRepository(database)
	adminService := admin.NewService(adminRepo, accountService)
	adminHandler := admin.NewHandler(adminService)

	// Initialize appointment and prescription components
	appointmentRepo := appointment.NewRepository(database)
	appointmentService := appointment.NewService(appointmentRepo, publisher, appointmentMetrics)
	appointmentHandler := appointment.NewHandler(appointmentService)

	prescriptionRepo := prescription.NewRepository(database)
	prescriptionService := prescription.NewService(prescriptionRepo, publisher, prescriptionMetrics)
	prescriptionHandler := prescription.NewHandler(prescriptionService)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("clinic-service"))
	r.Use(MetricsMiddleware(metrics))
	r.Use(auth.CookieShim(authCfg.CookieName))

	authed := func(h http.HandlerFunc) http.Handler {
		return auth.MiddlewareWithMetrics(tokens, authMetrics)(h)
	}
	protect := func(permission string, h http.HandlerFunc) http.Handler {
		return auth.MiddlewareWithMetrics(tokens, authMetrics)(
			auth.RequirePermissionWithMetrics(permission, perms, permMetrics)(h),
		)
	}

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"clinic-service"}`))
	}).Methods("GET")

	// Auth routes. Patient and doctor registration are self-service;
	// reception registration goes through the permission map, and admin
	// registration additionally has the super-admin check enforced in the
	// service against the database.
	r.HandleFunc("/api/auth/login", accountHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", accountHandler.Logout).Methods("POST")
	r.HandleFunc("/api/auth/register/patient", accountHandler.RegisterPatient).Methods("POST")
	r.HandleFunc("/api/auth/register/doctor", accountHandler.RegisterDoctor).Methods("POST")
	r.Handle("/api/auth/register/reception", protect("account:register_staff", accountHandler.RegisterReception)).Methods("POST")
	r.Handle("/api/auth/register/admin", protect("account:register_admin", accountHandler.RegisterAdmin)).Methods("POST")
	r.Handle("/api/auth/verify", authed(accountHandler.Verify)).Methods("GET")
	r.Handle("/api/auth/me", authed(accountHandler.Me)).Methods("GET")
	r.Handle("/api/auth/refresh", authed(accountHandler.Refresh)).Methods("POST")

	// Patient routes
	r.Handle("/api/patients", protect("patient:view", patientHandler.List)).Methods("GET")
	r.Handle("/api/patients/me", protect("patient:me", patientHandler.Me)).Methods("GET")
	r.Handle("/api/patients/{id}", protect("patient:view", patientHandler.Get)).Methods("GET")
	r.Handle("/api/patients/{id}", protect("patient:update", patientHandler.Update)).Methods("PUT")
	r.Handle("/api/patients/{id}/toggle-status", protect("patient:manage", patientHandler.ToggleStatus)).Methods("PATCH")
	r.Handle("/api/patients/{id}/reset-password", protect("patient:manage", patientHandler.ResetPassword)).Methods("POST")
	r.Handle("/api/patients/{id}", protect("patient:manage", patientHandler.Deactivate)).Methods("DELETE")

	// Doctor routes. The export route must precede the {id} routes.
	r.Handle("/api/doctors", protect("doctor:view", doctorHandler.List)).Methods("GET")
	r.Handle("/api/doctors/export.csv", protect("doctor:export", doctorHandler.ExportCSV)).Methods("GET")
	r.Handle("/api/doctors/me", protect("doctor:me", doctorHandler.Me)).Methods("GET")
	r.Handle("/api/doctors/{id}", protect("doctor:view", doctorHandler.Get)).Methods("GET")
	r.Handle("/api/doctors/{id}", protect("doctor:update", doctorHandler.Update)).Methods("PUT")
	r.Handle("/api/doctors/{id}/toggle-status", protect("doctor:manage", doctorHandler.ToggleStatus)).Methods("PATCH")
	r.Handle("/api/doctors/{id}/reset-password", protect("doctor:manage", doctorHandler.ResetPassword)).Methods("POST")
	r.Handle("/api/doctors/{id}", protect("doctor:manage", doctorHandler.Deactivate)).Methods("DELETE")

	// Receptionist routes
	r.Handle("/api/receptionists", protect("reception:view", receptionHandler.List)).Methods("GET")
	r.Handle("/api/receptionists/export.csv", protect("reception:export", receptionHandler.ExportCSV)).Methods("GET")
	r.Handle("/api/receptionists/me", protect("reception:me", receptionHandler.Me)).Methods("GET")
	r.Handle("/api/receptionists/{id}", protect("reception:view", receptionHandler.Get)).Methods("GET")
	r.Handle("/api/receptionists/{id}", protect("reception:update", receptionHandler.Update)).Methods("PUT")
	r.Handle("/api/receptionists/{id}/toggle-status", protect("reception:manage", receptionHandler.ToggleStatus)).Methods("PATCH")
	r.Handle("/api/receptionists/{id}/reset-password", protect("reception:manage", receptionHandler.ResetPassword)).Methods("POST")
	r.Handle("/api/receptionists/{id}", protect("reception:manage", receptionHandler.Deactivate)).Methods("DELETE")

	// Admin profile routes
	r.Handle("/api/admins", protect("admin:view", adminHandler.List)).Methods("GET")
	r.Handle("/api/admins/me", protect("admin:me", adminHandler.Me)).Methods("GET")
	r.Handle("/api/admins/{id}", protect("admin:view", adminHandler.Get)).Methods("GET")

	// Cross-role account management
	r.Handle("/api/admin/users", protect("admin:manage", adminHandler.ListAccounts)).Methods("GET")
	r.Handle("/api/admin/users/{id}/toggle-status", protect("admin:manage", adminHandler.ToggleAccountStatus)).Methods("PATCH")
	r.Handle("/api/admin/users/{id}/reset-password", protect("admin:manage", adminHandler.ResetAccountPassword)).Methods("POST")
	r.Handle("/api/admin/activation-logs", protect("admin:manage", adminHandler.ActivationLogs)).Methods("GET")

	// Dashboard
	r.Handle("/api/dashboard/stats", protect("dashboard:view", adminHandler.DashboardStats)).Methods("GET")

	// Appointment routes
	r.Handle("/api/appointments", protect("appointment:create", appointmentHandler.Book)).Methods("POST")
	r.Handle("/api/appointments", protect("appointment:view", appointmentHandler.List)).Methods("GET")
	r.Handle("/api/appointments/{id}", protect("appointment:view", appointmentHandler.Get)).Methods("GET")
	r.Handle("/api/appointments/{id}/status", protect("appointment:update_status", appointmentHandler.UpdateStatus)).Methods("PATCH")

	// Prescription routes
	r.Handle("/api/prescriptions", protect("prescription:create", prescriptionHandler.Issue)).Methods("POST")
	r.Handle("/api/prescriptions", protect("prescription:view", prescriptionHandler.List)).Methods("GET")
	r.Handle("/api/prescriptions/{id}", protect("prescription:view", prescriptionHandler.Get)).Methods("GET")

	return r
}
