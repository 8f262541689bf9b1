package http

import (
	"net/http"

	"healthcare-portal/internal/delivery/http/handler"
	"healthcare-portal/internal/delivery/http/middleware"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	appointmentHandler *handler.AppointmentHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	metricsMiddleware  *middleware.MetricsMiddleware
	loggingMiddleware  *middleware.LoggingMiddleware
	metricsHandler     http.Handler
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	appointmentHandler *handler.AppointmentHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		userHandler:        userHandler,
		appointmentHandler: appointmentHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		metricsMiddleware:  metricsMiddleware,
		loggingMiddleware:  loggingMiddleware,
		metricsHandler:     metricsHandler,
	}
}

// protect runs the auth guard and then, when roles are given, the role gate.
func (r *Router) protect(h http.HandlerFunc, roles ...entity.Role) http.Handler {
	var next http.Handler = h
	if len(roles) > 0 {
		next = middleware.RequireRole(roles...)(next)
	}
	return r.authMiddleware.Authenticate(next)
}

// Setup registers every route and returns the fully wrapped handler.
func (r *Router) Setup() http.Handler {
	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "")
	})
	r.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes
	api.HandleFunc("/auth/register", r.authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", r.authHandler.Login).Methods(http.MethodPost)
	api.Handle("/auth/me", r.protect(r.authHandler.GetCurrentUser)).Methods(http.MethodGet)
	api.Handle("/auth/logout", r.protect(r.authHandler.Logout)).Methods(http.MethodPost)

	// User routes
	api.Handle("/users/doctors", r.protect(r.userHandler.GetDoctors)).Methods(http.MethodGet)
	api.Handle("/users", r.protect(r.userHandler.GetAllUsers, entity.RoleAdmin)).Methods(http.MethodGet)
	api.Handle("/users", r.protect(r.userHandler.CreateUser, entity.RoleAdmin)).Methods(http.MethodPost)
	api.Handle("/doctor", r.protect(r.userHandler.GetDoctors, entity.RoleAdmin)).Methods(http.MethodGet)

	// Appointment routes
	api.Handle("/appointments/my", r.protect(r.appointmentHandler.GetMyAppointments, entity.RolePatient)).Methods(http.MethodGet)
	api.Handle("/appointments/doctor", r.protect(r.appointmentHandler.GetDoctorAppointments, entity.RoleDoctor)).Methods(http.MethodGet)
	api.Handle("/appointments/{id}/status", r.protect(r.appointmentHandler.UpdateStatus, entity.RoleDoctor)).Methods(http.MethodPut)
	api.Handle("/appointments", r.protect(r.appointmentHandler.CreateAppointment, entity.RolePatient)).Methods(http.MethodPost)
	api.Handle("/appointments", r.protect(r.appointmentHandler.GetAllAppointments, entity.RoleAdmin)).Methods(http.MethodGet)

	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)

	r.router.Use(r.metricsMiddleware.Handle)

	// CORS wraps the router so preflight requests never reach route matching.
	return r.corsMiddleware.Handle(r.loggingMiddleware.Handle(r.router))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "Healthcare Portal API is running...", map[string]string{"status": "ok"})
}
