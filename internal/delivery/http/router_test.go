package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"healthcare-portal/config"
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/delivery/http/handler"
	"healthcare-portal/internal/delivery/http/middleware"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/repository"
	"healthcare-portal/internal/service"
	"healthcare-portal/internal/usecase"
	"healthcare-portal/pkg/jwt"
	"healthcare-portal/pkg/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type portal struct {
	t       *testing.T
	handler http.Handler
	users   usecase.UserUsecase
}

func newPortal(t *testing.T) *portal {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Appointment{}))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	userRepo := repository.NewUserRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	tokenStore := service.NewRedisTokenStore(redisClient)
	directory := service.NewDoctorDirectory(userRepo, redisClient, time.Minute, log)

	authUsecase := usecase.NewAuthUsecase(log, userRepo, jwtService, tokenStore, directory)
	userUsecase := usecase.NewUserUsecase(log, userRepo, directory)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, userRepo)

	v := validator.NewValidator()
	registry := prometheus.NewRegistry()
	router := NewRouter(
		handler.NewAuthHandler(authUsecase, v, log),
		handler.NewUserHandler(userUsecase, v, log),
		handler.NewAppointmentHandler(appointmentUsecase, v, log),
		middleware.NewAuthMiddleware(authUsecase, log),
		middleware.NewCORSMiddleware([]string{"http://localhost:5173"}),
		middleware.NewMetricsMiddleware(registry),
		middleware.NewLoggingMiddleware(log),
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	return &portal{t: t, handler: router.Setup(), users: userUsecase}
}

type result struct {
	status int
	body   struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
}

func (p *portal) do(method, path, token string, payload any) result {
	p.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(p.t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	p.handler.ServeHTTP(rec, req)

	var res result
	res.status = rec.Code
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(p.t, json.Unmarshal(rec.Body.Bytes(), &res.body))
	}
	return res
}

func (p *portal) seed(name, email string, role entity.Role) {
	p.t.Helper()
	created, err := p.users.SeedUser(context.Background(), name, email, "123456", role)
	require.NoError(p.t, err)
	require.True(p.t, created)
}

func (p *portal) login(email string) dto.AuthResponse {
	p.t.Helper()
	res := p.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": "123456"})
	require.Equal(p.t, http.StatusOK, res.status, res.body.Message)
	var auth dto.AuthResponse
	require.NoError(p.t, json.Unmarshal(res.body.Data, &auth))
	return auth
}

func TestPortal_AppointmentLifecycle(t *testing.T) {
	p := newPortal(t)
	p.seed("Admin One", "admin@test.com", entity.RoleAdmin)
	p.seed("Dr John", "doctor1@test.com", entity.RoleDoctor)
	p.seed("Dr Mary", "doctor2@test.com", entity.RoleDoctor)
	p.seed("Patient One", "patient@test.com", entity.RolePatient)

	admin := p.login("admin@test.com")
	doctorD := p.login("doctor1@test.com")
	doctorE := p.login("doctor2@test.com")
	patient := p.login("patient@test.com")

	// patient books with doctor D; the body's patientId is ignored
	res := p.do(http.MethodPost, "/api/appointments", patient.Token, map[string]string{
		"doctorId":        doctorD.ID.String(),
		"patientId":       doctorE.ID.String(),
		"appointmentDate": "2030-06-01T09:00:00Z",
		"reason":          "checkup",
	})
	require.Equal(t, http.StatusCreated, res.status, res.body.Message)
	var created dto.AppointmentResponse
	require.NoError(t, json.Unmarshal(res.body.Data, &created))
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "", created.DoctorNotes)
	assert.Equal(t, patient.ID, created.PatientID)

	statusPath := "/api/appointments/" + created.ID.String() + "/status"

	// doctor E is not assigned
	res = p.do(http.MethodPut, statusPath, doctorE.Token, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, res.status)

	// invalid status leaves the record unchanged
	res = p.do(http.MethodPut, statusPath, doctorD.Token, map[string]string{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, res.status)

	// doctor D approves
	res = p.do(http.MethodPut, statusPath, doctorD.Token, map[string]string{"status": "approved", "doctorNotes": "all clear"})
	require.Equal(t, http.StatusOK, res.status, res.body.Message)
	var decided dto.AppointmentResponse
	require.NoError(t, json.Unmarshal(res.body.Data, &decided))
	assert.Equal(t, "approved", decided.Status)
	assert.Equal(t, "all clear", decided.DoctorNotes)
	require.NotNil(t, decided.Patient)
	require.NotNil(t, decided.Doctor)

	// approved is terminal
	res = p.do(http.MethodPut, statusPath, doctorD.Token, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, res.status)

	// still not doctor E's to decide
	res = p.do(http.MethodPut, statusPath, doctorE.Token, map[string]string{"status": "approved", "doctorNotes": "all clear"})
	assert.Equal(t, http.StatusForbidden, res.status)

	// visible to the patient
	res = p.do(http.MethodGet, "/api/appointments/my", patient.Token, nil)
	require.Equal(t, http.StatusOK, res.status)
	var mine dto.AppointmentListResponse
	require.NoError(t, json.Unmarshal(res.body.Data, &mine))
	require.Equal(t, 1, mine.Total)
	assert.Equal(t, "approved", mine.Appointments[0].Status)
	assert.Equal(t, "all clear", mine.Appointments[0].DoctorNotes)
	require.NotNil(t, mine.Appointments[0].Doctor)
	assert.Equal(t, "Dr John", mine.Appointments[0].Doctor.Name)

	// admin sees everything, doctor E sees nothing
	res = p.do(http.MethodGet, "/api/appointments", admin.Token, nil)
	require.Equal(t, http.StatusOK, res.status)
	res = p.do(http.MethodGet, "/api/appointments/doctor", doctorE.Token, nil)
	require.Equal(t, http.StatusOK, res.status)
	var assigned dto.AppointmentListResponse
	require.NoError(t, json.Unmarshal(res.body.Data, &assigned))
	assert.Equal(t, 0, assigned.Total)

	// admin creating a duplicate patient email conflicts
	res = p.do(http.MethodPost, "/api/users", admin.Token, map[string]string{
		"name": "Dup", "email": "PATIENT@test.com", "password": "123456", "role": "patient",
	})
	assert.Equal(t, http.StatusConflict, res.status)
}

func TestPortal_RoleGates(t *testing.T) {
	p := newPortal(t)
	p.seed("Admin One", "admin@test.com", entity.RoleAdmin)
	p.seed("Dr John", "doctor1@test.com", entity.RoleDoctor)
	p.seed("Patient One", "patient@test.com", entity.RolePatient)

	admin := p.login("admin@test.com")
	doctor := p.login("doctor1@test.com")
	patient := p.login("patient@test.com")

	cases := []struct {
		method, path, token string
		want                int
	}{
		{http.MethodGet, "/api/users", patient.Token, http.StatusForbidden},
		{http.MethodGet, "/api/users", admin.Token, http.StatusOK},
		{http.MethodGet, "/api/users/doctors", patient.Token, http.StatusOK},
		{http.MethodGet, "/api/doctor", doctor.Token, http.StatusForbidden},
		{http.MethodGet, "/api/doctor", admin.Token, http.StatusOK},
		{http.MethodGet, "/api/appointments", doctor.Token, http.StatusForbidden},
		{http.MethodGet, "/api/appointments/my", doctor.Token, http.StatusForbidden},
		{http.MethodGet, "/api/appointments/doctor", patient.Token, http.StatusForbidden},
		{http.MethodGet, "/api/appointments/my", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/auth/me", "garbage", http.StatusUnauthorized},
		{http.MethodGet, "/api/auth/me", patient.Token, http.StatusOK},
		{http.MethodGet, "/api/health", "", http.StatusOK},
		{http.MethodGet, "/api/nowhere", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		res := p.do(tc.method, tc.path, tc.token, nil)
		assert.Equal(t, tc.want, res.status, "%s %s", tc.method, tc.path)
	}
}

func TestPortal_RegisterAndLogout(t *testing.T) {
	p := newPortal(t)

	res := p.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "New Patient", "email": "New@Test.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, res.status, res.body.Message)
	var registered dto.AuthResponse
	require.NoError(t, json.Unmarshal(res.body.Data, &registered))
	assert.Equal(t, "patient", registered.Role)
	assert.Equal(t, "new@test.com", registered.Email)

	res = p.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Sneaky", "email": "sneaky@test.com", "password": "secret1", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, res.status)

	res = p.do(http.MethodGet, "/api/auth/me", registered.Token, nil)
	require.Equal(t, http.StatusOK, res.status)

	res = p.do(http.MethodPost, "/api/auth/logout", registered.Token, nil)
	require.Equal(t, http.StatusOK, res.status)

	res = p.do(http.MethodGet, "/api/auth/me", registered.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "Not authorized", res.body.Message)
}

func TestPortal_DoctorDirectoryRefreshedOnCreate(t *testing.T) {
	p := newPortal(t)
	p.seed("Admin One", "admin@test.com", entity.RoleAdmin)
	admin := p.login("admin@test.com")

	res := p.do(http.MethodGet, "/api/users/doctors", admin.Token, nil)
	require.Equal(t, http.StatusOK, res.status)
	var before dto.UserListResponse
	require.NoError(t, json.Unmarshal(res.body.Data, &before))
	assert.Equal(t, 0, before.Total)

	res = p.do(http.MethodPost, "/api/users", admin.Token, map[string]string{
		"name": "Dr New", "email": "drnew@test.com", "password": "secret1", "role": "doctor",
	})
	require.Equal(t, http.StatusCreated, res.status, res.body.Message)

	res = p.do(http.MethodGet, "/api/users/doctors", admin.Token, nil)
	require.Equal(t, http.StatusOK, res.status)
	var after dto.UserListResponse
	require.NoError(t, json.Unmarshal(res.body.Data, &after))
	require.Equal(t, 1, after.Total)
	assert.Equal(t, "Dr New", after.Users[0].Name)
}

func TestPortal_CreateAppointmentWithUnknownDoctor(t *testing.T) {
	p := newPortal(t)
	p.seed("Patient One", "patient@test.com", entity.RolePatient)
	patient := p.login("patient@test.com")

	res := p.do(http.MethodPost, "/api/appointments", patient.Token, map[string]string{
		"doctorId": uuid.NewString(),
		"date":     "2030-06-01",
		"reason":   "checkup",
	})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "doctorId must reference a doctor", res.body.Message)
}

func TestPortal_PreflightAndMetrics(t *testing.T) {
	p := newPortal(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/appointments", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	p.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	p.do(http.MethodGet, "/api/health", "", nil)

	rec = httptest.NewRecorder()
	p.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/api/health",status="200"} 1`)
}
