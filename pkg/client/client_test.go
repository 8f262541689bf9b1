package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/pkg/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NormalizesBaseURL(t *testing.T) {
	for _, base := range []string{"http://host:5000", "http://host:5000/", "http://host:5000/api", "http://host:5000/api/"} {
		assert.Equal(t, "http://host:5000/api", New(base, nil).baseURL, base)
	}
}

func TestSession_Lifecycle(t *testing.T) {
	var sess Session
	assert.False(t, sess.Authenticated())
	assert.Equal(t, "", sess.Role())
	assert.Equal(t, uuid.Nil, sess.UserID())

	id := uuid.New()
	sess.Load(&dto.AuthResponse{ID: id, Name: "Dr John", Email: "doctor1@test.com", Role: "doctor", Token: "tok"})
	assert.True(t, sess.Authenticated())
	assert.Equal(t, "doctor", sess.Role())
	assert.Equal(t, id, sess.UserID())

	sess.Clear()
	assert.False(t, sess.Authenticated())

	var nilSession *Session
	assert.False(t, nilSession.Authenticated())
}

func TestLoginAndMe(t *testing.T) {
	id := uuid.New()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "patient@test.com", req.Email)
		response.Success(w, http.StatusOK, "Login successful", dto.AuthResponse{
			ID: id, Name: "Patient One", Email: req.Email, Role: "patient", Token: "tok-1",
		})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		response.Success(w, http.StatusOK, "", dto.UserResponse{ID: id, Name: "Patient One", Role: "patient"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	var sess Session

	auth, err := c.Login(context.Background(), &sess, "patient@test.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", auth.Token)
	assert.Equal(t, "patient", sess.Role())

	me, err := c.Me(context.Background(), &sess)
	require.NoError(t, err)
	assert.Equal(t, id, me.ID)
}

func TestAuthenticatedCallRequiresSession(t *testing.T) {
	c := New("http://127.0.0.1:1", nil)
	_, err := c.MyAppointments(context.Background(), &Session{})
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Forbidden(w, "Forbidden")
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	sess := &Session{}
	sess.Load(&dto.AuthResponse{ID: uuid.New(), Role: "doctor", Token: "tok"})

	_, err := c.DecideAppointment(context.Background(), sess, uuid.New(), "approved", "")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Forbidden", apiErr.Message)
	assert.True(t, sess.Authenticated())
}

func TestUnauthorizedClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Unauthorized(w, "Not authorized")
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	sess := &Session{}
	sess.Load(&dto.AuthResponse{ID: uuid.New(), Role: "patient", Token: "revoked"})

	_, err := c.Me(context.Background(), sess)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.False(t, sess.Authenticated())
}

func TestNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL, srv.Client()).Health(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestCreateAppointmentSendsCanonicalDate(t *testing.T) {
	doctorID := uuid.New()
	date := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appointments", r.URL.Path)
		var req dto.CreateAppointmentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, doctorID.String(), req.DoctorID)
		assert.True(t, date.Equal(req.AppointmentDate))
		assert.Equal(t, "checkup", req.Reason)
		response.Success(w, http.StatusCreated, "", dto.AppointmentResponse{
			ID: uuid.New(), DoctorID: doctorID, AppointmentDate: req.AppointmentDate, Status: "pending",
		})
	}))
	defer srv.Close()

	sess := &Session{}
	sess.Load(&dto.AuthResponse{ID: uuid.New(), Role: "patient", Token: "tok"})

	appt, err := New(srv.URL, srv.Client()).CreateAppointment(context.Background(), sess, doctorID, date, "checkup")
	require.NoError(t, err)
	assert.Equal(t, "pending", appt.Status)
}

func TestLogoutClearsSession(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		response.Success(w, http.StatusOK, "Logged out successfully", nil)
	}))
	defer srv.Close()

	sess := &Session{}
	sess.Load(&dto.AuthResponse{ID: uuid.New(), Role: "admin", Token: "tok"})

	require.NoError(t, New(srv.URL, srv.Client()).Logout(context.Background(), sess))
	assert.True(t, called)
	assert.False(t, sess.Authenticated())
}
