// Package client is a typed HTTP client for the healthcare portal API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"healthcare-portal/internal/delivery/dto"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// ErrNotSignedIn is returned by authenticated calls made with a signed-out session.
var ErrNotSignedIn = errors.New("client: session is not signed in")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Details json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for baseURL. "/api" is appended when missing.
// A nil httpClient gets a default with a 30s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: base, httpClient: httpClient}
}

func (c *Client) do(ctx context.Context, method, path string, sess *Session, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Message, Details: env.Error}
		if decodeErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func (c *Client) authed(ctx context.Context, method, path string, sess *Session, body, out any) error {
	if !sess.Authenticated() {
		return ErrNotSignedIn
	}
	err := c.do(ctx, method, path, sess, body, out)

	// A rejected token will never be accepted again.
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		sess.Clear()
	}
	return err
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// Register creates a patient or doctor account and signs sess in.
func (c *Client) Register(ctx context.Context, sess *Session, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	var auth dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &auth); err != nil {
		return nil, err
	}
	sess.Load(&auth)
	return &auth, nil
}

// Login signs sess in.
func (c *Client) Login(ctx context.Context, sess *Session, email, password string) (*dto.AuthResponse, error) {
	var auth dto.AuthResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &auth); err != nil {
		return nil, err
	}
	sess.Load(&auth)
	return &auth, nil
}

// Logout revokes the session's token on the server. The session is cleared
// even when the server call fails.
func (c *Client) Logout(ctx context.Context, sess *Session) error {
	if !sess.Authenticated() {
		return ErrNotSignedIn
	}
	defer sess.Clear()
	return c.do(ctx, http.MethodPost, "/auth/logout", sess, nil, nil)
}

func (c *Client) Me(ctx context.Context, sess *Session) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := c.authed(ctx, http.MethodGet, "/auth/me", sess, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account (admin).
func (c *Client) ListUsers(ctx context.Context, sess *Session) (*dto.UserListResponse, error) {
	var list dto.UserListResponse
	if err := c.authed(ctx, http.MethodGet, "/users", sess, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListDoctors returns the doctor directory (any signed-in role).
func (c *Client) ListDoctors(ctx context.Context, sess *Session) (*dto.UserListResponse, error) {
	var list dto.UserListResponse
	if err := c.authed(ctx, http.MethodGet, "/users/doctors", sess, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateUser creates a doctor or patient account (admin).
func (c *Client) CreateUser(ctx context.Context, sess *Session, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := c.authed(ctx, http.MethodPost, "/users", sess, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateAppointment books an appointment for the signed-in patient.
func (c *Client) CreateAppointment(ctx context.Context, sess *Session, doctorID uuid.UUID, date time.Time, reason string) (*dto.AppointmentResponse, error) {
	req := struct {
		DoctorID        uuid.UUID `json:"doctorId"`
		AppointmentDate time.Time `json:"appointmentDate"`
		Reason          string    `json:"reason"`
	}{doctorID, date.UTC(), reason}

	var appointment dto.AppointmentResponse
	if err := c.authed(ctx, http.MethodPost, "/appointments", sess, req, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// MyAppointments lists the signed-in patient's appointments.
func (c *Client) MyAppointments(ctx context.Context, sess *Session) (*dto.AppointmentListResponse, error) {
	return c.listAppointments(ctx, sess, "/appointments/my")
}

// DoctorAppointments lists appointments assigned to the signed-in doctor.
func (c *Client) DoctorAppointments(ctx context.Context, sess *Session) (*dto.AppointmentListResponse, error) {
	return c.listAppointments(ctx, sess, "/appointments/doctor")
}

// AllAppointments lists every appointment (admin).
func (c *Client) AllAppointments(ctx context.Context, sess *Session) (*dto.AppointmentListResponse, error) {
	return c.listAppointments(ctx, sess, "/appointments")
}

func (c *Client) listAppointments(ctx context.Context, sess *Session, path string) (*dto.AppointmentListResponse, error) {
	var list dto.AppointmentListResponse
	if err := c.authed(ctx, http.MethodGet, path, sess, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DecideAppointment approves or rejects a pending appointment as its doctor.
func (c *Client) DecideAppointment(ctx context.Context, sess *Session, id uuid.UUID, status, notes string) (*dto.AppointmentResponse, error) {
	req := dto.UpdateAppointmentStatusRequest{Status: status, DoctorNotes: notes}

	var appointment dto.AppointmentResponse
	if err := c.authed(ctx, http.MethodPut, "/appointments/"+id.String()+"/status", sess, req, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}
