package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidAppointmentDate = errors.New("appointmentDate must be a date or date-time")

// Accepted appointment date layouts, tried in order. Values without a zone are read as UTC.
var appointmentDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID        string    `json:"doctorId" validate:"required,uuid"`
	AppointmentDate time.Time `json:"appointmentDate"`
	Reason          string    `json:"reason" validate:"required"`
}

// UnmarshalJSON reads the canonical appointmentDate field and falls back to the
// legacy date field when it is absent or empty.
func (r *CreateAppointmentRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		DoctorID        string `json:"doctorId"`
		AppointmentDate string `json:"appointmentDate"`
		Date            string `json:"date"`
		Reason          string `json:"reason"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.DoctorID = strings.TrimSpace(raw.DoctorID)
	r.Reason = strings.TrimSpace(raw.Reason)
	r.AppointmentDate = time.Time{}

	value := strings.TrimSpace(raw.AppointmentDate)
	if value == "" {
		value = strings.TrimSpace(raw.Date)
	}
	if value == "" {
		return nil
	}

	date, err := ParseAppointmentDate(value)
	if err != nil {
		return err
	}
	r.AppointmentDate = date
	return nil
}

func ParseAppointmentDate(value string) (time.Time, error) {
	for _, layout := range appointmentDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidAppointmentDate
}

type UpdateAppointmentStatusRequest struct {
	Status      string `json:"status" validate:"required,oneof=approved rejected"`
	DoctorNotes string `json:"doctorNotes"`
}

// Response DTOs

// PartyResponse is the public identity of an appointment's patient or doctor.
type PartyResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type AppointmentResponse struct {
	ID              uuid.UUID      `json:"id"`
	PatientID       uuid.UUID      `json:"patientId"`
	DoctorID        uuid.UUID      `json:"doctorId"`
	AppointmentDate time.Time      `json:"appointmentDate"`
	Reason          string         `json:"reason"`
	Status          string         `json:"status"`
	DoctorNotes     string         `json:"doctorNotes"`
	Patient         *PartyResponse `json:"patient,omitempty"`
	Doctor          *PartyResponse `json:"doctor,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
