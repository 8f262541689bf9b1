package converter

import (
	"encoding/json"
	"testing"
	"time"

	"healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserToResponse_OmitsPassword(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Name: "Dr John", Email: "doctor1@test.com", Password: "hash", Role: entity.RoleDoctor}

	raw, err := json.Marshal(UserToResponse(user))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.NotContains(t, string(raw), "password")
	assert.Contains(t, string(raw), `"role":"doctor"`)

	assert.Nil(t, UserToResponse(nil))
}

func TestUsersToListResponse_EmptyIsNotNull(t *testing.T) {
	raw, err := json.Marshal(UsersToListResponse(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[],"total":0}`, string(raw))
}

func TestAppointmentToResponse_Parties(t *testing.T) {
	patient := &entity.User{ID: uuid.New(), Name: "Patient One", Email: "patient@test.com", Password: "hash", Role: entity.RolePatient}
	appointment := &entity.Appointment{
		ID:              uuid.New(),
		PatientID:       patient.ID,
		DoctorID:        uuid.New(),
		AppointmentDate: time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC),
		Reason:          "checkup",
		Status:          entity.AppointmentStatusPending,
		Patient:         patient,
	}

	resp := AppointmentToResponse(appointment)
	require.NotNil(t, resp.Patient)
	assert.Nil(t, resp.Doctor)
	assert.Equal(t, "Patient One", resp.Patient.Name)
	assert.Equal(t, "pending", resp.Status)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.NotContains(t, string(raw), `"doctor":`)
	assert.Contains(t, string(raw), `"doctorNotes":""`)
}

func TestAppointmentsToListResponse(t *testing.T) {
	list := AppointmentsToListResponse([]entity.Appointment{{ID: uuid.New()}, {ID: uuid.New()}})
	assert.Equal(t, 2, list.Total)
	assert.Len(t, list.Appointments, 2)
}
