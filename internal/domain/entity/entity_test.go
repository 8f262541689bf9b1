package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseDecision(t *testing.T) {
	status, ok := ParseDecision("approved")
	assert.True(t, ok)
	assert.Equal(t, AppointmentStatusApproved, status)

	status, ok = ParseDecision("rejected")
	assert.True(t, ok)
	assert.Equal(t, AppointmentStatusRejected, status)

	for _, raw := range []string{"pending", "APPROVED", "", "cancelled"} {
		_, ok := ParseDecision(raw)
		assert.False(t, ok, raw)
	}
}

func TestAppointment_CanTransitionTo(t *testing.T) {
	pending := &Appointment{Status: AppointmentStatusPending}
	assert.True(t, pending.CanTransitionTo(AppointmentStatusApproved))
	assert.True(t, pending.CanTransitionTo(AppointmentStatusRejected))
	assert.False(t, pending.CanTransitionTo(AppointmentStatusPending))

	for _, terminal := range []AppointmentStatus{AppointmentStatusApproved, AppointmentStatusRejected} {
		appt := &Appointment{Status: terminal}
		assert.True(t, appt.IsTerminal())
		assert.False(t, appt.CanTransitionTo(AppointmentStatusApproved))
		assert.False(t, appt.CanTransitionTo(AppointmentStatusRejected))
	}
}

func TestAppointment_IsAssignedTo(t *testing.T) {
	doctorID := uuid.New()
	appt := &Appointment{DoctorID: doctorID}

	assert.True(t, appt.IsAssignedTo(doctorID))
	assert.False(t, appt.IsAssignedTo(uuid.New()))
	assert.False(t, appt.IsAssignedTo(uuid.Nil))
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleDoctor.IsValid())
	assert.True(t, RolePatient.IsValid())
	assert.False(t, Role("nurse").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}
