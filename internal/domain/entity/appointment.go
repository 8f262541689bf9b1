package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "pending"
	AppointmentStatusApproved AppointmentStatus = "approved"
	AppointmentStatusRejected AppointmentStatus = "rejected"
)

// ParseDecision accepts only the statuses a doctor may set.
func ParseDecision(status string) (AppointmentStatus, bool) {
	switch s := AppointmentStatus(status); s {
	case AppointmentStatusApproved, AppointmentStatusRejected:
		return s, true
	}
	return "", false
}

// Appointment is a patient's request to see a doctor. PatientID and DoctorID
// never change after creation; only the assigned doctor changes Status and DoctorNotes.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patientId"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctorId"`
	AppointmentDate time.Time         `gorm:"not null;index" json:"appointmentDate"`
	Reason          string            `gorm:"type:text;not null" json:"reason"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DoctorNotes     string            `gorm:"type:text;not null;default:''" json:"doctorNotes"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships, populated on read
	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsTerminal reports whether the appointment has already been decided.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusApproved || a.Status == AppointmentStatusRejected
}

// CanTransitionTo allows pending -> approved and pending -> rejected only.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if !a.IsPending() {
		return false
	}
	_, ok := ParseDecision(string(next))
	return ok
}

func (a *Appointment) IsAssignedTo(doctorID uuid.UUID) bool {
	return a.DoctorID == doctorID
}
