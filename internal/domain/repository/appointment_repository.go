package repository

import (
	"context"

	"healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentRepository persists appointments. Populated identities carry
// id, name, email and role only. Lists order by appointment date, newest first.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	// FindByID populates both Patient and Doctor.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	// FindByPatientID populates Doctor.
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error)
	// FindByDoctorID populates Patient.
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error)
	// FindAll populates both Patient and Doctor.
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	// Decide sets status and notes only if the appointment is still pending
	// and assigned to doctorID. It reports whether a record was changed.
	Decide(ctx context.Context, id, doctorID uuid.UUID, status entity.AppointmentStatus, notes string) (bool, error)
}
