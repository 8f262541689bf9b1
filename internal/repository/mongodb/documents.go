package mongodb

import (
	"time"

	"healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
)

const (
	UsersCollection        = "users"
	AppointmentsCollection = "appointments"
)

type userDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password,omitempty"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type appointmentDocument struct {
	ID              string    `bson:"_id"`
	PatientID       string    `bson:"patientId"`
	DoctorID        string    `bson:"doctorId"`
	AppointmentDate time.Time `bson:"appointmentDate"`
	Reason          string    `bson:"reason"`
	Status          string    `bson:"status"`
	DoctorNotes     string    `bson:"doctorNotes"`
	CreatedAt       time.Time `bson:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}

func toUserDocument(u *entity.User) userDocument {
	return userDocument{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDocument) toEntity() (*entity.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		ID:        id,
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		Role:      entity.Role(d.Role),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func toAppointmentDocument(a *entity.Appointment) appointmentDocument {
	return appointmentDocument{
		ID:              a.ID.String(),
		PatientID:       a.PatientID.String(),
		DoctorID:        a.DoctorID.String(),
		AppointmentDate: a.AppointmentDate,
		Reason:          a.Reason,
		Status:          string(a.Status),
		DoctorNotes:     a.DoctorNotes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (d appointmentDocument) toEntity() (*entity.Appointment, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	patientID, err := uuid.Parse(d.PatientID)
	if err != nil {
		return nil, err
	}
	doctorID, err := uuid.Parse(d.DoctorID)
	if err != nil {
		return nil, err
	}
	return &entity.Appointment{
		ID:              id,
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: d.AppointmentDate,
		Reason:          d.Reason,
		Status:          entity.AppointmentStatus(d.Status),
		DoctorNotes:     d.DoctorNotes,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

// stamp fills the audit timestamps the way gorm's autoCreateTime does.
func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = now
	}
}
