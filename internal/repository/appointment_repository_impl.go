package repository

import (
	"context"
	"errors"

	"healthcare-portal/internal/domain/entity"
	domainRepo "healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// identityColumns keeps the password hash out of populated relations.
func identityColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "role")
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Omit("Patient", "Doctor").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", identityColumns).
		Preload("Doctor", identityColumns).
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor", identityColumns).
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", identityColumns).
		Where("doctor_id = ?", doctorID).
		Order("appointment_date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", identityColumns).
		Preload("Doctor", identityColumns).
		Order("appointment_date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// Decide is a conditional update on (id, doctor_id, status = pending).
// Affected rows: 1 = decided, 0 = already decided or not assigned.
func (r *appointmentRepository) Decide(ctx context.Context, id, doctorID uuid.UUID, status entity.AppointmentStatus, notes string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ? AND doctor_id = ? AND status = ?", id, doctorID, entity.AppointmentStatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"doctor_notes": notes,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
