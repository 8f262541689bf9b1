package usecase

import (
	"context"
	"strings"

	"healthcare-portal/internal/converter"
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AppointmentUsecase interface {
	// CreateAppointment books for patientID; any patient id in the request body is ignored.
	CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetPatientAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	// UpdateStatus lets the assigned doctor approve or reject a pending appointment.
	UpdateStatus(ctx context.Context, doctorID uuid.UUID, appointmentID string, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
}

func NewAppointmentUsecase(log *logrus.Logger, appointmentRepo repository.AppointmentRepository, userRepo repository.UserRepository) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	doctorID, err := uuid.Parse(strings.TrimSpace(req.DoctorID))
	if err != nil {
		return nil, ErrInvalidDoctor
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	if req.AppointmentDate.IsZero() {
		return nil, ErrAppointmentDateRequired
	}

	doctor, err := u.userRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil || doctor.Role != entity.RoleDoctor {
		return nil, ErrInvalidDoctor
	}

	appointment := &entity.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: req.AppointmentDate.UTC(),
		Reason:          reason,
		Status:          entity.AppointmentStatusPending,
		DoctorNotes:     "",
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetPatientAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToListResponse(appointments), nil
}

func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToListResponse(appointments), nil
}

func (u *appointmentUsecase) GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToListResponse(appointments), nil
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, doctorID uuid.UUID, appointmentID string, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	status, ok := entity.ParseDecision(req.Status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !appointment.IsAssignedTo(doctorID) {
		return nil, ErrAppointmentNotAssigned
	}
	if !appointment.CanTransitionTo(status) {
		return nil, ErrAppointmentAlreadyDecided
	}

	changed, err := u.appointmentRepo.Decide(ctx, id, doctorID, status, req.DoctorNotes)
	if err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}
	// another request decided it between the read and the update
	if !changed {
		return nil, ErrAppointmentAlreadyDecided
	}

	updated, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to reload appointment: %+v", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(updated), nil
}
