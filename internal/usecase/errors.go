package usecase

import "healthcare-portal/pkg/apperror"

var (
	ErrEmailAlreadyExists = apperror.New(apperror.ErrConflict, "Email already exists")
	ErrInvalidCredentials = apperror.New(apperror.ErrUnauthenticated, "Invalid credentials")
	ErrNotAuthorized      = apperror.New(apperror.ErrUnauthenticated, "Not authorized")
	ErrUserNotFound       = apperror.New(apperror.ErrNotFound, "User not found")
	ErrInvalidRole        = apperror.New(apperror.ErrValidation, "Role must be doctor or patient")

	ErrAppointmentNotFound       = apperror.New(apperror.ErrNotFound, "Appointment not found")
	ErrAppointmentNotAssigned    = apperror.New(apperror.ErrForbidden, "Forbidden")
	ErrAppointmentAlreadyDecided = apperror.New(apperror.ErrConflict, "Appointment has already been decided")
	ErrInvalidStatus             = apperror.New(apperror.ErrValidation, "Invalid status")
	ErrInvalidDoctor             = apperror.New(apperror.ErrValidation, "doctorId must reference a doctor")
	ErrAppointmentDateRequired   = apperror.New(apperror.ErrValidation, "appointmentDate is required")
	ErrReasonRequired            = apperror.New(apperror.ErrValidation, "reason is required")
)
