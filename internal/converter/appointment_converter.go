package converter

import (
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
)

func partyToResponse(user *entity.User) *dto.PartyResponse {
	if user == nil {
		return nil
	}
	return &dto.PartyResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Patient and Doctor are included only when they were populated by the store.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		AppointmentDate: appointment.AppointmentDate.UTC(),
		Reason:          appointment.Reason,
		Status:          string(appointment.Status),
		DoctorNotes:     appointment.DoctorNotes,
		Patient:         partyToResponse(appointment.Patient),
		Doctor:          partyToResponse(appointment.Doctor),
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}
}

func AppointmentsToListResponse(appointments []entity.Appointment) *dto.AppointmentListResponse {
	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, *AppointmentToResponse(&appointments[i]))
	}

	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}
}
