package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	Date      string    `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Time      string    `json:"time" validate:"required"` // Format: HH:MM
}

type UpdateAppointmentRequest struct {
	DoctorID  *uuid.UUID `json:"doctor_id" validate:"omitempty"`
	PatientID *uuid.UUID `json:"patient_id" validate:"omitempty"`
	Date      *string    `json:"date" validate:"omitempty"`
	Time      *string    `json:"time" validate:"omitempty"`
	Status    *string    `json:"status" validate:"omitempty"`
}

// CancelAppointmentRequest requires the caller to confirm the cancellation
// explicitly; the gateway refuses to cancel without it.
type CancelAppointmentRequest struct {
	Confirm bool `json:"confirm"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        uuid.UUID        `json:"id"`
	DoctorID  uuid.UUID        `json:"doctor_id"`
	PatientID uuid.UUID        `json:"patient_id"`
	Date      string           `json:"date"`
	Time      string           `json:"time"`
	Status    string           `json:"status"`
	Doctor    *DoctorResponse  `json:"doctor,omitempty"`
	Patient   *PatientResponse `json:"patient,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
