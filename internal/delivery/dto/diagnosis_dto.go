package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDiagnosisRequest struct {
	PatientID     uuid.UUID `json:"patient_id" validate:"required"`
	AppointmentID uuid.UUID `json:"appointment_id" validate:"required"`
	Description   string    `json:"description" validate:"required"`
	Date          string    `json:"date" validate:"required"` // Format: YYYY-MM-DD
}

// Response DTOs

type DiagnosisResponse struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	Description   string    `json:"description"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
}
