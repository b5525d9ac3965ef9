package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type UpdatePatientRequest struct {
	Name        *string `json:"name" validate:"omitempty"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty"` // Format: YYYY-MM-DD
	Gender      *string `json:"gender" validate:"omitempty"`
	Phone       *string `json:"phone" validate:"omitempty"`
}

// Response DTOs

type PatientResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth string    `json:"date_of_birth"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	Phone       string    `json:"phone"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
