package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

// UpdateDoctorRequest carries a partial field merge. Pointer fields
// distinguish "not supplied" from "supplied empty": an explicit empty value
// on a required field is rejected.
type UpdateDoctorRequest struct {
	Name      *string `json:"name" validate:"omitempty"`
	Specialty *string `json:"specialty" validate:"omitempty"`
	Phone     *string `json:"phone" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Specialty       string    `json:"specialty"`
	Phone           string    `json:"phone"`
	ActivePatients  int64     `json:"active_patients"`
	CompletedVisits int64     `json:"completed_visits"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
