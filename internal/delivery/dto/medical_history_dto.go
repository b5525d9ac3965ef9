package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response DTOs

type MedicalHistoryResponse struct {
	ID        uuid.UUID           `json:"id"`
	PatientID uuid.UUID           `json:"patient_id"`
	Diagnoses []DiagnosisResponse `json:"diagnoses"`
	Total     int                 `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
}
