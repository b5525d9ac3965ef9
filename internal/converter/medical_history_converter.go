package converter

import (
	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/dto"
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"
)

// MedicalHistoryToResponse builds the derived history view from the anchor
// row and the diagnoses recomputed for the patient.
func MedicalHistoryToResponse(history *entity.MedicalHistory, diagnoses []entity.Diagnosis) *dto.MedicalHistoryResponse {
	if history == nil {
		return nil
	}

	return &dto.MedicalHistoryResponse{
		ID:        history.ID,
		PatientID: history.PatientID,
		Diagnoses: DiagnosesToResponses(diagnoses),
		Total:     len(diagnoses),
		CreatedAt: history.CreatedAt,
	}
}
