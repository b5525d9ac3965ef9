package converter

import (
	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/dto"
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"
)

// DiagnosisToResponse converts a Diagnosis entity to DiagnosisResponse DTO
func DiagnosisToResponse(diagnosis *entity.Diagnosis) *dto.DiagnosisResponse {
	if diagnosis == nil {
		return nil
	}

	return &dto.DiagnosisResponse{
		ID:            diagnosis.ID,
		AppointmentID: diagnosis.AppointmentID,
		Description:   diagnosis.Description,
		Date:          diagnosis.DiagnosisDate.Format("2006-01-02"),
		CreatedAt:     diagnosis.CreatedAt,
	}
}

// DiagnosesToResponses converts a slice of Diagnosis entities to DTOs
func DiagnosesToResponses(diagnoses []entity.Diagnosis) []dto.DiagnosisResponse {
	responses := make([]dto.DiagnosisResponse, len(diagnoses))
	for i := range diagnoses {
		responses[i] = *DiagnosisToResponse(&diagnoses[i])
	}
	return responses
}
