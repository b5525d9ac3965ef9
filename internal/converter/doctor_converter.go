package converter

import (
	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/dto"
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO.
// Stats are optional; nil leaves the counters at zero.
func DoctorToResponse(doctor *entity.Doctor, stats *entity.DoctorStats) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:        doctor.ID,
		Name:      doctor.Name,
		Specialty: doctor.Specialty,
		Phone:     doctor.Phone,
	}

	if stats != nil {
		response.ActivePatients = stats.ActivePatients
		response.CompletedVisits = stats.CompletedVisits
	}

	return response
}
