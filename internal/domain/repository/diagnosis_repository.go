package repository

import (
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DiagnosisRepository interface {
	Create(db *gorm.DB, diagnosis *entity.Diagnosis) error
	// FindByPatientID returns every diagnosis reachable through the
	// patient's appointments, ordered by diagnosis date then id.
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Diagnosis, error)
}
