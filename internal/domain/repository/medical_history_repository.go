package repository

import (
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalHistoryRepository interface {
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.MedicalHistory, error)
	Create(db *gorm.DB, history *entity.MedicalHistory) error
}
