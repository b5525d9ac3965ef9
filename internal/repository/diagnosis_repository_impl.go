package repository

import (
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"
	domainRepo "github.com/LemonMantis5571/historial-medico-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type diagnosisRepository struct{}

func NewDiagnosisRepository() domainRepo.DiagnosisRepository {
	return &diagnosisRepository{}
}

func (r *diagnosisRepository) Create(db *gorm.DB, diagnosis *entity.Diagnosis) error {
	return db.Create(diagnosis).Error
}

func (r *diagnosisRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Diagnosis, error) {
	var diagnoses []entity.Diagnosis
	err := db.Model(&entity.Diagnosis{}).
		Select("diagnoses.*").
		Joins("JOIN appointments ON appointments.id = diagnoses.appointment_id").
		Where("appointments.patient_id = ?", patientID).
		Order("diagnoses.diagnosis_date ASC, diagnoses.id ASC").
		Find(&diagnoses).Error
	if err != nil {
		return nil, err
	}
	return diagnoses, nil
}
