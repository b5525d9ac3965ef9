package repository

import (
	"errors"

	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"
	domainRepo "github.com/LemonMantis5571/historial-medico-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type medicalHistoryRepository struct{}

func NewMedicalHistoryRepository() domainRepo.MedicalHistoryRepository {
	return &medicalHistoryRepository{}
}

func (r *medicalHistoryRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.MedicalHistory, error) {
	var history entity.MedicalHistory
	err := db.Where("patient_id = ?", patientID).First(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &history, nil
}

// Create inserts the anchor row. Two first reads can race on the unique
// index over patient_id; ON CONFLICT DO NOTHING keeps the transaction alive
// and the loser adopts the row the winner inserted.
func (r *medicalHistoryRepository) Create(db *gorm.DB, history *entity.MedicalHistory) error {
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "patient_id"}},
		DoNothing: true,
	}).Create(history)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	existing, err := r.FindByPatientID(db, history.PatientID)
	if err != nil {
		return err
	}
	if existing != nil {
		*history = *existing
	}
	return nil
}
