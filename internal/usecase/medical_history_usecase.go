package usecase

import (
	"context"

	"github.com/LemonMantis5571/historial-medico-api/internal/converter"
	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/dto"
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/repository"
	"github.com/LemonMantis5571/historial-medico-api/pkg/apperr"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MedicalHistoryUsecase interface {
	GetHistoryForPatient(ctx context.Context, patientID uuid.UUID) (*dto.MedicalHistoryResponse, error)
}

type medicalHistoryUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	patientRepo   repository.PatientRepository
	historyRepo   repository.MedicalHistoryRepository
	diagnosisRepo repository.DiagnosisRepository
}

func NewMedicalHistoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	historyRepo repository.MedicalHistoryRepository,
	diagnosisRepo repository.DiagnosisRepository,
) MedicalHistoryUsecase {
	return &medicalHistoryUsecase{
		db:            db,
		log:           log,
		patientRepo:   patientRepo,
		historyRepo:   historyRepo,
		diagnosisRepo: diagnosisRepo,
	}
}

// GetHistoryForPatient recomputes the patient's medical record from current
// appointment and diagnosis state. An unknown patient is an error; a known
// patient with no diagnoses gets an empty record. The anchor row is created
// lazily on first read.
func (u *medicalHistoryUsecase) GetHistoryForPatient(ctx context.Context, patientID uuid.UUID) (*dto.MedicalHistoryResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, apperr.Storage(err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	history, err := u.historyRepo.FindByPatientID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find medical history: %+v", err)
		return nil, apperr.Storage(err)
	}
	if history == nil {
		history = &entity.MedicalHistory{PatientID: patientID}
		if err := u.historyRepo.Create(tx, history); err != nil {
			u.log.Warnf("Failed to create medical history: %+v", err)
			return nil, apperr.Storage(err)
		}
	}

	diagnoses, err := u.diagnosisRepo.FindByPatientID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find diagnoses for patient %s: %+v", patientID, err)
		return nil, apperr.Storage(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperr.Storage(err)
	}

	return converter.MedicalHistoryToResponse(history, diagnoses), nil
}
