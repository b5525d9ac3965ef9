package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/LemonMantis5571/historial-medico-api/internal/converter"
	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/dto"
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/repository"
	"github.com/LemonMantis5571/historial-medico-api/internal/service"
	"github.com/LemonMantis5571/historial-medico-api/pkg/apperr"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound    = apperr.NotFound("patient not found")
	ErrPatientNameEmpty   = apperr.Validation("patient name cannot be empty")
	ErrPatientGenderEmpty = apperr.Validation("patient gender cannot be empty")
	ErrPatientPhoneEmpty  = apperr.Validation("patient phone cannot be empty")
	ErrInvalidDateFormat  = apperr.Validation("invalid date format, use YYYY-MM-DD")
)

type PatientUsecase interface {
	GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, apperr.Storage(err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

// UpdatePatient performs a partial field merge. A required field supplied as
// an empty string is rejected; an omitted field keeps its current value.
func (u *patientUsecase) UpdatePatient(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
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

	oldValue := converter.PatientToResponse(patient)

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrPatientNameEmpty
		}
		patient.Name = *req.Name
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		patient.DateOfBirth = dob
	}
	if req.Gender != nil {
		if strings.TrimSpace(*req.Gender) == "" {
			return nil, ErrPatientGenderEmpty
		}
		patient.Gender = *req.Gender
	}
	if req.Phone != nil {
		if strings.TrimSpace(*req.Phone) == "" {
			return nil, ErrPatientPhoneEmpty
		}
		patient.Phone = *req.Phone
	}

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, apperr.Storage(err)
	}

	userID := auditActor(ctx)
	newValue := converter.PatientToResponse(patient)
	if err := u.auditService.LogAction(ctx, tx, userID, entity.AuditActionPatientUpdate, "patient", patient.ID.String(), oldValue, newValue); err != nil {
		return nil, apperr.Storage(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperr.Storage(err)
	}

	return newValue, nil
}
