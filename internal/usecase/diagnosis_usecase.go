package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/LemonMantis5571/historial-medico-api/config"
	"github.com/LemonMantis5571/historial-medico-api/internal/converter"
	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/dto"
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/repository"
	"github.com/LemonMantis5571/historial-medico-api/internal/service"
	"github.com/LemonMantis5571/historial-medico-api/pkg/apperr"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDiagnosisPatientMismatch  = apperr.Validation("appointment does not belong to patient")
	ErrDiagnosisDescriptionEmpty = apperr.Validation("diagnosis description cannot be empty")
	ErrDiagnosisOnCancelled      = apperr.Validation("diagnosis cannot be linked to a cancelled appointment")
)

type DiagnosisUsecase interface {
	CreateDiagnosis(ctx context.Context, req *dto.CreateDiagnosisRequest) (*dto.DiagnosisResponse, error)
}

type diagnosisUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	policy          config.PolicyConfig
	diagnosisRepo   repository.DiagnosisRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewDiagnosisUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	policy config.PolicyConfig,
	diagnosisRepo repository.DiagnosisRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) DiagnosisUsecase {
	return &diagnosisUsecase{
		db:              db,
		log:             log,
		policy:          policy,
		diagnosisRepo:   diagnosisRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// CreateDiagnosis links a new diagnosis to an appointment of the same
// patient. The appointment row stays locked from validation through insert,
// so it cannot be reassigned to another patient in between.
func (u *diagnosisUsecase) CreateDiagnosis(ctx context.Context, req *dto.CreateDiagnosisRequest) (*dto.DiagnosisResponse, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDiagnosisDescriptionEmpty
	}

	diagnosisDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, apperr.Storage(err)
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if appointment.PatientID != req.PatientID {
		return nil, ErrDiagnosisPatientMismatch
	}

	if appointment.IsCancelled() && !u.policy.DiagnosisOnCancelled {
		return nil, ErrDiagnosisOnCancelled
	}

	diagnosis := &entity.Diagnosis{
		AppointmentID: appointment.ID,
		Description:   description,
		DiagnosisDate: diagnosisDate,
	}

	if err := u.diagnosisRepo.Create(tx, diagnosis); err != nil {
		u.log.Warnf("Failed to create diagnosis: %+v", err)
		return nil, apperr.Storage(err)
	}

	response := converter.DiagnosisToResponse(diagnosis)
	if err := u.auditService.LogAction(ctx, tx, auditActor(ctx), entity.AuditActionDiagnosisCreate, "diagnosis", diagnosis.ID.String(), nil, response); err != nil {
		return nil, apperr.Storage(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperr.Storage(err)
	}

	u.log.Infof("Diagnosis created: id=%s, appointment=%s, patient=%s", diagnosis.ID, appointment.ID, req.PatientID)
	return response, nil
}
