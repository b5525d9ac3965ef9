package usecase

import (
	"context"
	"strings"

	"github.com/LemonMantis5571/historial-medico-api/internal/converter"
	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/dto"
	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/http/middleware"
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/repository"
	"github.com/LemonMantis5571/historial-medico-api/internal/service"
	"github.com/LemonMantis5571/historial-medico-api/pkg/apperr"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound       = apperr.NotFound("doctor not found")
	ErrDoctorNameEmpty      = apperr.Validation("doctor name cannot be empty")
	ErrDoctorSpecialtyEmpty = apperr.Validation("doctor specialty cannot be empty")
	ErrDoctorPhoneEmpty     = apperr.Validation("doctor phone cannot be empty")
)

type DoctorUsecase interface {
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	ListPatients(ctx context.Context, doctorID uuid.UUID) (*dto.PatientListResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, apperr.Storage(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	stats, err := u.doctorRepo.Stats(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to compute doctor stats: %+v", err)
		return nil, apperr.Storage(err)
	}

	return converter.DoctorToResponse(doctor, stats), nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, apperr.Storage(err)
	}

	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *converter.DoctorToResponse(&doctors[i], nil)
	}

	return &dto.DoctorListResponse{
		Doctors: responses,
		Total:   len(responses),
	}, nil
}

// UpdateDoctor performs a partial field merge. A required field supplied as
// an empty string is rejected; an omitted field keeps its current value.
func (u *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, apperr.Storage(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	oldValue := converter.DoctorToResponse(doctor, nil)

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrDoctorNameEmpty
		}
		doctor.Name = *req.Name
	}
	if req.Specialty != nil {
		if strings.TrimSpace(*req.Specialty) == "" {
			return nil, ErrDoctorSpecialtyEmpty
		}
		doctor.Specialty = *req.Specialty
	}
	if req.Phone != nil {
		if strings.TrimSpace(*req.Phone) == "" {
			return nil, ErrDoctorPhoneEmpty
		}
		doctor.Phone = *req.Phone
	}

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, apperr.Storage(err)
	}

	userID := auditActor(ctx)
	newValue := converter.DoctorToResponse(doctor, nil)
	if err := u.auditService.LogAction(ctx, tx, userID, entity.AuditActionDoctorUpdate, "doctor", doctor.ID.String(), oldValue, newValue); err != nil {
		return nil, apperr.Storage(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperr.Storage(err)
	}

	return newValue, nil
}

// ListPatients returns the doctor's patients ordered by their most recent
// non-cancelled appointment, newest first.
func (u *doctorUsecase) ListPatients(ctx context.Context, doctorID uuid.UUID) (*dto.PatientListResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, apperr.Storage(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patients, err := u.patientRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find patients for doctor %s: %+v", doctorID, err)
		return nil, apperr.Storage(err)
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

// auditActor resolves the acting user from the request context, if any
func auditActor(ctx context.Context) *uuid.UUID {
	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		return &userID
	}
	return nil
}
