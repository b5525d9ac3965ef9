package usecase

import (
	"context"
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
	ErrAppointmentNotFound = apperr.NotFound("appointment not found")
	ErrInvalidTimeFormat   = apperr.Validation("invalid time format, use HH:MM")
	ErrInvalidStatus       = apperr.Validation("unknown appointment status")
	ErrStatusTransition    = apperr.Validation("status transition not allowed from a terminal state")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
	}
}

// CreateAppointment creates an appointment in Pendiente status after both
// foreign keys resolve. Double-booking is deliberately not checked.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointmentDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, apperr.Storage(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patient, err := u.patientRepo.FindByID(tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, apperr.Storage(err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointment := &entity.Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		AppointmentDate: appointmentDate,
		AppointmentTime: req.Time,
		Status:          entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, apperr.Storage(err)
	}

	response := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogAction(ctx, tx, auditActor(ctx), entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), nil, response); err != nil {
		return nil, apperr.Storage(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperr.Storage(err)
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, patient=%s", appointment.ID, req.DoctorID, req.PatientID)
	return response, nil
}

// UpdateAppointment mutates date, time, foreign keys and status. The row is
// locked for the duration of the transaction so concurrent writers
// serialize; the later arrival wins.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, apperr.Storage(err)
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	oldValue := converter.AppointmentToResponse(appointment)

	if req.Date != nil {
		appointmentDate, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		appointment.AppointmentDate = appointmentDate
	}
	if req.Time != nil {
		if _, err := time.Parse("15:04", *req.Time); err != nil {
			return nil, ErrInvalidTimeFormat
		}
		appointment.AppointmentTime = *req.Time
	}
	if req.DoctorID != nil && *req.DoctorID != appointment.DoctorID {
		doctor, err := u.doctorRepo.FindByID(tx, *req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return nil, apperr.Storage(err)
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		appointment.DoctorID = *req.DoctorID
	}
	if req.PatientID != nil && *req.PatientID != appointment.PatientID {
		patient, err := u.patientRepo.FindByID(tx, *req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return nil, apperr.Storage(err)
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		appointment.PatientID = *req.PatientID
	}
	if req.Status != nil {
		target := entity.AppointmentStatus(*req.Status)
		if !target.IsValid() {
			return nil, ErrInvalidStatus
		}
		if !appointment.Status.CanTransitionTo(target) {
			return nil, ErrStatusTransition
		}
		appointment.Status = target
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, apperr.Storage(err)
	}

	response := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogAction(ctx, tx, auditActor(ctx), entity.AuditActionAppointmentUpdate, "appointment", appointment.ID.String(), oldValue, response); err != nil {
		return nil, apperr.Storage(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperr.Storage(err)
	}

	return response, nil
}

// CancelAppointment sets the appointment to Cancelada. Cancelling an already
// cancelled appointment is a no-op; the record is never deleted.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, apperr.Storage(err)
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !appointment.Status.CanTransitionTo(entity.AppointmentStatusCancelled) {
		return nil, ErrStatusTransition
	}

	oldValue := converter.AppointmentToResponse(appointment)
	appointment.Status = entity.AppointmentStatusCancelled

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to cancel appointment: %+v", err)
		return nil, apperr.Storage(err)
	}

	response := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogAction(ctx, tx, auditActor(ctx), entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(), oldValue, response); err != nil {
		return nil, apperr.Storage(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperr.Storage(err)
	}

	u.log.Infof("Appointment cancelled: id=%s", appointmentID)
	return response, nil
}

// ListByDoctor returns all appointments for a doctor, cancelled included,
// ordered by date then time.
func (u *appointmentUsecase) ListByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, apperr.Storage(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, apperr.Storage(err)
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// ListByPatient returns all appointments for a patient, cancelled included,
// ordered by date then time.
func (u *appointmentUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, apperr.Storage(err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointments, err := u.appointmentRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, apperr.Storage(err)
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}
