package usecase

import (
	"context"
	"testing"

	"github.com/LemonMantis5571/historial-medico-api/config"
	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/dto"
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDiagnosis(t *testing.T) {
	patientID := uuid.New()
	appointmentID := uuid.New()

	newAppointment := func(status entity.AppointmentStatus) *entity.Appointment {
		return &entity.Appointment{
			ID:        appointmentID,
			DoctorID:  uuid.New(),
			PatientID: patientID,
			Status:    status,
		}
	}

	defaultPolicy := config.PolicyConfig{DiagnosisOnCancelled: true}

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		appointmentRepo := newFakeAppointmentRepo()
		appointmentRepo.appointments[appointmentID] = newAppointment(entity.AppointmentStatusCompleted)
		diagnosisRepo := &fakeDiagnosisRepo{}
		audit := &fakeAuditService{}
		u := NewDiagnosisUsecase(db, newTestLogger(), defaultPolicy, diagnosisRepo, appointmentRepo, audit)

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := u.CreateDiagnosis(context.Background(), &dto.CreateDiagnosisRequest{
			PatientID:     patientID,
			AppointmentID: appointmentID,
			Description:   "Hipertension arterial leve",
			Date:          "2026-08-20",
		})

		require.NoError(t, err)
		assert.Equal(t, appointmentID, resp.AppointmentID)
		assert.Equal(t, "Hipertension arterial leve", resp.Description)
		assert.Equal(t, "2026-08-20", resp.Date)
		require.NotNil(t, diagnosisRepo.created)
		assert.Equal(t, []string{entity.AuditActionDiagnosisCreate}, audit.actions)
	})

	t.Run("description trimmed before storing", func(t *testing.T) {
		db, mock := newTestDB(t)
		appointmentRepo := newFakeAppointmentRepo()
		appointmentRepo.appointments[appointmentID] = newAppointment(entity.AppointmentStatusConfirmed)
		diagnosisRepo := &fakeDiagnosisRepo{}
		u := NewDiagnosisUsecase(db, newTestLogger(), defaultPolicy, diagnosisRepo, appointmentRepo, &fakeAuditService{})

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := u.CreateDiagnosis(context.Background(), &dto.CreateDiagnosisRequest{
			PatientID:     patientID,
			AppointmentID: appointmentID,
			Description:   "  Gripe estacional  ",
			Date:          "2026-08-20",
		})

		require.NoError(t, err)
		assert.Equal(t, "Gripe estacional", resp.Description)
	})

	t.Run("blank description rejected", func(t *testing.T) {
		db, _ := newTestDB(t)
		u := NewDiagnosisUsecase(db, newTestLogger(), defaultPolicy, &fakeDiagnosisRepo{}, newFakeAppointmentRepo(), &fakeAuditService{})

		_, err := u.CreateDiagnosis(context.Background(), &dto.CreateDiagnosisRequest{
			PatientID:     patientID,
			AppointmentID: appointmentID,
			Description:   "   ",
			Date:          "2026-08-20",
		})

		assert.ErrorIs(t, err, ErrDiagnosisDescriptionEmpty)
	})

	t.Run("invalid date rejected", func(t *testing.T) {
		db, _ := newTestDB(t)
		u := NewDiagnosisUsecase(db, newTestLogger(), defaultPolicy, &fakeDiagnosisRepo{}, newFakeAppointmentRepo(), &fakeAuditService{})

		_, err := u.CreateDiagnosis(context.Background(), &dto.CreateDiagnosisRequest{
			PatientID:     patientID,
			AppointmentID: appointmentID,
			Description:   "Gripe",
			Date:          "20-08-2026",
		})

		assert.ErrorIs(t, err, ErrInvalidDateFormat)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		db, mock := newTestDB(t)
		u := NewDiagnosisUsecase(db, newTestLogger(), defaultPolicy, &fakeDiagnosisRepo{}, newFakeAppointmentRepo(), &fakeAuditService{})

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := u.CreateDiagnosis(context.Background(), &dto.CreateDiagnosisRequest{
			PatientID:     patientID,
			AppointmentID: appointmentID,
			Description:   "Gripe",
			Date:          "2026-08-20",
		})

		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("appointment of another patient rejected", func(t *testing.T) {
		db, mock := newTestDB(t)
		appointmentRepo := newFakeAppointmentRepo()
		appointmentRepo.appointments[appointmentID] = newAppointment(entity.AppointmentStatusConfirmed)
		u := NewDiagnosisUsecase(db, newTestLogger(), defaultPolicy, &fakeDiagnosisRepo{}, appointmentRepo, &fakeAuditService{})

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := u.CreateDiagnosis(context.Background(), &dto.CreateDiagnosisRequest{
			PatientID:     uuid.New(),
			AppointmentID: appointmentID,
			Description:   "Gripe",
			Date:          "2026-08-20",
		})

		assert.ErrorIs(t, err, ErrDiagnosisPatientMismatch)
	})

	t.Run("cancelled appointment allowed by default policy", func(t *testing.T) {
		db, mock := newTestDB(t)
		appointmentRepo := newFakeAppointmentRepo()
		appointmentRepo.appointments[appointmentID] = newAppointment(entity.AppointmentStatusCancelled)
		u := NewDiagnosisUsecase(db, newTestLogger(), defaultPolicy, &fakeDiagnosisRepo{}, appointmentRepo, &fakeAuditService{})

		mock.ExpectBegin()
		mock.ExpectCommit()

		_, err := u.CreateDiagnosis(context.Background(), &dto.CreateDiagnosisRequest{
			PatientID:     patientID,
			AppointmentID: appointmentID,
			Description:   "Nota retroactiva",
			Date:          "2026-08-20",
		})

		assert.NoError(t, err)
	})

	t.Run("cancelled appointment refused when policy disabled", func(t *testing.T) {
		db, mock := newTestDB(t)
		appointmentRepo := newFakeAppointmentRepo()
		appointmentRepo.appointments[appointmentID] = newAppointment(entity.AppointmentStatusCancelled)
		policy := config.PolicyConfig{DiagnosisOnCancelled: false}
		u := NewDiagnosisUsecase(db, newTestLogger(), policy, &fakeDiagnosisRepo{}, appointmentRepo, &fakeAuditService{})

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := u.CreateDiagnosis(context.Background(), &dto.CreateDiagnosisRequest{
			PatientID:     patientID,
			AppointmentID: appointmentID,
			Description:   "Nota retroactiva",
			Date:          "2026-08-20",
		})

		assert.ErrorIs(t, err, ErrDiagnosisOnCancelled)
	})
}
