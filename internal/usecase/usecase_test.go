package usecase

import (
	"context"
	"io"
	"testing"

	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB wires gorm over sqlmock so transaction boundaries can be
// asserted. Repository calls themselves go through fakes, so only Begin,
// Commit and Rollback expectations are needed.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Fakes implementing the repository interfaces. The *gorm.DB argument is
// ignored; state lives in the fake itself.

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*entity.Doctor
	stats   *entity.DoctorStats
	updated *entity.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: map[uuid.UUID]*entity.Doctor{}}
}

func (f *fakeDoctorRepo) Create(_ *gorm.DB, doctor *entity.Doctor) error {
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	return f.doctors[id], nil
}

func (f *fakeDoctorRepo) FindAll(_ *gorm.DB) ([]entity.Doctor, error) {
	result := make([]entity.Doctor, 0, len(f.doctors))
	for _, d := range f.doctors {
		result = append(result, *d)
	}
	return result, nil
}

func (f *fakeDoctorRepo) Update(_ *gorm.DB, doctor *entity.Doctor) error {
	f.updated = doctor
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) Stats(_ *gorm.DB, _ uuid.UUID) (*entity.DoctorStats, error) {
	if f.stats != nil {
		return f.stats, nil
	}
	return &entity.DoctorStats{}, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
	byDoctor []entity.Patient
	updated  *entity.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: map[uuid.UUID]*entity.Patient{}}
}

func (f *fakePatientRepo) Create(_ *gorm.DB, patient *entity.Patient) error {
	f.patients[patient.ID] = patient
	return nil
}

func (f *fakePatientRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return f.patients[id], nil
}

func (f *fakePatientRepo) Update(_ *gorm.DB, patient *entity.Patient) error {
	f.updated = patient
	f.patients[patient.ID] = patient
	return nil
}

func (f *fakePatientRepo) FindByDoctorID(_ *gorm.DB, _ uuid.UUID) ([]entity.Patient, error) {
	return f.byDoctor, nil
}

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
	byDoctor     []entity.Appointment
	byPatient    []entity.Appointment
	created      *entity.Appointment
	updated      *entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[uuid.UUID]*entity.Appointment{}}
}

func (f *fakeAppointmentRepo) Create(_ *gorm.DB, appointment *entity.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	f.created = appointment
	f.appointments[appointment.ID] = appointment
	return nil
}

func (f *fakeAppointmentRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return f.appointments[id], nil
}

func (f *fakeAppointmentRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return f.appointments[id], nil
}

func (f *fakeAppointmentRepo) Update(_ *gorm.DB, appointment *entity.Appointment) error {
	f.updated = appointment
	f.appointments[appointment.ID] = appointment
	return nil
}

func (f *fakeAppointmentRepo) FindByDoctorID(_ *gorm.DB, _ uuid.UUID) ([]entity.Appointment, error) {
	return f.byDoctor, nil
}

func (f *fakeAppointmentRepo) FindByPatientID(_ *gorm.DB, _ uuid.UUID) ([]entity.Appointment, error) {
	return f.byPatient, nil
}

type fakeDiagnosisRepo struct {
	created   *entity.Diagnosis
	byPatient []entity.Diagnosis
}

func (f *fakeDiagnosisRepo) Create(_ *gorm.DB, diagnosis *entity.Diagnosis) error {
	if diagnosis.ID == uuid.Nil {
		diagnosis.ID = uuid.New()
	}
	f.created = diagnosis
	return nil
}

func (f *fakeDiagnosisRepo) FindByPatientID(_ *gorm.DB, _ uuid.UUID) ([]entity.Diagnosis, error) {
	return f.byPatient, nil
}

type fakeMedicalHistoryRepo struct {
	histories map[uuid.UUID]*entity.MedicalHistory
	created   *entity.MedicalHistory
}

func newFakeMedicalHistoryRepo() *fakeMedicalHistoryRepo {
	return &fakeMedicalHistoryRepo{histories: map[uuid.UUID]*entity.MedicalHistory{}}
}

func (f *fakeMedicalHistoryRepo) FindByPatientID(_ *gorm.DB, patientID uuid.UUID) (*entity.MedicalHistory, error) {
	return f.histories[patientID], nil
}

func (f *fakeMedicalHistoryRepo) Create(_ *gorm.DB, history *entity.MedicalHistory) error {
	if history.ID == uuid.Nil {
		history.ID = uuid.New()
	}
	f.created = history
	f.histories[history.PatientID] = history
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ *gorm.DB, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByUsername(_ *gorm.DB, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ *gorm.DB, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeAuditLogRepo struct {
	logs []entity.AuditLog
}

func (f *fakeAuditLogRepo) Create(_ *gorm.DB, log *entity.AuditLog) error {
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeAuditLogRepo) FindAll(_ *gorm.DB) ([]entity.AuditLog, error) {
	return f.logs, nil
}

func (f *fakeAuditLogRepo) FindByID(_ *gorm.DB, id int64) (*entity.AuditLog, error) {
	for i := range f.logs {
		if f.logs[i].ID == id {
			return &f.logs[i], nil
		}
	}
	return nil, nil
}

// fakeAuditService records actions without touching storage
type fakeAuditService struct {
	actions []string
}

func (f *fakeAuditService) LogAction(_ context.Context, _ *gorm.DB, _ *uuid.UUID, action string, _ string, _ string, _, _ interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}
