package repository

import (
	"testing"

	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestFindByIDForUpdateLocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "doctor_id", "patient_id", "appointment_time", "status"}).
		AddRow(id.String(), uuid.New().String(), uuid.New().String(), "09:00", "Pendiente")

	mock.ExpectQuery(`SELECT .* FROM "appointments" WHERE id = .* FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(rows)

	appointment, err := repo.FindByIDForUpdate(db, id)

	require.NoError(t, err)
	require.NotNil(t, appointment)
	assert.Equal(t, entity.AppointmentStatusPending, appointment.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDForUpdateMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	id := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "appointments" WHERE id = .* FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	appointment, err := repo.FindByIDForUpdate(db, id)

	require.NoError(t, err, "missing rows are reported as nil, not as an error")
	assert.Nil(t, appointment)
}

func TestFindByDoctorIDOrdersByDateThenTime(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	doctorID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "appointments" WHERE doctor_id = .* ORDER BY appointment_date ASC, appointment_time ASC`).
		WithArgs(doctorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "appointment_time", "status"}).
			AddRow(uuid.New().String(), doctorID.String(), "09:00", "Confirmada").
			AddRow(uuid.New().String(), doctorID.String(), "10:30", "Cancelada"))

	appointments, err := repo.FindByDoctorID(db, doctorID)

	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, entity.AppointmentStatusCancelled, appointments[1].Status, "cancelled appointments stay in the list")
}
