package repository

import (
	"errors"

	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"
	domainRepo "github.com/LemonMantis5571/historial-medico-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Order("name ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Save(doctor).Error
}

// Stats derives per-doctor counters from the appointments table.
// Active patients: distinct patients with at least one non-cancelled
// appointment. Completed visits: completed appointments.
func (r *doctorRepository) Stats(db *gorm.DB, id uuid.UUID) (*entity.DoctorStats, error) {
	var stats entity.DoctorStats

	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND status != ?", id, entity.AppointmentStatusCancelled).
		Distinct("patient_id").
		Count(&stats.ActivePatients).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND status = ?", id, entity.AppointmentStatusCompleted).
		Count(&stats.CompletedVisits).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
