package repository

import (
	"errors"

	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"
	domainRepo "github.com/LemonMantis5571/historial-medico-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Save(patient).Error
}

func (r *patientRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Model(&entity.Patient{}).
		Select("patients.*").
		Joins("JOIN appointments ON appointments.patient_id = patients.id").
		Where("appointments.doctor_id = ? AND appointments.status != ?", doctorID, entity.AppointmentStatusCancelled).
		Group("patients.id").
		Order("MAX(appointments.appointment_date) DESC NULLS LAST, patients.id ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}
