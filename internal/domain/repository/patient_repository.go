package repository

import (
	"github.com/LemonMantis5571/historial-medico-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	// FindByDoctorID returns patients with at least one non-cancelled
	// appointment with the doctor, most recent appointment first.
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Patient, error)
}
