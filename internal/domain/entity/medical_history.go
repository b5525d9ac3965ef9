package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalHistory anchors a patient's derived medical record. The row itself
// only carries identity and creation time; the diagnoses belonging to it are
// always recomputed from the patient's appointments on read.
type MedicalHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"patient_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (MedicalHistory) TableName() string {
	return "medical_histories"
}
