package entity

import (
	"time"

	"github.com/google/uuid"
)

// Diagnosis represents a clinical note permanently linked to one appointment.
// Diagnoses are append-only: there is no update or delete path.
type Diagnosis struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	DiagnosisDate time.Time `gorm:"type:date;not null;index" json:"diagnosis_date"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (Diagnosis) TableName() string {
	return "diagnoses"
}
