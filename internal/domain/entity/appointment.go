package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pendiente"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmada"
	AppointmentStatusUrgent    AppointmentStatus = "Urgente"
	AppointmentStatusCancelled AppointmentStatus = "Cancelada"
	AppointmentStatusCompleted AppointmentStatus = "Completada"
)

// IsValid checks if the status is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusUrgent,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// IsTerminal checks if the status ends the appointment lifecycle.
// Cancelled and Completed appointments keep their status forever.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCancelled || s == AppointmentStatusCompleted
}

// CanTransitionTo reports whether a status change from s to target is allowed.
// Same-state transitions are always allowed (idempotent); any explicit
// transition out of a non-terminal state is allowed; terminal states admit
// no further transitions.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	if !target.IsValid() {
		return false
	}
	if s == target {
		return true
	}
	return !s.IsTerminal()
}

// Appointment represents a scheduled doctor-patient encounter
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:time;not null" json:"appointment_time"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'Pendiente';index" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor    Doctor      `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient   Patient     `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Diagnoses []Diagnosis `gorm:"foreignKey:AppointmentID" json:"diagnoses,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment is still waiting for confirmation
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsCompleted checks if the appointment has been completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}
