package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor represents a doctor record in the identity registry
type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Specialty string    `gorm:"type:varchar(100);not null;index" json:"specialty"`
	Phone     string    `gorm:"type:varchar(20);not null" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DoctorStats holds derived counters for a doctor.
// Computed from appointments on read, never stored.
type DoctorStats struct {
	ActivePatients  int64
	CompletedVisits int64
}
