package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role name constants
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// User represents a login account. A user may be linked to a doctor or a
// patient record in the identity registry depending on its role.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username  string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Password  string     `gorm:"type:text;not null" json:"-"`
	Role      string     `gorm:"type:varchar(20);not null;index" json:"role"`
	DoctorID  *uuid.UUID `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	PatientID *uuid.UUID `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	IsActive  bool       `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (User) TableName() string {
	return "users"
}
