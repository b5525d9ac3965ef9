package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name   string `validate:"required,min=3,max=10"`
	Status string `validate:"required,oneof=Pendiente Confirmada"`
	Email  string `validate:"omitempty,email"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	err := v.Validate(sampleRequest{Name: "Ana", Status: "Pendiente"})
	assert.NoError(t, err)

	err = v.Validate(sampleRequest{Status: "Pendiente"})
	assert.Error(t, err)
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		request sampleRequest
		field   string
		message string
	}{
		{
			name:    "required",
			request: sampleRequest{Status: "Pendiente"},
			field:   "Name",
			message: "Name is required",
		},
		{
			name:    "min",
			request: sampleRequest{Name: "Al", Status: "Pendiente"},
			field:   "Name",
			message: "Name must be at least 3 characters",
		},
		{
			name:    "max",
			request: sampleRequest{Name: "Ana Lucia Ferreira", Status: "Pendiente"},
			field:   "Name",
			message: "Name must be at most 10 characters",
		},
		{
			name:    "oneof",
			request: sampleRequest{Name: "Ana", Status: "Scheduled"},
			field:   "Status",
			message: "Status must be one of: Pendiente Confirmada",
		},
		{
			name:    "fallback",
			request: sampleRequest{Name: "Ana", Status: "Pendiente", Email: "not-an-email"},
			field:   "Email",
			message: "Email is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.request)
			require.Error(t, err)

			formatted := v.FormatValidationErrors(err)
			assert.Equal(t, tt.message, formatted[tt.field])
		})
	}
}

func TestFormatValidationErrorsNonValidationError(t *testing.T) {
	v := NewValidator()

	formatted := v.FormatValidationErrors(assert.AnError)
	assert.Empty(t, formatted)
}
