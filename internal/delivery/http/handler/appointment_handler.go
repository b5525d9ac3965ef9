package handler

import (
	"encoding/json"
	"net/http"

	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/dto"
	"github.com/LemonMantis5571/historial-medico-api/internal/usecase"
	"github.com/LemonMantis5571/historial-medico-api/pkg/response"
	"github.com/LemonMantis5571/historial-medico-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", result)
}

// List filters by exactly one of doctor_id or patient_id.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	doctorParam := r.URL.Query().Get("doctor_id")
	patientParam := r.URL.Query().Get("patient_id")

	switch {
	case doctorParam != "" && patientParam != "":
		response.Error(w, http.StatusBadRequest, "Provide either doctor_id or patient_id, not both", nil)
	case doctorParam != "":
		doctorID, err := uuid.Parse(doctorParam)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
			return
		}
		result, err := h.appointmentUsecase.ListByDoctor(r.Context(), doctorID)
		if err != nil {
			response.AppError(w, err)
			return
		}
		response.Success(w, http.StatusOK, "Appointments retrieved successfully", result)
	case patientParam != "":
		patientID, err := uuid.Parse(patientParam)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
			return
		}
		result, err := h.appointmentUsecase.ListByPatient(r.Context(), patientID)
		if err != nil {
			response.AppError(w, err)
			return
		}
		response.Success(w, http.StatusOK, "Appointments retrieved successfully", result)
	default:
		response.Error(w, http.StatusBadRequest, "doctor_id or patient_id query parameter is required", nil)
	}
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.UpdateAppointment(r.Context(), appointmentID, &req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", result)
}

// Cancel requires an explicit confirmation flag in the body before the
// appointment is moved to Cancelada.
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if !req.Confirm {
		response.Error(w, http.StatusBadRequest, "Cancellation requires confirmation", nil)
		return
	}

	result, err := h.appointmentUsecase.CancelAppointment(r.Context(), appointmentID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", result)
}
