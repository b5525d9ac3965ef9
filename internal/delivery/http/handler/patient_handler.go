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

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	historyUsecase usecase.MedicalHistoryUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(
	patientUsecase usecase.PatientUsecase,
	historyUsecase usecase.MedicalHistoryUsecase,
	validator *validator.CustomValidator,
) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		historyUsecase: historyUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	result, err := h.patientUsecase.GetPatient(r.Context(), patientID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", result)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.patientUsecase.UpdatePatient(r.Context(), patientID, &req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", result)
}

func (h *PatientHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	result, err := h.historyUsecase.GetHistoryForPatient(r.Context(), patientID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Medical history retrieved successfully", result)
}
