package handler

import (
	"encoding/json"
	"net/http"

	"github.com/LemonMantis5571/historial-medico-api/internal/delivery/dto"
	"github.com/LemonMantis5571/historial-medico-api/internal/usecase"
	"github.com/LemonMantis5571/historial-medico-api/pkg/response"
	"github.com/LemonMantis5571/historial-medico-api/pkg/validator"
)

type DiagnosisHandler struct {
	diagnosisUsecase usecase.DiagnosisUsecase
	validator        *validator.CustomValidator
}

func NewDiagnosisHandler(diagnosisUsecase usecase.DiagnosisUsecase, validator *validator.CustomValidator) *DiagnosisHandler {
	return &DiagnosisHandler{
		diagnosisUsecase: diagnosisUsecase,
		validator:        validator,
	}
}

func (h *DiagnosisHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDiagnosisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.diagnosisUsecase.CreateDiagnosis(r.Context(), &req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Diagnosis created successfully", result)
}
