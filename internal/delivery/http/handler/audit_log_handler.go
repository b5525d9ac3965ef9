package handler

import (
	"net/http"
	"strconv"

	"github.com/LemonMantis5571/historial-medico-api/internal/usecase"
	"github.com/LemonMantis5571/historial-medico-api/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

func (h *AuditLogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.auditLogUsecase.GetAllAuditLogs(r.Context())
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", result)
}

func (h *AuditLogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	result, err := h.auditLogUsecase.GetAuditLog(r.Context(), id)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", result)
}
