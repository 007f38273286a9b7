package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/customerror"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/handlers/schemas"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/middlewares/logger"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"
)

type ValidationServiceI interface {
	Resolve(ctx context.Context, token string, decision models.Decision) (models.ResolveOutcome, models.ProcessingStatus, error)
}

// ValidationHandler обрабатывает переход по ссылке из письма согласования.
type ValidationHandler struct {
	validationService ValidationServiceI
}

func NewValidationHandler(validationService ValidationServiceI) *ValidationHandler {
	return &ValidationHandler{validationService: validationService}
}

func (h *ValidationHandler) ResolveValidation(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	action := r.URL.Query().Get("action")

	if token == "" {
		http.Error(w, "Validation token is required", http.StatusBadRequest)
		return
	}

	decision := models.Decision(action)
	if decision != models.DecisionApprove && decision != models.DecisionReject {
		http.Error(w, "Action must be approve or reject", http.StatusBadRequest)
		return
	}

	outcome, status, err := h.validationService.Resolve(r.Context(), token, decision)
	if err != nil && !errors.Is(err, customerror.ErrNotificationFailed) {
		logger.Log.Error("failed to resolve validation: " + err.Error())
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := schemas.ValidationResponse{Outcome: outcome}

	switch outcome {
	case models.OutcomeUnknownToken:
		response.Message = "This validation link is invalid or expired"
		h.respond(w, http.StatusNotFound, response)
	case models.OutcomeAlreadyResolved:
		response.Status = status
		response.Message = "This invoice has already been processed"
		h.respond(w, http.StatusConflict, response)
	case models.OutcomeSuccess:
		response.Status = status
		response.Message = "Your decision has been recorded"
		if err != nil {
			// Решение зафиксировано, но финансовый отдел не уведомлен.
			logger.Log.Warn("finance notice was not delivered: " + err.Error())
			response.Warning = "finance notification could not be delivered"
		}
		h.respond(w, http.StatusOK, response)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *ValidationHandler) respond(w http.ResponseWriter, httpCode int, payload schemas.ValidationResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
	}
}
