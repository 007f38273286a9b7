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

type IntakeServiceI interface {
	ProcessInvoice(ctx context.Context, record *models.ProcessingRecord, orderNumber string) (string, error)
}

// InvoicesHandler принимает счета от администратора и ставит их на согласование.
type InvoicesHandler struct {
	intakeService IntakeServiceI
}

func NewInvoicesHandler(intakeService IntakeServiceI) *InvoicesHandler {
	return &InvoicesHandler{intakeService: intakeService}
}

func (h *InvoicesHandler) SubmitInvoice(w http.ResponseWriter, r *http.Request) {
	var req schemas.InvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.InvoiceNumber == "" || req.SupplierName == "" {
		http.Error(w, "Invoice number and supplier are required", http.StatusBadRequest)
		return
	}
	if req.OrderNumber == "" {
		http.Error(w, "Order number is required", http.StatusBadRequest)
		return
	}

	record := req.ToRecord()
	token, err := h.intakeService.ProcessInvoice(r.Context(), record, req.OrderNumber)

	response := schemas.InvoiceResponse{
		Token:   token,
		Message: "Invoice submitted for validation",
	}

	if err != nil {
		if errors.Is(err, customerror.ErrNotificationFailed) {
			// Счет сохранен, крайний срок уже идет, а письмо не ушло.
			// Таймаут-обход доведет запись до развязки.
			logger.Log.Warn("validation request email was not delivered: " + err.Error())
			response.Warning = "validation request email could not be delivered"
			h.respond(w, http.StatusAccepted, response)
			return
		}

		var customErr customerror.CustomError
		if errors.As(err, &customErr) {
			http.Error(w, customErr.Error(), customErr.GetHTTPCode())
			return
		}

		logger.Log.Error("failed to process invoice: " + err.Error())
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.respond(w, http.StatusAccepted, response)
}

func (h *InvoicesHandler) respond(w http.ResponseWriter, httpCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
	}
}
