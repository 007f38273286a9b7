package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/customerror"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/handlers/schemas"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/middlewares/logger"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/repository"
	"github.com/go-chi/chi/v5"
)

// ProvisionHandler ведет справочники заявителей и заказов.
type ProvisionHandler struct {
	requesterStorage repository.RequesterStorageRepositoryI
	orderStorage     repository.OrderStorageRepositoryI
}

func NewProvisionHandler(
	requesterStorage repository.RequesterStorageRepositoryI,
	orderStorage repository.OrderStorageRepositoryI,
) *ProvisionHandler {
	return &ProvisionHandler{
		requesterStorage: requesterStorage,
		orderStorage:     orderStorage,
	}
}

func (h *ProvisionHandler) AddRequester(w http.ResponseWriter, r *http.Request) {
	var req schemas.RequesterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" {
		http.Error(w, "Name and email are required", http.StatusBadRequest)
		return
	}

	requester := models.Requester{Name: req.Name, Email: req.Email}
	if err := h.requesterStorage.Create(&requester); err != nil {
		h.writeError(w, err, "failed to create requester")
		return
	}

	h.respond(w, http.StatusCreated, requester)
}

func (h *ProvisionHandler) ChangeRequesterEmail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid requester id", http.StatusBadRequest)
		return
	}

	var req schemas.RequesterEmailRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	if err = h.requesterStorage.UpdateEmail(id, req.Email); err != nil {
		h.writeError(w, err, "failed to update requester email")
		return
	}

	h.respond(w, http.StatusOK, models.Requester{ID: id, Email: req.Email})
}

func (h *ProvisionHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	var req schemas.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.OrderNumber == "" || req.RequesterID == 0 {
		http.Error(w, "Order number and requester id are required", http.StatusBadRequest)
		return
	}

	order := req.ToOrder()
	if err := h.orderStorage.Create(order); err != nil {
		h.writeError(w, err, "failed to create order")
		return
	}

	h.respond(w, http.StatusCreated, order)
}

func (h *ProvisionHandler) writeError(w http.ResponseWriter, err error, logMessage string) {
	var customErr customerror.CustomError
	if errors.As(err, &customErr) {
		http.Error(w, customErr.Error(), customErr.GetHTTPCode())
		return
	}
	logger.Log.Error(logMessage + ": " + err.Error())
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func (h *ProvisionHandler) respond(w http.ResponseWriter, httpCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
	}
}
