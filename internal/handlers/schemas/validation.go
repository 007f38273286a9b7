package schemas

import "github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"

type ValidationResponse struct {
	Outcome models.ResolveOutcome   `json:"outcome"`
	Status  models.ProcessingStatus `json:"status,omitempty"`
	Message string                  `json:"message"`
	Warning string                  `json:"warning,omitempty"`
}
