package schemas

import "github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"

type RequesterRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

type RequesterEmailRequest struct {
	Email string `json:"email" validate:"required"`
}

type OrderRequest struct {
	OrderNumber string  `json:"order_number" validate:"required"`
	RequesterID int     `json:"requester_id" validate:"required"`
	Amount      float32 `json:"amount" validate:"required"`
	CostCenter  string  `json:"cost_center"`
}

func (req OrderRequest) ToOrder() *models.Order {
	return &models.Order{
		Number:      req.OrderNumber,
		RequesterID: req.RequesterID,
		Amount:      req.Amount,
		CostCenter:  req.CostCenter,
	}
}
