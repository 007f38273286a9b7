package models

type Order struct {
	ID          int     `json:"id"`
	Number      string  `json:"order_number"`
	RequesterID int     `json:"requester_id"`
	Amount      float32 `json:"amount"`
	CostCenter  string  `json:"cost_center"`
}

func (order *Order) SetAmountAsFloat(amountInCents int64) {
	order.Amount = float32(amountInCents) / 100
}

// OrderDetails — заказ вместе с данными заявителя, нужен письму валидации.
type OrderDetails struct {
	Order
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
}
