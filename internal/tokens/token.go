package tokens

import "github.com/google/uuid"

// New выдает токен валидации, связывающий счет с записью обработки.
// Криптослучайный UUID v4: токен нельзя предсказать по данным счета
// или заказа, подделать ссылку подтверждения не получится.
func New() string {
	return uuid.NewString()
}
