package repository

import (
	"context"
	"errors"
	"math"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/config/db"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/retry"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db *db.DB
}

type OrderStorageRepositoryI interface {
	Create(order *models.Order) error
	GetByNumber(number string) (*models.OrderDetails, error)
}

func NewOrderRepository(dbObj *db.DB) *OrderRepository {
	return &OrderRepository{db: dbObj}
}

func (repository *OrderRepository) Create(order *models.Order) error {
	query := `INSERT INTO orders (order_number, requester_id, amount, cost_center)
		VALUES ($1, $2, $3, $4) RETURNING id`

	amountInCents := int64(math.Round(float64(order.Amount) * 100))

	return retry.DoRetry(context.Background(), func() error {
		row := repository.db.Pool.QueryRow(
			context.Background(),
			query,
			order.Number,
			order.RequesterID,
			amountInCents,
			order.CostCenter,
		)
		return classifyPGError(row.Scan(&order.ID))
	})
}

// GetByNumber ищет заказ и его заявителя по внешнему номеру.
// Возвращает nil без ошибки, если заказа нет.
func (repository *OrderRepository) GetByNumber(number string) (*models.OrderDetails, error) {
	query := `SELECT o.id, o.order_number, o.requester_id, o.amount, o.cost_center, r.name, r.email
		FROM orders o
		JOIN requesters r ON o.requester_id = r.id
		WHERE o.order_number = $1`

	return retry.DoRetryWithResult(context.Background(), func() (*models.OrderDetails, error) {
		row := repository.db.Pool.QueryRow(
			context.Background(),
			query,
			number,
		)

		details := models.OrderDetails{}
		var amountInCents int64
		err := row.Scan(
			&details.ID,
			&details.Number,
			&details.RequesterID,
			&amountInCents,
			&details.CostCenter,
			&details.RequesterName,
			&details.RequesterEmail,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}

		details.SetAmountAsFloat(amountInCents)

		return &details, nil
	})
}
