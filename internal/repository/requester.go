package repository

import (
	"context"
	"fmt"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/config/db"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/customerror"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/retry"
)

type RequesterRepository struct {
	db *db.DB
}

type RequesterStorageRepositoryI interface {
	Create(requester *models.Requester) error
	UpdateEmail(id int, newEmail string) error
}

func NewRequesterRepository(dbObj *db.DB) *RequesterRepository {
	return &RequesterRepository{db: dbObj}
}

func (repository *RequesterRepository) Create(requester *models.Requester) error {
	query := `INSERT INTO requesters (name, email) VALUES ($1, $2) RETURNING id`

	return retry.DoRetry(context.Background(), func() error {
		row := repository.db.Pool.QueryRow(
			context.Background(),
			query,
			requester.Name,
			requester.Email,
		)
		return classifyPGError(row.Scan(&requester.ID))
	})
}

// UpdateEmail — корректирующая правка адреса. Остальные атрибуты заявителя
// после создания не меняются.
func (repository *RequesterRepository) UpdateEmail(id int, newEmail string) error {
	query := `UPDATE requesters SET email = $1 WHERE id = $2`

	return retry.DoRetry(context.Background(), func() error {
		row, err := repository.db.Pool.Exec(
			context.Background(),
			query,
			newEmail,
			id,
		)
		if err != nil {
			return classifyPGError(err)
		}
		if row.RowsAffected() == 0 {
			return customerror.NewNotFoundError(fmt.Sprintf("requester with id %d not found", id))
		}
		return nil
	})
}
