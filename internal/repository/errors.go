package repository

import (
	"errors"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/customerror"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// classifyPGError переводит ошибки ограничений Postgres в доменные:
// нарушение уникальности — конфликт, нарушение внешнего ключа —
// несуществующая ссылка (заказ или заявитель).
func classifyPGError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return customerror.NewUniqueViolationError(pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			return customerror.NewPreconditionFailedError(pgErr.ConstraintName)
		}
	}

	return err
}
