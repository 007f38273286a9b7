package repository

import (
	"context"
	"errors"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/config/db"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/retry"
	"github.com/jackc/pgx/v5"
)

type ProcessingRepository struct {
	db *db.DB
}

type ProcessingStorageRepositoryI interface {
	Create(record *models.ProcessingRecord) error
	TransitionFromPending(token string, newStatus models.ProcessingStatus) (bool, error)
	ListPending() ([]models.ProcessingRecord, error)
	GetByToken(token string) (*models.RecordDetails, error)
}

func NewProcessingRepository(dbObj *db.DB) *ProcessingRepository {
	return &ProcessingRepository{db: dbObj}
}

// Create сохраняет новую запись обработки. Статус всегда PENDING —
// другого начального состояния у записи нет. Повтор токена отклоняется
// ограничением уникальности, перезапись невозможна.
func (repository *ProcessingRepository) Create(record *models.ProcessingRecord) error {
	query := `INSERT INTO processing_records
		(invoice_number, invoice_date, supplier, amount, attachment, order_id, status, validation_token, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	record.Status = models.PendingStatus

	return retry.DoRetry(context.Background(), func() error {
		row := repository.db.Pool.QueryRow(
			context.Background(),
			query,
			record.InvoiceNumber,
			record.InvoiceDate,
			record.Supplier,
			record.AmountAsCents(),
			record.Attachment,
			record.OrderID,
			record.Status,
			record.Token,
			record.SubmittedAt,
		)
		return classifyPGError(row.Scan(&record.ID))
	})
}

// TransitionFromPending — единственная точка изменения статуса.
// Условный UPDATE выполняет сравнение и запись одной атомарной операцией:
// из всех конкурентных вызовов по одному токену выигрывает не больше одного.
func (repository *ProcessingRepository) TransitionFromPending(token string, newStatus models.ProcessingStatus) (bool, error) {
	query := `UPDATE processing_records SET status = $1 WHERE validation_token = $2 AND status = $3`

	return retry.DoRetryWithResult(context.Background(), func() (bool, error) {
		row, err := repository.db.Pool.Exec(
			context.Background(),
			query,
			newStatus,
			token,
			models.PendingStatus,
		)
		if err != nil {
			return false, err
		}
		return row.RowsAffected() > 0, nil
	})
}

// ListPending отдает записи, ожидающие ответа. Снимок не обязан быть
// согласованным: каждая запись дальше проходит свой атомарный переход.
func (repository *ProcessingRepository) ListPending() ([]models.ProcessingRecord, error) {
	query := `SELECT id, invoice_number, validation_token, submitted_at
		FROM processing_records WHERE status = $1`

	return retry.DoRetryWithResult(context.Background(), func() ([]models.ProcessingRecord, error) {
		rows, err := repository.db.Pool.Query(
			context.Background(),
			query,
			models.PendingStatus,
		)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		records := []models.ProcessingRecord{}
		for rows.Next() {
			record := models.ProcessingRecord{Status: models.PendingStatus}
			err = rows.Scan(&record.ID, &record.InvoiceNumber, &record.Token, &record.SubmittedAt)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}

		return records, rows.Err()
	})
}

// GetByToken собирает запись вместе с заказом и заявителем для уведомления.
// Возвращает nil без ошибки, если токен неизвестен.
func (repository *ProcessingRepository) GetByToken(token string) (*models.RecordDetails, error) {
	query := `SELECT pr.invoice_number, pr.invoice_date, pr.supplier, pr.amount, pr.attachment, pr.status,
			o.order_number, o.amount, o.cost_center,
			r.name, r.email
		FROM processing_records pr
		JOIN orders o ON pr.order_id = o.id
		JOIN requesters r ON o.requester_id = r.id
		WHERE pr.validation_token = $1`

	return retry.DoRetryWithResult(context.Background(), func() (*models.RecordDetails, error) {
		row := repository.db.Pool.QueryRow(
			context.Background(),
			query,
			token,
		)

		details := models.RecordDetails{}
		var invoiceInCents *int64
		var orderInCents int64
		err := row.Scan(
			&details.InvoiceNumber,
			&details.InvoiceDate,
			&details.Supplier,
			&invoiceInCents,
			&details.Attachment,
			&details.Status,
			&details.OrderNumber,
			&orderInCents,
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

		if invoiceInCents != nil {
			details.SetInvoiceAmountAsFloat(*invoiceInCents)
		}
		details.SetOrderAmountAsFloat(orderInCents)

		return &details, nil
	})
}
