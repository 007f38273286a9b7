package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/clients/notifier"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/customerror"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/tokens"
)

type OrderLookupI interface {
	GetByNumber(number string) (*models.OrderDetails, error)
}

type ProcessingCreatorI interface {
	Create(record *models.ProcessingRecord) error
}

// IntakeService принимает извлеченные поля счета, сверяет заказ
// и открывает новую запись обработки в статусе PENDING.
type IntakeService struct {
	orders     OrderLookupI
	processing ProcessingCreatorI
	notifier   notifier.NotifierClientI
}

func NewIntakeService(orders OrderLookupI, processing ProcessingCreatorI, notifierClient notifier.NotifierClientI) *IntakeService {
	return &IntakeService{orders: orders, processing: processing, notifier: notifierClient}
}

// ProcessInvoice создает запись обработки и просит заявителя подтвердить
// счет. Возвращает выданный токен валидации.
func (service *IntakeService) ProcessInvoice(ctx context.Context, record *models.ProcessingRecord, orderNumber string) (string, error) {
	if orderNumber == "" {
		return "", customerror.NewPreconditionFailedError("invoice carries no order number")
	}

	order, err := service.orders.GetByNumber(orderNumber)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", customerror.NewPreconditionFailedError(fmt.Sprintf("order %s does not exist", orderNumber))
	}

	record.OrderID = order.ID
	record.Token = tokens.New()
	record.SubmittedAt = time.Now()

	if err = service.processing.Create(record); err != nil {
		return "", err
	}

	if err = service.notifier.SendValidationRequest(ctx, order, record); err != nil {
		// Запись уже создана; если письмо не ушло, запись доберет
		// sweep-джоба по дедлайну.
		return record.Token, fmt.Errorf("%w: %v", customerror.ErrNotificationFailed, err)
	}

	return record.Token, nil
}
