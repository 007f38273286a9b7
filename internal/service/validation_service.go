package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/clients/notifier"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/customerror"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"
)

var ErrUnknownDecision = errors.New("unknown decision")

type ProcessingRepositoryI interface {
	TransitionFromPending(token string, newStatus models.ProcessingStatus) (bool, error)
	ListPending() ([]models.ProcessingRecord, error)
	GetByToken(token string) (*models.RecordDetails, error)
}

// ValidationService владеет правилами переходов записи обработки:
// из PENDING ровно один переход в терминальный статус, победителя
// определяет условная запись в хранилище.
type ValidationService struct {
	repository ProcessingRepositoryI
	notifier   notifier.NotifierClientI
}

func NewValidationService(repository ProcessingRepositoryI, notifierClient notifier.NotifierClientI) *ValidationService {
	return &ValidationService{repository: repository, notifier: notifierClient}
}

// Resolve обрабатывает ответ заявителя по ссылке из письма.
// Проигрыш гонки — ожидаемый исход, а не ошибка: он возвращается
// отдельным значением ALREADY_RESOLVED.
func (service *ValidationService) Resolve(ctx context.Context, token string, decision models.Decision) (models.ResolveOutcome, models.ProcessingStatus, error) {
	var newStatus models.ProcessingStatus
	switch decision {
	case models.DecisionApprove:
		newStatus = models.ApprovedStatus
	case models.DecisionReject:
		newStatus = models.RejectedStatus
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnknownDecision, decision)
	}

	won, err := service.repository.TransitionFromPending(token, newStatus)
	if err != nil {
		return "", "", err
	}

	if !won {
		// Условный UPDATE не различает незнакомый токен и уже
		// завершенную запись, разделяем их отдельным чтением.
		details, err := service.repository.GetByToken(token)
		if err != nil {
			return "", "", err
		}
		if details == nil {
			return models.OutcomeUnknownToken, "", nil
		}
		return models.OutcomeAlreadyResolved, details.Status, nil
	}

	if err = service.notifyFinance(ctx, token); err != nil {
		// Переход уже зафиксирован и не откатывается: консистентность
		// состояния важнее доставки уведомления.
		return models.OutcomeSuccess, newStatus, fmt.Errorf("%w: %v", customerror.ErrNotificationFailed, err)
	}

	return models.OutcomeSuccess, newStatus, nil
}

// ForceTimeout переводит просроченную запись в TIMEOUT. Вызывается только
// sweep-джобой. Если ответ заявителя успел раньше — молча no-op: его
// собственное уведомление уже ушло.
func (service *ValidationService) ForceTimeout(ctx context.Context, token string) (bool, error) {
	won, err := service.repository.TransitionFromPending(token, models.TimeoutStatus)
	if err != nil || !won {
		return false, err
	}

	if err = service.notifyFinance(ctx, token); err != nil {
		return true, fmt.Errorf("%w: %v", customerror.ErrNotificationFailed, err)
	}

	return true, nil
}

func (service *ValidationService) notifyFinance(ctx context.Context, token string) error {
	details, err := service.repository.GetByToken(token)
	if err != nil {
		return err
	}
	if details == nil {
		return fmt.Errorf("record for token %s disappeared after transition", token)
	}
	return service.notifier.SendFinanceNotice(ctx, details)
}
