package service

import (
	"context"
	"errors"
	"time"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/customerror"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/middlewares/logger"
	"go.uber.org/zap"
)

// Таймаут на обработку одной записи внутри прохода: зависшая отправка
// уведомления не должна блокировать остальные записи.
const perRecordTimeout = 30 * time.Second

type TimeoutResolverI interface {
	ForceTimeout(ctx context.Context, token string) (bool, error)
}

// SweepService — периодическая джоба, переводящая просроченные записи
// в TIMEOUT. Каждый проход идемпотентен: повторный запуск по тому же
// состоянию не дает побочных эффектов, условный переход сработает
// не больше одного раза.
type SweepService struct {
	repository ProcessingRepositoryI
	resolver   TimeoutResolverI
	deadline   time.Duration
	interval   time.Duration
}

func NewSweepService(repository ProcessingRepositoryI, resolver TimeoutResolverI, deadline, interval time.Duration) *SweepService {
	return &SweepService{
		repository: repository,
		resolver:   resolver,
		deadline:   deadline,
		interval:   interval,
	}
}

// Run выполняет первый проход сразу при старте, дальше по тикеру,
// пока контекст не отменен.
func (service *SweepService) Run(ctx context.Context) {
	service.CheckTimeouts(ctx)

	ticker := time.NewTicker(service.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("timeout sweep stopped")
			return
		case <-ticker.C:
			service.CheckTimeouts(ctx)
		}
	}
}

// CheckTimeouts — один проход по ожидающим записям.
func (service *SweepService) CheckTimeouts(ctx context.Context) {
	pending, err := service.repository.ListPending()
	if err != nil {
		// Следующий тик повторит проход
		logger.Log.Warn("timeout sweep: can't list pending records", zap.Error(err))
		return
	}

	if len(pending) == 0 {
		logger.Log.Debug("timeout sweep: no pending records")
		return
	}

	now := time.Now()
	for _, record := range pending {
		if record.SubmittedAt.IsZero() {
			// Запись с испорченным таймстемпом пропускаем до следующего
			// прохода, а не выбрасываем навсегда
			logger.Log.Warn("timeout sweep: record has no submission timestamp, will retry next pass",
				zap.String("invoice", record.InvoiceNumber),
			)
			continue
		}

		elapsed := now.Sub(record.SubmittedAt)
		if elapsed < service.deadline {
			logger.Log.Debug("record still within deadline",
				zap.String("invoice", record.InvoiceNumber),
				zap.Duration("remaining", service.deadline-elapsed),
			)
			continue
		}

		dispatchCtx, cancel := context.WithTimeout(ctx, perRecordTimeout)
		won, err := service.resolver.ForceTimeout(dispatchCtx, record.Token)
		cancel()

		switch {
		case errors.Is(err, customerror.ErrNotificationFailed):
			// Статус TIMEOUT уже записан, письмо не ушло — ручной разбор
			logger.Log.Warn("record timed out but finance notice failed, manual follow-up required",
				zap.String("invoice", record.InvoiceNumber),
				zap.Error(err),
			)
		case err != nil:
			logger.Log.Warn("timeout transition failed, will retry next pass",
				zap.String("invoice", record.InvoiceNumber),
				zap.Error(err),
			)
		case !won:
			logger.Log.Info("record was resolved before the timeout took effect",
				zap.String("invoice", record.InvoiceNumber),
			)
		default:
			logger.Log.Info("record timed out",
				zap.String("invoice", record.InvoiceNumber),
			)
		}
	}
}
