package retry

import (
	"context"
	"errors"
	"time"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/customerror"
	"github.com/jackc/pgx/v5"
)

// Config задает количество попыток и паузы между ними.
type Config struct {
	Attempts int
	Delays   []time.Duration
}

var DefaultConfig = Config{
	Attempts: 3,
	Delays:   []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second},
}

// NotifierRetryConfig — шлюз уведомлений ограничен таймаутом на каждую отправку,
// поэтому попыток меньше.
var NotifierRetryConfig = Config{
	Attempts: 2,
	Delays:   []time.Duration{2 * time.Second},
}

// DoRetry повторяет fn при временных сбоях хранилища или сети.
func DoRetry(ctx context.Context, fn func() error, configs ...Config) error {
	_, err := DoRetryWithResult(ctx, func() (struct{}, error) {
		return struct{}{}, fn()
	}, configs...)
	return err
}

// DoRetryWithResult повторяет fn и возвращает результат последней попытки.
// При ошибке возвращается zero value.
func DoRetryWithResult[T any](ctx context.Context, fn func() (T, error), configs ...Config) (T, error) {
	config := DefaultConfig
	if len(configs) > 0 {
		config = configs[0]
	}

	var zero T
	var err error

	for attempt := 0; attempt < config.Attempts; attempt++ {
		var result T
		result, err = fn()
		if err == nil {
			return result, nil
		}
		if !retriable(err) || attempt == config.Attempts-1 {
			break
		}

		delay := config.Delays[len(config.Delays)-1]
		if attempt < len(config.Delays) {
			delay = config.Delays[attempt]
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	return zero, err
}

// retriable отделяет сбои хранилища от бизнес-результатов:
// отсутствие строки и нарушения ограничений повтор не исправит.
func retriable(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return false
	}
	var customErr customerror.CustomError
	return !errors.As(err, &customErr)
}
