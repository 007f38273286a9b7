package customerror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotificationFailed сигнализирует, что терминальный переход уже зафиксирован,
// а уведомление финансовому отделу не доставлено. Переход не откатывается.
var ErrNotificationFailed = errors.New("notification dispatch failed")

type CustomError interface {
	Error() string
	GetHTTPCode() int
}

type UniqueViolationError struct {
	httpCode int
	message  string
}

func NewUniqueViolationError(msg string) *UniqueViolationError {
	return &UniqueViolationError{httpCode: http.StatusConflict, message: msg}
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique violation: %s", e.message)
}

func (e *UniqueViolationError) GetHTTPCode() int {
	return e.httpCode
}

// PreconditionFailedError — запись отклонена до сохранения: заказ не существует
// или входные данные не проходят проверку.
type PreconditionFailedError struct {
	httpCode int
	message  string
}

func NewPreconditionFailedError(msg string) *PreconditionFailedError {
	return &PreconditionFailedError{httpCode: http.StatusUnprocessableEntity, message: msg}
}

func (e *PreconditionFailedError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.message)
}

func (e *PreconditionFailedError) GetHTTPCode() int {
	return e.httpCode
}

type NotFoundError struct {
	httpCode int
	message  string
}

func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{httpCode: http.StatusNotFound, message: msg}
}

func (e *NotFoundError) Error() string {
	return e.message
}

func (e *NotFoundError) GetHTTPCode() int {
	return e.httpCode
}

type CommonPGError struct {
	httpCode int
	message  string
}

func NewCommonPGError(msg string) *CommonPGError {
	return &CommonPGError{httpCode: http.StatusInternalServerError, message: msg}
}

func (e *CommonPGError) Error() string {
	return e.message
}

func (e *CommonPGError) GetHTTPCode() int {
	return e.httpCode
}
