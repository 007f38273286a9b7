package models

import (
	"math"
	"time"
)

type ProcessingStatus string

const (
	PendingStatus  ProcessingStatus = "PENDING"
	ApprovedStatus ProcessingStatus = "APPROVED"
	RejectedStatus ProcessingStatus = "REJECTED"
	TimeoutStatus  ProcessingStatus = "TIMEOUT"
)

// Terminal: из терминального статуса переходов нет.
func (status ProcessingStatus) Terminal() bool {
	return status != PendingStatus
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type ResolveOutcome string

const (
	OutcomeSuccess         ResolveOutcome = "SUCCESS"
	OutcomeUnknownToken    ResolveOutcome = "UNKNOWN_TOKEN"
	OutcomeAlreadyResolved ResolveOutcome = "ALREADY_RESOLVED"
)

// ProcessingRecord — одна попытка валидации одного счета по одному заказу.
type ProcessingRecord struct {
	ID            int              `json:"id"`
	InvoiceNumber string           `json:"invoice_number"`
	InvoiceDate   string           `json:"invoice_date"`
	Supplier      string           `json:"supplier"`
	Amount        float32          `json:"amount"`
	Attachment    []byte           `json:"-"`
	OrderID       int              `json:"order_id"`
	Status        ProcessingStatus `json:"status"`
	Token         string           `json:"-"`
	SubmittedAt   time.Time        `json:"submitted_at"`
}

func (record *ProcessingRecord) SetAmountAsFloat(amountInCents int64) {
	record.Amount = float32(amountInCents) / 100
}

func (record *ProcessingRecord) AmountAsCents() int64 {
	return int64(math.Round(float64(record.Amount) * 100))
}

// RecordDetails — запись вместе с заказом и заявителем, собранная для уведомления.
type RecordDetails struct {
	InvoiceNumber  string           `json:"invoice_number"`
	InvoiceDate    string           `json:"invoice_date"`
	Supplier       string           `json:"supplier"`
	InvoiceAmount  float32          `json:"invoice_amount"`
	Status         ProcessingStatus `json:"status"`
	OrderNumber    string           `json:"order_number"`
	OrderAmount    float32          `json:"order_amount"`
	CostCenter     string           `json:"cost_center"`
	RequesterName  string           `json:"requester_name"`
	RequesterEmail string           `json:"-"`
	Attachment     []byte           `json:"-"`
}

func (details *RecordDetails) SetInvoiceAmountAsFloat(amountInCents int64) {
	details.InvoiceAmount = float32(amountInCents) / 100
}

func (details *RecordDetails) SetOrderAmountAsFloat(amountInCents int64) {
	details.OrderAmount = float32(amountInCents) / 100
}
