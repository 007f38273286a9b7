package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/middlewares/logger"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/retry"
	"go.uber.org/zap"
)

// Таймаут одной отправки: медленный транспорт не должен задерживать
// проход sweep-джобы по остальным записям.
const dispatchTimeout = 10 * time.Second

// Message — полезная нагрузка для шлюза уведомлений. Сам шлюз отвечает
// за SMTP и HTML-шаблоны, ядро передает готовые поля.
type Message struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	HTML       string `json:"html"`
	Attachment []byte `json:"attachment,omitempty"`
	Filename   string `json:"filename,omitempty"`
}

type NotifierClientI interface {
	SendValidationRequest(ctx context.Context, order *models.OrderDetails, record *models.ProcessingRecord) error
	SendFinanceNotice(ctx context.Context, details *models.RecordDetails) error
}

type NotifierClient struct {
	httpClient   *http.Client
	endpoint     string
	baseURL      string
	financeEmail string
}

func NewNotifierClient(endpoint, baseURL, financeEmail string) *NotifierClient {
	client := NotifierClient{
		endpoint:     endpoint,
		baseURL:      baseURL,
		financeEmail: financeEmail,
		httpClient:   &http.Client{Timeout: dispatchTimeout},
	}
	return &client
}

// SendValidationRequest отправляет заявителю письмо со ссылками
// подтверждения и отклонения.
func (client *NotifierClient) SendValidationRequest(ctx context.Context, order *models.OrderDetails, record *models.ProcessingRecord) error {
	linkApprove := fmt.Sprintf("%s/?action=approve&token=%s", client.baseURL, record.Token)
	linkReject := fmt.Sprintf("%s/?action=reject&token=%s", client.baseURL, record.Token)

	msg := Message{
		To:      order.RequesterEmail,
		Subject: fmt.Sprintf("Action required: validate invoice %s (order %s)", record.InvoiceNumber, order.Number),
		HTML: fmt.Sprintf(`<html><body>
<h2>Invoice validation</h2>
<p>Hello, %s,</p>
<p>An invoice was received and matched to an order in your name. Please review the data below and confirm the order information is correct so the payment can be processed.</p>
<h3>Invoice details</h3>
<ul>
<li><strong>Invoice number:</strong> %s</li>
<li><strong>Supplier:</strong> %s</li>
<li><strong>Date:</strong> %s</li>
<li><strong>Invoice amount:</strong> %s</li>
</ul>
<h3>Order details</h3>
<ul>
<li><strong>Order number:</strong> %s</li>
<li><strong>Order amount:</strong> %s</li>
<li><strong>Cost center:</strong> %s</li>
</ul>
<p><a href="%s">YES, APPROVE</a> <a href="%s">NO, REJECT</a></p>
<p>If no action is taken within the validation deadline, the payment will be put on hold automatically.</p>
<p>This is an automated message. Please do not reply.</p>
</body></html>`,
			order.RequesterName,
			record.InvoiceNumber, record.Supplier, record.InvoiceDate, models.FormatBRL(record.Amount),
			order.Number, models.FormatBRL(order.Amount), order.CostCenter,
			linkApprove, linkReject,
		),
	}

	return client.send(ctx, msg)
}

// SendFinanceNotice отправляет финансовому отделу письмо о терминальном
// статусе записи. PDF счета прикладывается только при подтверждении.
func (client *NotifierClient) SendFinanceNotice(ctx context.Context, details *models.RecordDetails) error {
	var prefix, action string
	var attachment []byte
	var filename string

	switch details.Status {
	case models.ApprovedStatus:
		prefix = "[APPROVED]"
		action = fmt.Sprintf("<p><strong>Action: proceed with the payment.</strong></p><p>Validated by: %s.</p>", details.RequesterName)
		if details.Attachment != nil {
			attachment = details.Attachment
			filename = fmt.Sprintf("NF_%s.pdf", details.InvoiceNumber)
		}
	case models.RejectedStatus:
		prefix = "[REJECTED]"
		action = fmt.Sprintf("<p><strong>Action: do NOT proceed with the payment.</strong></p><p>Rejected by: %s. Please follow up.</p>", details.RequesterName)
	case models.TimeoutStatus:
		prefix = "[TIMEOUT]"
		action = fmt.Sprintf("<p><strong>Action: payment suspended.</strong></p><p>The requester (%s) did not respond to the validation request in time.</p>", details.RequesterName)
	default:
		return fmt.Errorf("finance notice requested for non-terminal status %s", details.Status)
	}

	msg := Message{
		To:         client.financeEmail,
		Subject:    fmt.Sprintf("%s Payment for invoice %s / order %s", prefix, details.InvoiceNumber, details.OrderNumber),
		Attachment: attachment,
		Filename:   filename,
		HTML: fmt.Sprintf(`<html><body>
<h2>Payment status notification</h2>
%s
<h3>Invoice details</h3>
<ul>
<li><strong>Invoice number:</strong> %s</li>
<li><strong>Supplier:</strong> %s</li>
<li><strong>Date:</strong> %s</li>
<li><strong>Invoice amount:</strong> %s</li>
</ul>
<h3>Order details</h3>
<ul>
<li><strong>Order number:</strong> %s</li>
<li><strong>Requester:</strong> %s</li>
<li><strong>Cost center:</strong> %s</li>
<li><strong>Order amount:</strong> %s</li>
</ul>
<p>This is an automated message.</p>
</body></html>`,
			action,
			details.InvoiceNumber, details.Supplier, details.InvoiceDate, models.FormatBRL(details.InvoiceAmount),
			details.OrderNumber, details.RequesterName, details.CostCenter, models.FormatBRL(details.OrderAmount),
		),
	}

	return client.send(ctx, msg)
}

func (client *NotifierClient) send(ctx context.Context, msg Message) error {
	url := fmt.Sprintf("%s/api/send", client.endpoint)

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return retry.DoRetry(ctx, func() error {
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		request.Header.Set("Content-Type", "application/json")

		response, err := client.httpClient.Do(request)
		if err != nil {
			return fmt.Errorf("failed to dispatch notification to: %s and the error is: %w", url, err)
		}

		defer func() {
			if err := response.Body.Close(); err != nil {
				customErr := fmt.Errorf("error closing response body: %v", err)
				logger.Log.Warn(customErr.Error())
			}
		}()

		if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusAccepted {
			return fmt.Errorf("failed to dispatch notification to: %s , answer was with status code %d", url, response.StatusCode)
		}

		if _, err = io.Copy(io.Discard, response.Body); err != nil {
			logger.Log.Warn("error draining response body", zap.Error(err))
		}

		logger.Log.Info("notification dispatched", zap.String("to", msg.To), zap.String("subject", msg.Subject))

		return nil
	}, retry.NotifierRetryConfig)
}
