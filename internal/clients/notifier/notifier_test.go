package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotifierClient(t *testing.T) {
	client := NewNotifierClient("http://localhost:9090", "http://localhost:8080", "finance@suaempresa.com")

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:9090", client.endpoint)
	assert.NotNil(t, client.httpClient)
}

func TestNotifierClient_SendValidationRequest(t *testing.T) {
	// Arrange
	var received Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewNotifierClient(server.URL, "http://app.local", "finance@suaempresa.com")

	order := &models.OrderDetails{
		Order:          models.Order{Number: "PED-1001-XYZ", Amount: 1500.50, CostCenter: "TI-INFRA"},
		RequesterName:  "Usuario Teste",
		RequesterEmail: "solicitante@suaempresa.com",
	}
	record := &models.ProcessingRecord{
		InvoiceNumber: "88765",
		InvoiceDate:   "25/10/2025",
		Supplier:      "SOLUCOES EM TI LTDA",
		Amount:        1500.50,
		Token:         "token-aaa",
	}

	// Act
	err := client.SendValidationRequest(context.Background(), order, record)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "solicitante@suaempresa.com", received.To)
	assert.Contains(t, received.Subject, "88765")
	assert.Contains(t, received.Subject, "PED-1001-XYZ")
	assert.Contains(t, received.HTML, "action=approve&token=token-aaa")
	assert.Contains(t, received.HTML, "action=reject&token=token-aaa")
	assert.Contains(t, received.HTML, "R$ 1.500,50")
	assert.Empty(t, received.Attachment)
}

func TestNotifierClient_SendFinanceNotice(t *testing.T) {
	testCases := []struct {
		name           string
		status         models.ProcessingStatus
		attachment     []byte
		expectedPrefix string
		wantAttachment bool
	}{
		{
			name:           "approved carries the invoice attachment",
			status:         models.ApprovedStatus,
			attachment:     []byte("%PDF-1.4 fake"),
			expectedPrefix: "[APPROVED]",
			wantAttachment: true,
		},
		{
			name:           "rejected has no attachment",
			status:         models.RejectedStatus,
			attachment:     []byte("%PDF-1.4 fake"),
			expectedPrefix: "[REJECTED]",
			wantAttachment: false,
		},
		{
			name:           "timeout has no attachment",
			status:         models.TimeoutStatus,
			attachment:     nil,
			expectedPrefix: "[TIMEOUT]",
			wantAttachment: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var received Message
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := NewNotifierClient(server.URL, "http://app.local", "finance@suaempresa.com")

			details := &models.RecordDetails{
				InvoiceNumber: "88765",
				Supplier:      "SOLUCOES EM TI LTDA",
				InvoiceAmount: 1500.50,
				Status:        tc.status,
				OrderNumber:   "PED-1001-XYZ",
				OrderAmount:   1500.50,
				CostCenter:    "TI-INFRA",
				RequesterName: "Usuario Teste",
				Attachment:    tc.attachment,
			}

			// Act
			err := client.SendFinanceNotice(context.Background(), details)

			// Assert
			assert.NoError(t, err)
			assert.Equal(t, "finance@suaempresa.com", received.To)
			assert.Contains(t, received.Subject, tc.expectedPrefix)
			assert.Contains(t, received.HTML, "R$ 1.500,50")
			if tc.wantAttachment {
				assert.Equal(t, tc.attachment, received.Attachment)
				assert.Equal(t, "NF_88765.pdf", received.Filename)
			} else {
				assert.Empty(t, received.Attachment)
			}
		})
	}
}

func TestNotifierClient_SendFinanceNotice_NonTerminalStatus(t *testing.T) {
	client := NewNotifierClient("http://localhost:9090", "http://app.local", "finance@suaempresa.com")

	err := client.SendFinanceNotice(context.Background(), &models.RecordDetails{Status: models.PendingStatus})

	assert.Error(t, err)
}

func TestNotifierClient_Send_GatewayError(t *testing.T) {
	// Arrange
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewNotifierClient(server.URL, "http://app.local", "finance@suaempresa.com")

	details := &models.RecordDetails{Status: models.TimeoutStatus, InvoiceNumber: "88765", OrderNumber: "PED-1001-XYZ"}

	// Act
	err := client.SendFinanceNotice(context.Background(), details)

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status code 502")
	// Конфиг ретраев нотификатора делает вторую попытку
	assert.Equal(t, 2, calls)
}
