package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/customerror"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderLookup - мок для OrderRepository в роли справочника заказов
type MockOrderLookup struct {
	mock.Mock
}

func (m *MockOrderLookup) GetByNumber(number string) (*models.OrderDetails, error) {
	args := m.Called(number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderDetails), args.Error(1)
}

// MockProcessingCreator - мок для создания записей обработки
type MockProcessingCreator struct {
	mock.Mock
}

func (m *MockProcessingCreator) Create(record *models.ProcessingRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func sampleOrderDetails() *models.OrderDetails {
	details := &models.OrderDetails{
		Order: models.Order{
			ID:          1,
			Number:      "PED-1001-XYZ",
			RequesterID: 1,
			CostCenter:  "TI-INFRA",
		},
		RequesterName:  "Usuario Teste",
		RequesterEmail: "usuario@example.com",
	}
	details.SetAmountAsFloat(150050)
	return details
}

func sampleRecord() *models.ProcessingRecord {
	return &models.ProcessingRecord{
		InvoiceNumber: "88765",
		InvoiceDate:   "25/10/2025",
		Supplier:      "SOLUCOES EM TI LTDA",
		Amount:        1500.50,
	}
}

func TestIntakeService_ProcessInvoice_Success(t *testing.T) {
	// Arrange
	mockOrders := new(MockOrderLookup)
	mockProcessing := new(MockProcessingCreator)
	mockNotifier := new(MockNotifierClient)
	service := NewIntakeService(mockOrders, mockProcessing, mockNotifier)

	order := sampleOrderDetails()
	record := sampleRecord()

	mockOrders.On("GetByNumber", "PED-1001-XYZ").Return(order, nil).Once()
	mockProcessing.On("Create", record).Return(nil).Once()
	mockNotifier.On("SendValidationRequest", mock.Anything, order, record).Return(nil).Once()

	// Act
	token, err := service.ProcessInvoice(context.Background(), record, "PED-1001-XYZ")

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, token, record.Token)
	assert.Equal(t, order.ID, record.OrderID)
	assert.False(t, record.SubmittedAt.IsZero())

	// Токен должен быть неугадываемым, а не порядковым номером
	_, err = uuid.Parse(token)
	assert.NoError(t, err)

	mockOrders.AssertExpectations(t)
	mockProcessing.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestIntakeService_ProcessInvoice_MissingOrderNumber(t *testing.T) {
	// Arrange
	mockOrders := new(MockOrderLookup)
	mockProcessing := new(MockProcessingCreator)
	mockNotifier := new(MockNotifierClient)
	service := NewIntakeService(mockOrders, mockProcessing, mockNotifier)

	// Act
	token, err := service.ProcessInvoice(context.Background(), sampleRecord(), "")

	// Assert
	assert.Empty(t, token)
	var customErr customerror.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, 422, customErr.GetHTTPCode())
	mockOrders.AssertNotCalled(t, "GetByNumber", mock.Anything)
	mockProcessing.AssertNotCalled(t, "Create", mock.Anything)
}

func TestIntakeService_ProcessInvoice_UnknownOrder(t *testing.T) {
	// Arrange
	mockOrders := new(MockOrderLookup)
	mockProcessing := new(MockProcessingCreator)
	mockNotifier := new(MockNotifierClient)
	service := NewIntakeService(mockOrders, mockProcessing, mockNotifier)

	mockOrders.On("GetByNumber", "PED-9999-XYZ").Return(nil, nil).Once()

	// Act
	token, err := service.ProcessInvoice(context.Background(), sampleRecord(), "PED-9999-XYZ")

	// Assert - счет без известного заказа не попадает в обработку
	assert.Empty(t, token)
	var customErr customerror.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, 422, customErr.GetHTTPCode())
	mockProcessing.AssertNotCalled(t, "Create", mock.Anything)
	mockNotifier.AssertNotCalled(t, "SendValidationRequest", mock.Anything, mock.Anything, mock.Anything)
	mockOrders.AssertExpectations(t)
}

func TestIntakeService_ProcessInvoice_EmailFailureKeepsRecord(t *testing.T) {
	// Arrange
	mockOrders := new(MockOrderLookup)
	mockProcessing := new(MockProcessingCreator)
	mockNotifier := new(MockNotifierClient)
	service := NewIntakeService(mockOrders, mockProcessing, mockNotifier)

	order := sampleOrderDetails()
	record := sampleRecord()

	mockOrders.On("GetByNumber", "PED-1001-XYZ").Return(order, nil).Once()
	mockProcessing.On("Create", record).Return(nil).Once()
	mockNotifier.On("SendValidationRequest", mock.Anything, order, record).
		Return(errors.New("gateway unavailable")).Once()

	// Act
	token, err := service.ProcessInvoice(context.Background(), record, "PED-1001-XYZ")

	// Assert - запись создана, дедлайн уже идет, токен возвращается вызывающему
	assert.ErrorIs(t, err, customerror.ErrNotificationFailed)
	assert.NotEmpty(t, token)
	mockOrders.AssertExpectations(t)
	mockProcessing.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestIntakeService_ProcessInvoice_CreateError(t *testing.T) {
	// Arrange
	mockOrders := new(MockOrderLookup)
	mockProcessing := new(MockProcessingCreator)
	mockNotifier := new(MockNotifierClient)
	service := NewIntakeService(mockOrders, mockProcessing, mockNotifier)

	order := sampleOrderDetails()
	record := sampleRecord()
	expectedError := customerror.NewUniqueViolationError("processing_records_validation_token_key")

	mockOrders.On("GetByNumber", "PED-1001-XYZ").Return(order, nil).Once()
	mockProcessing.On("Create", record).Return(expectedError).Once()

	// Act
	token, err := service.ProcessInvoice(context.Background(), record, "PED-1001-XYZ")

	// Assert
	assert.Empty(t, token)
	assert.ErrorIs(t, err, expectedError)
	mockNotifier.AssertNotCalled(t, "SendValidationRequest", mock.Anything, mock.Anything, mock.Anything)
	mockProcessing.AssertExpectations(t)
}
