package repository

import (
	"testing"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/customerror"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_Create_Success(t *testing.T) {
	// Arrange
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	dbObj := NewTestDB(mock)
	repo := NewOrderRepository(dbObj)

	order := &models.Order{
		Number:      "PED-1001-XYZ",
		RequesterID: 1,
		Amount:      1500.50,
		CostCenter:  "TI-INFRA",
	}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("PED-1001-XYZ", 1, int64(150050), "TI-INFRA").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(3))

	// Act
	err = repo.Create(order)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 3, order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_DuplicateNumber(t *testing.T) {
	// Arrange
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	dbObj := NewTestDB(mock)
	repo := NewOrderRepository(dbObj)

	order := &models.Order{Number: "PED-1001-XYZ", RequesterID: 1}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("PED-1001-XYZ", 1, int64(0), "").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "orders_order_number_key"})

	// Act
	err = repo.Create(order)

	// Assert
	var uniqueErr *customerror.UniqueViolationError
	assert.ErrorAs(t, err, &uniqueErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_UnknownRequester(t *testing.T) {
	// Arrange
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	dbObj := NewTestDB(mock)
	repo := NewOrderRepository(dbObj)

	order := &models.Order{Number: "PED-1003-QQQ", RequesterID: 42}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("PED-1003-QQQ", 42, int64(0), "").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "orders_requester_id_fkey"})

	// Act
	err = repo.Create(order)

	// Assert
	var preconditionErr *customerror.PreconditionFailedError
	assert.ErrorAs(t, err, &preconditionErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByNumber_Success(t *testing.T) {
	// Arrange
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	dbObj := NewTestDB(mock)
	repo := NewOrderRepository(dbObj)

	rows := pgxmock.NewRows([]string{"id", "order_number", "requester_id", "amount", "cost_center", "name", "email"}).
		AddRow(3, "PED-1001-XYZ", 1, int64(150050), "TI-INFRA", "Usuario Teste", "solicitante@suaempresa.com")

	mock.ExpectQuery("SELECT o.id, o.order_number").
		WithArgs("PED-1001-XYZ").
		WillReturnRows(rows)

	// Act
	details, err := repo.GetByNumber("PED-1001-XYZ")

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, 3, details.ID)
	assert.Equal(t, float32(1500.50), details.Amount)
	assert.Equal(t, "TI-INFRA", details.CostCenter)
	assert.Equal(t, "Usuario Teste", details.RequesterName)
	assert.Equal(t, "solicitante@suaempresa.com", details.RequesterEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByNumber_NotFound(t *testing.T) {
	// Arrange
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	dbObj := NewTestDB(mock)
	repo := NewOrderRepository(dbObj)

	mock.ExpectQuery("SELECT o.id, o.order_number").
		WithArgs("PED-9999-NOPE").
		WillReturnError(pgx.ErrNoRows)

	// Act
	details, err := repo.GetByNumber("PED-9999-NOPE")

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, details)
	assert.NoError(t, mock.ExpectationsWereMet())
}
