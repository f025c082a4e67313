package service

import (
	"context"
	"testing"
	"time"

	"garage-backend/internal/model"
	"garage-backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) InsertOrder(ctx context.Context, tx pgx.Tx, order *model.Order) (model.OrderID, error) {
	args := m.Called(ctx, tx, order)
	return args.Get(0).(model.OrderID), args.Error(1)
}

func (m *MockOrderRepository) UpdateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpsertServiceLines(ctx context.Context, tx pgx.Tx, catalog model.Catalog, orderID model.OrderID, lines []model.ServiceLine) error {
	args := m.Called(ctx, tx, catalog, orderID, lines)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteServiceLine(ctx context.Context, tx pgx.Tx, catalog model.Catalog, orderID model.OrderID, serviceID model.ServiceID) error {
	args := m.Called(ctx, tx, catalog, orderID, serviceID)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteServiceLines(ctx context.Context, tx pgx.Tx, catalog model.Catalog, orderID model.OrderID) error {
	args := m.Called(ctx, tx, catalog, orderID)
	return args.Error(0)
}

func (m *MockOrderRepository) ListServiceLines(ctx context.Context, q repository.Querier, catalog model.Catalog, orderIDs []model.OrderID) ([]model.ServiceLine, error) {
	args := m.Called(ctx, q, catalog, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ServiceLine), args.Error(1)
}

func (m *MockOrderRepository) UpsertBooking(ctx context.Context, tx pgx.Tx, booking *model.Booking) error {
	args := m.Called(ctx, tx, booking)
	return args.Error(0)
}

func (m *MockOrderRepository) DetachBooking(ctx context.Context, tx pgx.Tx, orderID model.OrderID) error {
	args := m.Called(ctx, tx, orderID)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteOrderHeader(ctx context.Context, tx pgx.Tx, orderID model.OrderID) error {
	args := m.Called(ctx, tx, orderID)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAggregate(ctx context.Context, orderID model.OrderID) (*model.Order, []model.ServiceLine, []model.ServiceLine, *model.Booking, error) {
	args := m.Called(ctx, orderID)

	var order *model.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*model.Order)
	}
	var serviceLines, localLines []model.ServiceLine
	if args.Get(1) != nil {
		serviceLines = args.Get(1).([]model.ServiceLine)
	}
	if args.Get(2) != nil {
		localLines = args.Get(2).([]model.ServiceLine)
	}
	var booking *model.Booking
	if args.Get(3) != nil {
		booking = args.Get(3).(*model.Booking)
	}
	return order, serviceLines, localLines, booking, args.Error(4)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

func validSaveRequest() *model.SaveOrderRequest {
	return &model.SaveOrderRequest{
		DriverID:       1,
		VehicleID:      2,
		StoreID:        3,
		SubmissionTime: time.Now(),
		PickupTime:     time.Now().Add(48 * time.Hour),
		DiscountAmount: 0,
		Currency:       "SEK",
		Status:         string(model.OrderStatusPending),
		ServiceLines: []model.ServiceLineRequest{
			{ServiceID: 10, Name: "Oil change", Quantity: 1, UnitCostAmount: 49900, Currency: "SEK"},
			{ServiceID: 11, Name: "Tyre rotation", Quantity: 4, UnitCostAmount: 15000, Currency: "SEK"},
		},
		LocalServiceLines: []model.ServiceLineRequest{
			{ServiceID: 20, Name: "Courtesy wash", Quantity: 0, UnitCostAmount: 9900, Currency: "SEK"},
		},
	}
}

func TestOrderService_SaveOrder_Create(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockOrderRepository)
	mockTx := new(MockTx)

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("InsertOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(model.OrderID(42), nil)
	mockRepo.On("UpsertServiceLines", ctx, mockTx, model.CatalogService, model.OrderID(42), mock.Anything).Return(nil)
	mockRepo.On("UpsertServiceLines", ctx, mockTx, model.CatalogLocalService, model.OrderID(42), mock.Anything).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	svc := NewOrderService(mockRepo, logger)
	aggregate, err := svc.SaveOrder(ctx, validSaveRequest())

	require.NoError(t, err)
	require.NotNil(t, aggregate)
	assert.Equal(t, model.OrderID(42), aggregate.Order.ID)

	// 49900 + 4*15000 + 0*9900
	assert.Equal(t, int64(109900), aggregate.Cost.Amount())
	assert.Equal(t, "SEK", aggregate.Cost.Currency())

	// Every returned line carries the generated order id.
	for _, line := range aggregate.ServiceLines {
		assert.Equal(t, model.OrderID(42), line.OrderID)
	}
	for _, line := range aggregate.LocalServiceLines {
		assert.Equal(t, model.OrderID(42), line.OrderID)
	}

	assert.True(t, mockTx.committed)
	assert.False(t, mockTx.rolledBack)
	mockRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestOrderService_SaveOrder_Update(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockOrderRepository)
	mockTx := new(MockTx)

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("UpdateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockRepo.On("UpsertServiceLines", ctx, mockTx, model.CatalogService, model.OrderID(7), mock.Anything).Return(nil)
	mockRepo.On("UpsertServiceLines", ctx, mockTx, model.CatalogLocalService, model.OrderID(7), mock.Anything).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	req := validSaveRequest()
	orderID := int64(7)
	req.OrderID = &orderID

	svc := NewOrderService(mockRepo, logger)
	aggregate, err := svc.SaveOrder(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, model.OrderID(7), aggregate.Order.ID)
	mockRepo.AssertNotCalled(t, "InsertOrder", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_SaveOrder_WithBooking(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockOrderRepository)
	mockTx := new(MockTx)

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("InsertOrder", ctx, mockTx, mock.Anything).Return(model.OrderID(42), nil)
	mockRepo.On("UpsertServiceLines", ctx, mockTx, mock.Anything, model.OrderID(42), mock.Anything).Return(nil).Twice()
	mockRepo.On("UpsertBooking", ctx, mockTx, mock.AnythingOfType("*model.Booking")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	req := validSaveRequest()
	req.Booking = &model.BookingRequest{
		RegistrationNumber: "ABC123",
		Start:              time.Now(),
		End:                time.Now().Add(24 * time.Hour),
		Status:             string(model.BookingStatusReserved),
		SubmissionTime:     time.Now(),
	}

	svc := NewOrderService(mockRepo, logger)
	aggregate, err := svc.SaveOrder(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, aggregate.Booking)
	require.NotNil(t, aggregate.Booking.OrderID)
	assert.Equal(t, model.OrderID(42), *aggregate.Booking.OrderID)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_SaveOrder_CurrencyMismatch(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockOrderRepository)

	req := validSaveRequest()
	req.ServiceLines[1].Currency = "EUR"

	svc := NewOrderService(mockRepo, logger)
	aggregate, err := svc.SaveOrder(ctx, req)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrCurrencyMismatch)
	assert.Nil(t, aggregate)

	// Validation fails before any transaction starts.
	mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestOrderService_SaveOrder_ValidationErrors(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name     string
		mutate   func(*model.SaveOrderRequest)
		expected error
	}{
		{
			name:     "Unknown status",
			mutate:   func(r *model.SaveOrderRequest) { r.Status = "Wishful" },
			expected: model.ErrInvalidStatus,
		},
		{
			name:     "Negative quantity",
			mutate:   func(r *model.SaveOrderRequest) { r.ServiceLines[0].Quantity = -1 },
			expected: model.ErrInvalidQuantity,
		},
		{
			name: "Day out of range",
			mutate: func(r *model.SaveOrderRequest) {
				r.ServiceLines[0].Days = []model.ScheduledDayRequest{{Day: 6}}
			},
			expected: model.ErrInvalidDay,
		},
		{
			name:     "Zero driver id",
			mutate:   func(r *model.SaveOrderRequest) { r.DriverID = 0 },
			expected: model.ErrInvalidID,
		},
		{
			name:     "Zero service id",
			mutate:   func(r *model.SaveOrderRequest) { r.ServiceLines[0].ServiceID = 0 },
			expected: model.ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockOrderRepository)
			svc := NewOrderService(mockRepo, logger)

			req := validSaveRequest()
			tt.mutate(req)

			_, err := svc.SaveOrder(ctx, req)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
			mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
		})
	}
}

func TestOrderService_SaveOrder_RollbackOnFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockOrderRepository)
	mockTx := new(MockTx)

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("InsertOrder", ctx, mockTx, mock.Anything).Return(model.OrderID(42), nil)
	mockRepo.On("UpsertServiceLines", ctx, mockTx, model.CatalogService, model.OrderID(42), mock.Anything).
		Return(assert.AnError)
	mockTx.On("Rollback", ctx).Return(nil)

	svc := NewOrderService(mockRepo, logger)
	aggregate, err := svc.SaveOrder(ctx, validSaveRequest())

	require.Error(t, err)
	assert.Nil(t, aggregate)
	assert.True(t, mockTx.rolledBack)
	assert.False(t, mockTx.committed)
	mockTx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestOrderService_LoadOrder(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	order := &model.Order{
		ID:       model.OrderID(42),
		Currency: "SEK",
		Status:   model.OrderStatusPending,
	}
	serviceLines := []model.ServiceLine{
		{OrderID: 42, ServiceID: 10, Quantity: 2, UnitCost: model.NewMoney(10000, "SEK")},
	}
	localLines := []model.ServiceLine{
		{OrderID: 42, ServiceID: 20, Quantity: 1, UnitCost: model.NewMoney(5000, "SEK")},
	}

	mockRepo := new(MockOrderRepository)
	mockRepo.On("GetAggregate", ctx, model.OrderID(42)).
		Return(order, serviceLines, localLines, nil, nil)

	svc := NewOrderService(mockRepo, logger)
	aggregate, err := svc.LoadOrder(ctx, model.OrderID(42))

	require.NoError(t, err)
	assert.Equal(t, model.OrderID(42), aggregate.Order.ID)
	assert.Equal(t, int64(25000), aggregate.Cost.Amount())
	assert.Len(t, aggregate.ServiceLines, 1)
	assert.Len(t, aggregate.LocalServiceLines, 1)
	assert.Nil(t, aggregate.Booking)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_LoadOrder_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockOrderRepository)
	mockRepo.On("GetAggregate", ctx, model.OrderID(99)).
		Return(nil, nil, nil, nil, nil)

	svc := NewOrderService(mockRepo, logger)
	aggregate, err := svc.LoadOrder(ctx, model.OrderID(99))

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
	assert.Nil(t, aggregate)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	order := &model.Order{ID: model.OrderID(42), Currency: "SEK", Status: model.OrderStatusCompleted}

	mockRepo := new(MockOrderRepository)
	mockTx := new(MockTx)

	mockRepo.On("GetAggregate", ctx, model.OrderID(42)).
		Return(order, nil, nil, nil, nil)
	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("DeleteServiceLines", ctx, mockTx, model.CatalogService, model.OrderID(42)).Return(nil)
	mockRepo.On("DeleteServiceLines", ctx, mockTx, model.CatalogLocalService, model.OrderID(42)).Return(nil)
	mockRepo.On("DetachBooking", ctx, mockTx, model.OrderID(42)).Return(nil)
	mockRepo.On("DeleteOrderHeader", ctx, mockTx, model.OrderID(42)).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	svc := NewOrderService(mockRepo, logger)
	aggregate, err := svc.DeleteOrder(ctx, model.OrderID(42))

	require.NoError(t, err)
	assert.Equal(t, model.OrderID(42), aggregate.Order.ID)
	assert.True(t, mockTx.committed)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_DeleteOrder_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockOrderRepository)
	mockRepo.On("GetAggregate", ctx, model.OrderID(99)).
		Return(nil, nil, nil, nil, nil)

	svc := NewOrderService(mockRepo, logger)
	_, err := svc.DeleteOrder(ctx, model.OrderID(99))

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
	mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestOrderService_DeleteOrder_RollbackOnFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	order := &model.Order{ID: model.OrderID(42), Currency: "SEK", Status: model.OrderStatusCompleted}

	mockRepo := new(MockOrderRepository)
	mockTx := new(MockTx)

	mockRepo.On("GetAggregate", ctx, model.OrderID(42)).
		Return(order, nil, nil, nil, nil)
	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("DeleteServiceLines", ctx, mockTx, model.CatalogService, model.OrderID(42)).Return(nil)
	mockRepo.On("DeleteServiceLines", ctx, mockTx, model.CatalogLocalService, model.OrderID(42)).Return(nil)
	mockRepo.On("DetachBooking", ctx, mockTx, model.OrderID(42)).Return(assert.AnError)
	mockTx.On("Rollback", ctx).Return(nil)

	svc := NewOrderService(mockRepo, logger)
	_, err := svc.DeleteOrder(ctx, model.OrderID(42))

	require.Error(t, err)
	assert.True(t, mockTx.rolledBack)
	mockTx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestOrderService_DeleteLine(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockOrderRepository)
	mockTx := new(MockTx)

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("DeleteServiceLine", ctx, mockTx, model.CatalogLocalService, model.OrderID(42), model.ServiceID(20)).
		Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	svc := NewOrderService(mockRepo, logger)
	err := svc.DeleteLine(ctx, model.OrderID(42), &model.DeleteLineRequest{
		Catalog:   model.CatalogLocalService,
		ServiceID: 20,
	})

	require.NoError(t, err)
	assert.True(t, mockTx.committed)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_DeleteLine_UnknownCatalog(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockOrderRepository)
	svc := NewOrderService(mockRepo, logger)

	err := svc.DeleteLine(ctx, model.OrderID(42), &model.DeleteLineRequest{
		Catalog:   "accessories",
		ServiceID: 20,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
	mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestSumLineTotals(t *testing.T) {
	tests := []struct {
		name     string
		lines    []model.ServiceLine
		expected int64
	}{
		{
			name:     "No lines",
			lines:    nil,
			expected: 0,
		},
		{
			name: "Mixed quantities",
			lines: []model.ServiceLine{
				{Quantity: 2, UnitCost: model.NewMoney(1000, "SEK")},
				{Quantity: 0, UnitCost: model.NewMoney(9999, "SEK")},
				{Quantity: 1, UnitCost: model.NewMoney(500, "SEK")},
			},
			expected: 2500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := sumLineTotals("SEK", tt.lines)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, total.Amount())
			assert.Equal(t, "SEK", total.Currency())
		})
	}
}
