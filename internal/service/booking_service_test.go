package service

import (
	"context"
	"testing"
	"time"

	"garage-backend/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *model.Booking) (model.BookingID, error) {
	args := m.Called(ctx, booking)
	return args.Get(0).(model.BookingID), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id model.BookingID) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, limit, offset int) ([]model.Booking, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id model.BookingID, status model.BookingStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id model.BookingID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestBookingService_Create(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockBookingRepository)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Booking")).Return(model.BookingID(5), nil)

	svc := NewBookingService(mockRepo, logger)
	booking, err := svc.Create(ctx, &model.BookingRequest{
		RegistrationNumber: "ABC123",
		Start:              time.Now(),
		End:                time.Now().Add(24 * time.Hour),
		Status:             string(model.BookingStatusReserved),
		SubmissionTime:     time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, model.BookingID(5), booking.ID)
	assert.Nil(t, booking.OrderID)
	mockRepo.AssertExpectations(t)
}

func TestBookingService_Create_MissingRegistration(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockBookingRepository)
	svc := NewBookingService(mockRepo, logger)

	_, err := svc.Create(ctx, &model.BookingRequest{
		Status: string(model.BookingStatusReserved),
	})

	require.Error(t, err)
	assert.Equal(t, model.ErrCodeValidation, model.CodeOf(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_Create_InvalidStatus(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	svc := NewBookingService(new(MockBookingRepository), logger)

	_, err := svc.Create(ctx, &model.BookingRequest{
		RegistrationNumber: "ABC123",
		Status:             "Parked",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
}

func TestBookingService_GetByID_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockBookingRepository)
	mockRepo.On("GetByID", ctx, model.BookingID(99)).Return(nil, nil)

	svc := NewBookingService(mockRepo, logger)
	_, err := svc.GetByID(ctx, model.BookingID(99))

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrBookingNotFound)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		mockRepo.On("UpdateStatus", ctx, model.BookingID(5), model.BookingStatusReturned).Return(true, nil)

		svc := NewBookingService(mockRepo, logger)
		err := svc.UpdateStatus(ctx, model.BookingID(5), string(model.BookingStatusReturned))

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown status", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		svc := NewBookingService(mockRepo, logger)

		err := svc.UpdateStatus(ctx, model.BookingID(5), "Lost")

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidStatus)
		mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		mockRepo.On("UpdateStatus", ctx, model.BookingID(99), model.BookingStatusReturned).Return(false, nil)

		svc := NewBookingService(mockRepo, logger)
		err := svc.UpdateStatus(ctx, model.BookingID(99), string(model.BookingStatusReturned))

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrBookingNotFound)
	})
}

func TestBookingService_Delete_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockBookingRepository)
	mockRepo.On("Delete", ctx, model.BookingID(99)).Return(false, nil)

	svc := NewBookingService(mockRepo, logger)
	err := svc.Delete(ctx, model.BookingID(99))

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrBookingNotFound)
}
