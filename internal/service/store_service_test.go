package service

import (
	"context"
	"testing"

	"garage-backend/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStoreRepository is a mock implementation of StoreRepository.
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Create(ctx context.Context, store *model.Store) (model.StoreID, error) {
	args := m.Called(ctx, store)
	return args.Get(0).(model.StoreID), args.Error(1)
}

func (m *MockStoreRepository) GetByID(ctx context.Context, id model.StoreID) (*model.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) List(ctx context.Context, limit, offset int) ([]model.Store, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Store), args.Error(1)
}

func (m *MockStoreRepository) Update(ctx context.Context, store *model.Store) (bool, error) {
	args := m.Called(ctx, store)
	return args.Bool(0), args.Error(1)
}

func (m *MockStoreRepository) Delete(ctx context.Context, id model.StoreID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestStoreService_Create(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockStoreRepository)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Store")).Return(model.StoreID(3), nil)

	svc := NewStoreService(mockRepo, logger)
	store, err := svc.Create(ctx, &model.StoreRequest{
		Name:     "Södermalm Garage",
		Address:  "Hornsgatan 4",
		Currency: "SEK",
	})

	require.NoError(t, err)
	assert.Equal(t, model.StoreID(3), store.ID)
	assert.Equal(t, "SEK", store.Currency)
	mockRepo.AssertExpectations(t)
}

func TestStoreService_Create_ValidationErrors(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *model.StoreRequest
	}{
		{
			name: "Missing name",
			req:  &model.StoreRequest{Currency: "SEK"},
		},
		{
			name: "Bad currency code",
			req:  &model.StoreRequest{Name: "Garage", Currency: "KRONOR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockStoreRepository)
			svc := NewStoreService(mockRepo, logger)

			_, err := svc.Create(ctx, tt.req)

			require.Error(t, err)
			assert.Equal(t, model.ErrCodeValidation, model.CodeOf(err))
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestStoreService_Update_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockStoreRepository)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*model.Store")).Return(false, nil)

	svc := NewStoreService(mockRepo, logger)
	_, err := svc.Update(ctx, model.StoreID(99), &model.StoreRequest{Name: "Garage", Currency: "SEK"})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrStoreNotFound)
}

func TestStoreService_Delete(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockStoreRepository)
	mockRepo.On("Delete", ctx, model.StoreID(3)).Return(true, nil)

	svc := NewStoreService(mockRepo, logger)
	require.NoError(t, svc.Delete(ctx, model.StoreID(3)))
	mockRepo.AssertExpectations(t)
}
