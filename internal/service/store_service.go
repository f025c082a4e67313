package service

import (
	"context"
	"fmt"
	"time"

	"garage-backend/internal/model"
	"garage-backend/internal/repository"

	"github.com/rs/zerolog"
)

// storeService implements StoreService.
type storeService struct {
	storeRepo repository.StoreRepository
	logger    zerolog.Logger
}

// NewStoreService creates a new store service.
func NewStoreService(storeRepo repository.StoreRepository, logger zerolog.Logger) StoreService {
	return &storeService{
		storeRepo: storeRepo,
		logger:    logger.With().Str("service", "store").Logger(),
	}
}

func (s *storeService) Create(ctx context.Context, req *model.StoreRequest) (*model.Store, error) {
	if err := validateStoreRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	store := &model.Store{
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		Currency:  req.Currency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.storeRepo.Create(ctx, store)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create store")
		return nil, err
	}
	store.ID = id

	s.logger.Info().Int64("store_id", id.Int64()).Msg("store created")
	return store, nil
}

func (s *storeService) GetByID(ctx context.Context, id model.StoreID) (*model.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("store %d: %w", id.Int64(), model.ErrStoreNotFound)
	}
	return store, nil
}

func (s *storeService) List(ctx context.Context, limit, offset int) ([]model.Store, error) {
	return s.storeRepo.List(ctx, limit, offset)
}

func (s *storeService) Update(ctx context.Context, id model.StoreID, req *model.StoreRequest) (*model.Store, error) {
	if err := validateStoreRequest(req); err != nil {
		return nil, err
	}

	store := &model.Store{
		ID:        id,
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		Currency:  req.Currency,
		UpdatedAt: time.Now(),
	}

	updated, err := s.storeRepo.Update(ctx, store)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("store %d: %w", id.Int64(), model.ErrStoreNotFound)
	}

	return store, nil
}

func (s *storeService) Delete(ctx context.Context, id model.StoreID) error {
	deleted, err := s.storeRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("store %d: %w", id.Int64(), model.ErrStoreNotFound)
	}

	s.logger.Info().Int64("store_id", id.Int64()).Msg("store deleted")
	return nil
}

func validateStoreRequest(req *model.StoreRequest) error {
	if req == nil {
		return fmt.Errorf("store request is nil: %w", model.ErrInvalidID)
	}
	if req.Name == "" {
		return model.NewDomainError(model.ErrCodeValidation, "Store name is required")
	}
	if len(req.Currency) != 3 {
		return model.NewDomainError(model.ErrCodeValidation, "Currency must be a 3-letter code")
	}
	return nil
}
