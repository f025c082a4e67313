package service

import (
	"context"
	"fmt"
	"time"

	"garage-backend/internal/model"
	"garage-backend/internal/repository"

	"github.com/rs/zerolog"
)

// driverService implements DriverService.
type driverService struct {
	driverRepo repository.DriverRepository
	logger     zerolog.Logger
}

// NewDriverService creates a new driver service.
func NewDriverService(driverRepo repository.DriverRepository, logger zerolog.Logger) DriverService {
	return &driverService{
		driverRepo: driverRepo,
		logger:     logger.With().Str("service", "driver").Logger(),
	}
}

func (s *driverService) Create(ctx context.Context, req *model.DriverRequest) (*model.Driver, error) {
	if err := validateDriverRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	driver := &model.Driver{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		City:       req.City,
		Country:    req.Country,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	id, err := s.driverRepo.Create(ctx, driver)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create driver")
		return nil, err
	}
	driver.ID = id

	s.logger.Info().Int64("driver_id", id.Int64()).Msg("driver created")
	return driver, nil
}

func (s *driverService) GetByID(ctx context.Context, id model.DriverID) (*model.Driver, error) {
	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, fmt.Errorf("driver %d: %w", id.Int64(), model.ErrDriverNotFound)
	}
	return driver, nil
}

func (s *driverService) List(ctx context.Context, limit, offset int) ([]model.Driver, error) {
	return s.driverRepo.List(ctx, limit, offset)
}

func (s *driverService) Update(ctx context.Context, id model.DriverID, req *model.DriverRequest) (*model.Driver, error) {
	if err := validateDriverRequest(req); err != nil {
		return nil, err
	}

	driver := &model.Driver{
		ID:         id,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		City:       req.City,
		Country:    req.Country,
		UpdatedAt:  time.Now(),
	}

	updated, err := s.driverRepo.Update(ctx, driver)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("driver %d: %w", id.Int64(), model.ErrDriverNotFound)
	}

	return driver, nil
}

func (s *driverService) Delete(ctx context.Context, id model.DriverID) error {
	deleted, err := s.driverRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("driver %d: %w", id.Int64(), model.ErrDriverNotFound)
	}

	s.logger.Info().Int64("driver_id", id.Int64()).Msg("driver deleted")
	return nil
}

func validateDriverRequest(req *model.DriverRequest) error {
	if req == nil {
		return fmt.Errorf("driver request is nil: %w", model.ErrInvalidID)
	}
	if req.FirstName == "" || req.LastName == "" {
		return model.NewDomainError(model.ErrCodeValidation, "First and last name are required")
	}
	if req.Email == "" {
		return model.NewDomainError(model.ErrCodeValidation, "Email is required")
	}
	return nil
}
