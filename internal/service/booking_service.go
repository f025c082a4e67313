package service

import (
	"context"
	"fmt"
	"time"

	"garage-backend/internal/model"
	"garage-backend/internal/repository"

	"github.com/rs/zerolog"
)

// bookingService implements BookingService for walk-in rentals. Bookings
// attached to orders are managed through the order service.
type bookingService struct {
	bookingRepo repository.BookingRepository
	logger      zerolog.Logger
}

// NewBookingService creates a new booking service.
func NewBookingService(bookingRepo repository.BookingRepository, logger zerolog.Logger) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		logger:      logger.With().Str("service", "booking").Logger(),
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if req == nil {
		return nil, fmt.Errorf("booking request is nil: %w", model.ErrInvalidID)
	}
	if req.RegistrationNumber == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Registration number is required")
	}

	booking, err := convertBooking(req, time.Now())
	if err != nil {
		return nil, err
	}

	id, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create booking")
		return nil, err
	}
	booking.ID = id

	s.logger.Info().Int64("booking_id", id.Int64()).Msg("booking created")
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id model.BookingID) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d: %w", id.Int64(), model.ErrBookingNotFound)
	}
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, limit, offset int) ([]model.Booking, error) {
	return s.bookingRepo.List(ctx, limit, offset)
}

func (s *bookingService) UpdateStatus(ctx context.Context, id model.BookingID, status string) error {
	bookingStatus := model.BookingStatus(status)
	if !bookingStatus.Valid() {
		return fmt.Errorf("booking status %q: %w", status, model.ErrInvalidStatus)
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, id, bookingStatus)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("booking %d: %w", id.Int64(), model.ErrBookingNotFound)
	}
	return nil
}

func (s *bookingService) Delete(ctx context.Context, id model.BookingID) error {
	deleted, err := s.bookingRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("booking %d: %w", id.Int64(), model.ErrBookingNotFound)
	}

	s.logger.Info().Int64("booking_id", id.Int64()).Msg("booking deleted")
	return nil
}
