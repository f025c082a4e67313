package service

import (
	"context"
	"fmt"
	"time"

	"garage-backend/internal/model"
	"garage-backend/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// SaveOrder atomically persists the order header, reconciles both line-item
// catalogs and upserts the optional booking, all inside one transaction. On
// success the returned aggregate reflects exactly what was written; nothing
// is read back outside the transaction.
func (s *orderService) SaveOrder(ctx context.Context, req *model.SaveOrderRequest) (*model.OrderAggregate, error) {
	order, serviceLines, localLines, booking, err := s.validateSaveRequest(req)
	if err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	// Roll back every prior step when any step fails; partial orders are
	// never visible.
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if order.ID.Valid() {
		if err = s.orderRepo.UpdateOrder(ctx, tx, order); err != nil {
			return nil, err
		}
	} else {
		var id model.OrderID
		if id, err = s.orderRepo.InsertOrder(ctx, tx, order); err != nil {
			return nil, err
		}
		order.ID = id
	}

	for i := range serviceLines {
		serviceLines[i].OrderID = order.ID
	}
	for i := range localLines {
		localLines[i].OrderID = order.ID
	}

	if err = s.orderRepo.UpsertServiceLines(ctx, tx, model.CatalogService, order.ID, serviceLines); err != nil {
		return nil, err
	}
	if err = s.orderRepo.UpsertServiceLines(ctx, tx, model.CatalogLocalService, order.ID, localLines); err != nil {
		return nil, err
	}

	if booking != nil {
		booking.OrderID = &order.ID
		if err = s.orderRepo.UpsertBooking(ctx, tx, booking); err != nil {
			return nil, err
		}
	}

	cost, err := sumLineTotals(order.Currency, serviceLines, localLines)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID.Int64()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Info().
		Int64("order_id", order.ID.Int64()).
		Int("service_lines", len(serviceLines)).
		Int("local_service_lines", len(localLines)).
		Int64("cost", cost.Amount()).
		Msg("order saved")

	return &model.OrderAggregate{
		Order:             *order,
		Cost:              cost,
		ServiceLines:      serviceLines,
		LocalServiceLines: localLines,
		Booking:           booking,
	}, nil
}

// LoadOrder reconstructs the aggregate from storage. A missing header is
// ErrOrderNotFound; a header with zero lines returns empty line lists.
func (s *orderService) LoadOrder(ctx context.Context, id model.OrderID) (*model.OrderAggregate, error) {
	order, serviceLines, localLines, booking, err := s.orderRepo.GetAggregate(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id.Int64()).Msg("failed to load order")
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", id.Int64(), model.ErrOrderNotFound)
	}

	cost, err := sumLineTotals(order.Currency, serviceLines, localLines)
	if err != nil {
		return nil, err
	}

	return &model.OrderAggregate{
		Order:             *order,
		Cost:              cost,
		ServiceLines:      serviceLines,
		LocalServiceLines: localLines,
		Booking:           booking,
	}, nil
}

// DeleteOrder removes the order's line items, detaches its booking and
// deletes the header in one transaction, returning the pre-deletion
// aggregate.
func (s *orderService) DeleteOrder(ctx context.Context, id model.OrderID) (*model.OrderAggregate, error) {
	aggregate, err := s.LoadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.DeleteServiceLines(ctx, tx, model.CatalogService, id); err != nil {
		return nil, err
	}
	if err = s.orderRepo.DeleteServiceLines(ctx, tx, model.CatalogLocalService, id); err != nil {
		return nil, err
	}
	if err = s.orderRepo.DetachBooking(ctx, tx, id); err != nil {
		return nil, err
	}
	if err = s.orderRepo.DeleteOrderHeader(ctx, tx, id); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", id.Int64()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}

	s.logger.Info().Int64("order_id", id.Int64()).Msg("order deleted")
	return aggregate, nil
}

// DeleteLine removes a single line item by its identifying pair.
func (s *orderService) DeleteLine(ctx context.Context, id model.OrderID, req *model.DeleteLineRequest) error {
	if req == nil {
		return fmt.Errorf("delete line request is nil: %w", model.ErrInvalidID)
	}
	serviceID, err := model.NewServiceID(req.ServiceID)
	if err != nil {
		return err
	}
	catalog := req.Catalog
	if catalog != model.CatalogService && catalog != model.CatalogLocalService {
		return fmt.Errorf("unknown catalog %q: %w", catalog, model.ErrInvalidStatus)
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to delete line: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.DeleteServiceLine(ctx, tx, catalog, id, serviceID); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", id.Int64()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to delete line: %w", err)
	}

	return nil
}

// validateSaveRequest checks the request before any write and converts it to
// domain types. The single-currency invariant is enforced here: the discount
// and every line item must carry the order's currency.
func (s *orderService) validateSaveRequest(req *model.SaveOrderRequest) (*model.Order, []model.ServiceLine, []model.ServiceLine, *model.Booking, error) {
	if req == nil {
		return nil, nil, nil, nil, fmt.Errorf("order request is nil: %w", model.ErrInvalidID)
	}

	status := model.OrderStatus(req.Status)
	if !status.Valid() {
		return nil, nil, nil, nil, fmt.Errorf("order status %q: %w", req.Status, model.ErrInvalidStatus)
	}

	driverID, err := model.NewDriverID(req.DriverID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	vehicleID, err := model.NewVehicleID(req.VehicleID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	storeID, err := model.NewStoreID(req.StoreID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	now := time.Now()
	order := &model.Order{
		DriverID:       driverID,
		VehicleID:      vehicleID,
		StoreID:        storeID,
		Notes:          req.Notes,
		SubmissionTime: req.SubmissionTime,
		PickupTime:     req.PickupTime,
		VATFree:        req.VATFree,
		Discount:       model.NewMoney(req.DiscountAmount, req.Currency),
		Currency:       req.Currency,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if req.OrderID != nil {
		id, err := model.NewOrderID(*req.OrderID)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		order.ID = id
	}
	if req.BookedBy != nil {
		employee, err := model.NewEmployeeID(*req.BookedBy)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		order.BookedBy = &employee
	}

	serviceLines, err := convertLines(req.ServiceLines, req.Currency)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	localLines, err := convertLines(req.LocalServiceLines, req.Currency)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var booking *model.Booking
	if req.Booking != nil {
		booking, err = convertBooking(req.Booking, now)
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}

	return order, serviceLines, localLines, booking, nil
}

// convertLines turns line requests into domain lines, enforcing the order
// currency and non-negative quantities.
func convertLines(reqs []model.ServiceLineRequest, currency string) ([]model.ServiceLine, error) {
	lines := make([]model.ServiceLine, 0, len(reqs))
	for i, req := range reqs {
		if req.Currency != currency {
			return nil, fmt.Errorf("line %d has currency %s, order has %s: %w",
				i, req.Currency, currency, model.ErrCurrencyMismatch)
		}
		if req.Quantity < 0 {
			return nil, fmt.Errorf("line %d: %w", i, model.ErrInvalidQuantity)
		}

		serviceID, err := model.NewServiceID(req.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}

		line := model.ServiceLine{
			ServiceID: serviceID,
			Name:      req.Name,
			Quantity:  req.Quantity,
			UnitCost:  model.NewMoney(req.UnitCostAmount, req.Currency),
			VATFree:   req.VATFree,
			Notes:     req.Notes,
		}
		if req.VariantID != nil {
			variant, err := model.NewVariantID(*req.VariantID)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i, err)
			}
			line.VariantID = &variant
		}

		// Each scheduled day is independent; day 3 alone is legal.
		for _, day := range req.Days {
			if day.Day < 1 || day.Day > 5 {
				return nil, fmt.Errorf("line %d day %d: %w", i, day.Day, model.ErrInvalidDay)
			}
			scheduled := model.ScheduledDay{
				Date:        day.Date,
				WorkMinutes: day.WorkMinutes,
			}
			if day.EmployeeID != nil {
				employee, err := model.NewEmployeeID(*day.EmployeeID)
				if err != nil {
					return nil, fmt.Errorf("line %d day %d: %w", i, day.Day, err)
				}
				scheduled.EmployeeID = &employee
			}
			line.Days[day.Day-1] = scheduled
		}

		lines = append(lines, line)
	}
	return lines, nil
}

// convertBooking turns a booking request into a domain booking.
func convertBooking(req *model.BookingRequest, now time.Time) (*model.Booking, error) {
	status := model.BookingStatus(req.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("booking status %q: %w", req.Status, model.ErrInvalidStatus)
	}

	booking := &model.Booking{
		RegistrationNumber: req.RegistrationNumber,
		Start:              req.Start,
		End:                req.End,
		Status:             status,
		SubmissionTime:     req.SubmissionTime,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if req.BookingID != nil {
		id, err := model.NewBookingID(*req.BookingID)
		if err != nil {
			return nil, err
		}
		booking.ID = id
	}
	if req.BookedBy != nil {
		employee, err := model.NewEmployeeID(*req.BookedBy)
		if err != nil {
			return nil, err
		}
		booking.BookedBy = &employee
	}

	return booking, nil
}

// sumLineTotals computes the order cost: the integer sum of every line's
// unit cost times quantity, in the order's currency. Zero lines cost zero.
func sumLineTotals(currency string, lineLists ...[]model.ServiceLine) (model.Money, error) {
	total := model.NewMoney(0, currency)
	for _, lines := range lineLists {
		for _, line := range lines {
			var err error
			total, err = total.Add(line.LineTotal())
			if err != nil {
				return model.Money{}, err
			}
		}
	}
	return total, nil
}
