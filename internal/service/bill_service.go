package service

import (
	"context"
	"fmt"
	"time"

	"garage-backend/internal/model"
	"garage-backend/internal/repository"

	"github.com/rs/zerolog"
)

// billService implements BillService.
type billService struct {
	billRepo  repository.BillRepository
	orderRepo repository.OrderRepository
	pool      repository.Querier
	logger    zerolog.Logger
}

// NewBillService creates a new bill service. pool is used for the
// non-transactional read path.
func NewBillService(
	billRepo repository.BillRepository,
	orderRepo repository.OrderRepository,
	pool repository.Querier,
	logger zerolog.Logger,
) BillService {
	return &billService{
		billRepo:  billRepo,
		orderRepo: orderRepo,
		pool:      pool,
		logger:    logger.With().Str("service", "bill").Logger(),
	}
}

// CreateBill creates a bill from a snapshot of driver details and a fixed
// set of orders, all inside one transaction. An unknown order id or a mixed
// currency set aborts the whole call; no partial bill is ever committed.
func (s *billService) CreateBill(ctx context.Context, req *model.CreateBillRequest) (*model.BillAggregate, error) {
	bill, orderIDs, err := s.validateCreateRequest(req)
	if err != nil {
		return nil, err
	}

	tx, err := s.billRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	summaries, err := s.billRepo.OrderSummaries(ctx, tx, orderIDs)
	if err != nil {
		return nil, err
	}
	if err = checkSummaries(summaries, orderIDs); err != nil {
		s.logger.Warn().Err(err).Int("order_count", len(orderIDs)).Msg("bill order validation failed")
		return nil, err
	}

	var billID model.BillID
	if billID, err = s.billRepo.InsertBill(ctx, tx, bill); err != nil {
		return nil, err
	}
	bill.ID = billID

	if err = s.billRepo.LinkOrders(ctx, tx, billID, orderIDs); err != nil {
		return nil, err
	}

	// Re-read the line items inside the same transaction so the returned
	// view matches exactly what was billed.
	rows, total, err := s.aggregateRows(ctx, tx, orderIDs, summaries[0].Discount.Currency())
	if err != nil {
		return nil, err
	}
	discount, err := sumDiscounts(summaries)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("bill_id", billID.Int64()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	s.logger.Info().
		Int64("bill_id", billID.Int64()).
		Int("order_count", len(orderIDs)).
		Int("row_count", len(rows)).
		Int64("total", total.Amount()).
		Msg("bill created")

	return &model.BillAggregate{
		Bill:     *bill,
		OrderIDs: orderIDs,
		Rows:     rows,
		Total:    total,
		Discount: discount,
	}, nil
}

// GetBill re-aggregates the bill from the orders currently linked to it.
// The order-row view is never cached.
func (s *billService) GetBill(ctx context.Context, id model.BillID) (*model.BillAggregate, error) {
	bill, err := s.billRepo.GetBill(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("bill_id", id.Int64()).Msg("failed to get bill")
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	if bill == nil {
		return nil, fmt.Errorf("bill %d: %w", id.Int64(), model.ErrBillNotFound)
	}

	orderIDs, err := s.billRepo.ListBillOrders(ctx, s.pool, id)
	if err != nil {
		return nil, err
	}

	summaries, err := s.billRepo.OrderSummaries(ctx, s.pool, orderIDs)
	if err != nil {
		return nil, err
	}

	currency := ""
	if len(summaries) > 0 {
		currency = summaries[0].Discount.Currency()
	}

	rows, total, err := s.aggregateRows(ctx, s.pool, orderIDs, currency)
	if err != nil {
		return nil, err
	}
	discount, err := sumDiscounts(summaries)
	if err != nil {
		return nil, err
	}

	return &model.BillAggregate{
		Bill:     *bill,
		OrderIDs: orderIDs,
		Rows:     rows,
		Total:    total,
		Discount: discount,
	}, nil
}

// DeleteBill removes the bill and its order links in one transaction. The
// linked orders are untouched.
func (s *billService) DeleteBill(ctx context.Context, id model.BillID) error {
	tx, err := s.billRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var deleted bool
	if deleted, err = s.billRepo.DeleteBill(ctx, tx, id); err != nil {
		return err
	}
	if !deleted {
		err = fmt.Errorf("bill %d: %w", id.Int64(), model.ErrBillNotFound)
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("bill_id", id.Int64()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	s.logger.Info().Int64("bill_id", id.Int64()).Msg("bill deleted")
	return nil
}

// aggregateRows builds the order-row view: two catalog-scoped queries over
// the full order-id set, folded into one row per line item. Catalog-service
// rows come first, then store-local rows, without a catalog tag — matching
// how bills have always rendered.
func (s *billService) aggregateRows(ctx context.Context, q repository.Querier, orderIDs []model.OrderID, currency string) ([]model.BillRow, model.Money, error) {
	serviceLines, err := s.orderRepo.ListServiceLines(ctx, q, model.CatalogService, orderIDs)
	if err != nil {
		return nil, model.Money{}, err
	}
	localLines, err := s.orderRepo.ListServiceLines(ctx, q, model.CatalogLocalService, orderIDs)
	if err != nil {
		return nil, model.Money{}, err
	}

	rows := make([]model.BillRow, 0, len(serviceLines)+len(localLines))
	total := model.NewMoney(0, currency)
	for _, line := range append(serviceLines, localLines...) {
		lineTotal := line.LineTotal()
		rows = append(rows, model.BillRow{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
			LineTotal: lineTotal,
		})
		if total, err = total.Add(lineTotal); err != nil {
			return nil, model.Money{}, err
		}
	}

	return rows, total, nil
}

// validateCreateRequest checks the request and converts it to domain types.
func (s *billService) validateCreateRequest(req *model.CreateBillRequest) (*model.Bill, []model.OrderID, error) {
	if req == nil {
		return nil, nil, fmt.Errorf("bill request is nil: %w", model.ErrInvalidID)
	}
	if len(req.OrderIDs) == 0 {
		return nil, nil, fmt.Errorf("bill must reference at least one order: %w", model.ErrInvalidID)
	}

	status := model.BillStatus(req.Status)
	if !status.Valid() {
		return nil, nil, fmt.Errorf("bill status %q: %w", req.Status, model.ErrInvalidStatus)
	}

	driverID, err := model.NewDriverID(req.DriverID)
	if err != nil {
		return nil, nil, err
	}

	orderIDs := make([]model.OrderID, 0, len(req.OrderIDs))
	seen := make(map[int64]bool, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		if seen[raw] {
			continue
		}
		seen[raw] = true
		id, err := model.NewOrderID(raw)
		if err != nil {
			return nil, nil, err
		}
		orderIDs = append(orderIDs, id)
	}

	paymentDate := req.BillingDate.AddDate(0, 0, req.PaymentDays)

	now := time.Now()
	bill := &model.Bill{
		Status:           status,
		BillingDate:      req.BillingDate,
		PaymentDate:      paymentDate,
		PaymentDays:      req.PaymentDays,
		DriverID:         driverID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		PostalCode:       req.PostalCode,
		City:             req.City,
		Country:          req.Country,
		CardNumber:       req.CardNumber,
		CardExpiry:       req.CardExpiry,
		CompanyReference: req.CompanyReference,
		OrgNumber:        req.OrgNumber,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if req.BookedBy != nil {
		employee, err := model.NewEmployeeID(*req.BookedBy)
		if err != nil {
			return nil, nil, err
		}
		bill.BookedBy = &employee
	}

	return bill, orderIDs, nil
}

// checkSummaries verifies every requested order exists and that the set
// shares a single currency. Mixed-currency bills are rejected before any
// write sticks.
func checkSummaries(summaries []model.OrderSummary, requested []model.OrderID) error {
	if len(summaries) != len(requested) {
		found := make(map[model.OrderID]bool, len(summaries))
		for _, summary := range summaries {
			found[summary.ID] = true
		}
		for _, id := range requested {
			if !found[id] {
				return fmt.Errorf("order %d: %w", id.Int64(), model.ErrOrderNotFound)
			}
		}
	}
	for _, summary := range summaries[1:] {
		if summary.Discount.Currency() != summaries[0].Discount.Currency() {
			return fmt.Errorf("orders %d and %d differ in currency: %w",
				summaries[0].ID.Int64(), summary.ID.Int64(), model.ErrCurrencyMismatch)
		}
	}
	return nil
}

// sumDiscounts totals the linked orders' discounts.
func sumDiscounts(summaries []model.OrderSummary) (model.Money, error) {
	if len(summaries) == 0 {
		return model.NewMoney(0, ""), nil
	}
	total := model.NewMoney(0, summaries[0].Discount.Currency())
	for _, summary := range summaries {
		var err error
		if total, err = total.Add(summary.Discount); err != nil {
			return model.Money{}, err
		}
	}
	return total, nil
}
