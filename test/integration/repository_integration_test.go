package integration

import (
	"context"
	"testing"
	"time"

	"garage-backend/internal/model"
	"garage-backend/internal/repository"
	"garage-backend/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineRequest(serviceID int64, name string, quantity int, unitCost int64) model.ServiceLineRequest {
	return model.ServiceLineRequest{
		ServiceID:      serviceID,
		Name:           name,
		Quantity:       quantity,
		UnitCostAmount: unitCost,
		Currency:       "SEK",
	}
}

func saveRequest(driverID, storeID int64) *model.SaveOrderRequest {
	return &model.SaveOrderRequest{
		DriverID:       driverID,
		VehicleID:      1,
		StoreID:        storeID,
		SubmissionTime: time.Now().UTC(),
		PickupTime:     time.Now().UTC().Add(48 * time.Hour),
		DiscountAmount: 1000,
		Currency:       "SEK",
		Status:         string(model.OrderStatusPending),
		ServiceLines: []model.ServiceLineRequest{
			lineRequest(10, "Oil change", 1, 49900),
			lineRequest(11, "Tyre rotation", 4, 15000),
		},
		LocalServiceLines: []model.ServiceLineRequest{
			lineRequest(20, "Courtesy wash", 1, 9900),
		},
	}
}

func countRows(t *testing.T, testDB *TestDB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, testDB.Pool.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

func TestOrderService_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	orderService := service.NewOrderService(orderRepo, logger)

	ctx := context.Background()

	t.Run("Save and load roundtrip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		driverID, storeID := SeedReferenceData(t, testDB.Pool)

		req := saveRequest(driverID, storeID)
		day3 := time.Date(2026, 9, 3, 8, 0, 0, 0, time.UTC)
		workMinutes := 90
		req.ServiceLines[0].Days = []model.ScheduledDayRequest{
			{Day: 3, Date: &day3, WorkMinutes: &workMinutes},
		}
		req.Booking = &model.BookingRequest{
			RegistrationNumber: "ABC123",
			Start:              time.Now().UTC(),
			End:                time.Now().UTC().Add(48 * time.Hour),
			Status:             string(model.BookingStatusReserved),
			SubmissionTime:     time.Now().UTC(),
		}

		saved, err := orderService.SaveOrder(ctx, req)
		require.NoError(t, err)
		require.True(t, saved.Order.ID.Valid())

		// 49900 + 4*15000 + 9900
		assert.Equal(t, int64(119800), saved.Cost.Amount())

		loaded, err := orderService.LoadOrder(ctx, saved.Order.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.Cost.Amount(), loaded.Cost.Amount())
		assert.Len(t, loaded.ServiceLines, 2)
		assert.Len(t, loaded.LocalServiceLines, 1)
		require.NotNil(t, loaded.Booking)
		assert.Equal(t, "ABC123", loaded.Booking.RegistrationNumber)

		// Only day 3 of the first line is scheduled.
		var oilChange model.ServiceLine
		for _, line := range loaded.ServiceLines {
			if line.ServiceID == 10 {
				oilChange = line
			}
		}
		assert.False(t, oilChange.Days[0].IsSet())
		require.True(t, oilChange.Days[2].IsSet())
		assert.Equal(t, day3, oilChange.Days[2].Date.UTC())
		require.NotNil(t, oilChange.Days[2].WorkMinutes)
		assert.Equal(t, 90, *oilChange.Days[2].WorkMinutes)
	})

	t.Run("Resubmission updates in place without duplicating", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		driverID, storeID := SeedReferenceData(t, testDB.Pool)

		saved, err := orderService.SaveOrder(ctx, saveRequest(driverID, storeID))
		require.NoError(t, err)

		// Same lines again, one price changed, plus a new line.
		again := saveRequest(driverID, storeID)
		orderID := saved.Order.ID.Int64()
		again.OrderID = &orderID
		again.ServiceLines[0].UnitCostAmount = 59900
		again.ServiceLines = append(again.ServiceLines, lineRequest(12, "Brake check", 1, 30000))

		updated, err := orderService.SaveOrder(ctx, again)
		require.NoError(t, err)
		assert.Equal(t, saved.Order.ID, updated.Order.ID)

		assert.Equal(t, 3, countRows(t, testDB,
			"SELECT COUNT(*) FROM order_services WHERE order_id = $1", orderID))
		assert.Equal(t, 1, countRows(t, testDB,
			"SELECT COUNT(*) FROM order_local_services WHERE order_id = $1", orderID))

		loaded, err := orderService.LoadOrder(ctx, saved.Order.ID)
		require.NoError(t, err)
		// 59900 + 4*15000 + 30000 + 9900
		assert.Equal(t, int64(159800), loaded.Cost.Amount())
	})

	t.Run("DeleteLine removes one pair only", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		driverID, storeID := SeedReferenceData(t, testDB.Pool)

		saved, err := orderService.SaveOrder(ctx, saveRequest(driverID, storeID))
		require.NoError(t, err)

		err = orderService.DeleteLine(ctx, saved.Order.ID, &model.DeleteLineRequest{
			Catalog:   model.CatalogService,
			ServiceID: 11,
		})
		require.NoError(t, err)

		loaded, err := orderService.LoadOrder(ctx, saved.Order.ID)
		require.NoError(t, err)
		assert.Len(t, loaded.ServiceLines, 1)
		assert.Equal(t, model.ServiceID(10), loaded.ServiceLines[0].ServiceID)
		assert.Len(t, loaded.LocalServiceLines, 1)
		// 49900 + 9900
		assert.Equal(t, int64(59800), loaded.Cost.Amount())
	})

	t.Run("Delete removes order but detaches booking", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		driverID, storeID := SeedReferenceData(t, testDB.Pool)

		req := saveRequest(driverID, storeID)
		req.Booking = &model.BookingRequest{
			RegistrationNumber: "XYZ789",
			Start:              time.Now().UTC(),
			End:                time.Now().UTC().Add(24 * time.Hour),
			Status:             string(model.BookingStatusReserved),
			SubmissionTime:     time.Now().UTC(),
		}

		saved, err := orderService.SaveOrder(ctx, req)
		require.NoError(t, err)
		orderID := saved.Order.ID.Int64()

		deleted, err := orderService.DeleteOrder(ctx, saved.Order.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.Order.ID, deleted.Order.ID)
		assert.Len(t, deleted.ServiceLines, 2)

		_, err = orderService.LoadOrder(ctx, saved.Order.ID)
		assert.ErrorIs(t, err, model.ErrOrderNotFound)

		assert.Equal(t, 0, countRows(t, testDB,
			"SELECT COUNT(*) FROM order_services WHERE order_id = $1", orderID))
		assert.Equal(t, 0, countRows(t, testDB,
			"SELECT COUNT(*) FROM order_local_services WHERE order_id = $1", orderID))

		// The booking survives as a walk-in rental with no order link.
		assert.Equal(t, 1, countRows(t, testDB,
			"SELECT COUNT(*) FROM rent_car_bookings WHERE registration_number = 'XYZ789' AND order_id IS NULL"))
	})

	t.Run("Load of unknown order is not found", func(t *testing.T) {
		_, err := orderService.LoadOrder(ctx, model.OrderID(987654))
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})
}

func TestBillService_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	billRepo := repository.NewBillRepository(testDB.Pool, logger)
	orderService := service.NewOrderService(orderRepo, logger)
	billService := service.NewBillService(billRepo, orderRepo, testDB.Pool, logger)

	ctx := context.Background()

	billRequest := func(driverID int64, orderIDs ...int64) *model.CreateBillRequest {
		return &model.CreateBillRequest{
			OrderIDs:    orderIDs,
			Status:      string(model.BillStatusDraft),
			BillingDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			PaymentDays: 30,
			DriverID:    driverID,
			FirstName:   "Eva",
			LastName:    "Lind",
			Email:       "eva@example.com",
		}
	}

	t.Run("Create aggregates rows across orders", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		driverID, storeID := SeedReferenceData(t, testDB.Pool)

		first, err := orderService.SaveOrder(ctx, saveRequest(driverID, storeID))
		require.NoError(t, err)

		second := saveRequest(driverID, storeID)
		second.DiscountAmount = 500
		second.ServiceLines = []model.ServiceLineRequest{lineRequest(30, "Brake pads", 2, 80000)}
		second.LocalServiceLines = nil
		secondSaved, err := orderService.SaveOrder(ctx, second)
		require.NoError(t, err)

		aggregate, err := billService.CreateBill(ctx,
			billRequest(driverID, first.Order.ID.Int64(), secondSaved.Order.ID.Int64()))
		require.NoError(t, err)

		// Two catalog lines and one local line from the first order, one
		// catalog line from the second.
		require.Len(t, aggregate.Rows, 4)

		// first: 49900 + 60000 + 9900, second: 160000
		assert.Equal(t, int64(279800), aggregate.Total.Amount())
		assert.Equal(t, int64(1500), aggregate.Discount.Amount())
		assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), aggregate.Bill.PaymentDate.UTC())

		assert.Equal(t, 2, countRows(t, testDB,
			"SELECT COUNT(*) FROM bill_orders WHERE bill_id = $1", aggregate.Bill.ID.Int64()))
	})

	t.Run("Unknown order leaves no partial bill", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		driverID, storeID := SeedReferenceData(t, testDB.Pool)

		saved, err := orderService.SaveOrder(ctx, saveRequest(driverID, storeID))
		require.NoError(t, err)

		_, err = billService.CreateBill(ctx,
			billRequest(driverID, saved.Order.ID.Int64(), 987654))
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrOrderNotFound)

		assert.Equal(t, 0, countRows(t, testDB, "SELECT COUNT(*) FROM bills"))
		assert.Equal(t, 0, countRows(t, testDB, "SELECT COUNT(*) FROM bill_orders"))
	})

	t.Run("GetBill recomputes rows after an order changes", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		driverID, storeID := SeedReferenceData(t, testDB.Pool)

		saved, err := orderService.SaveOrder(ctx, saveRequest(driverID, storeID))
		require.NoError(t, err)

		created, err := billService.CreateBill(ctx, billRequest(driverID, saved.Order.ID.Int64()))
		require.NoError(t, err)
		assert.Equal(t, int64(119800), created.Total.Amount())

		// Reprice one line on the billed order.
		again := saveRequest(driverID, storeID)
		orderID := saved.Order.ID.Int64()
		again.OrderID = &orderID
		again.ServiceLines[0].UnitCostAmount = 99900
		_, err = orderService.SaveOrder(ctx, again)
		require.NoError(t, err)

		reloaded, err := billService.GetBill(ctx, created.Bill.ID)
		require.NoError(t, err)
		// 99900 + 60000 + 9900
		assert.Equal(t, int64(169800), reloaded.Total.Amount())
	})

	t.Run("DeleteBill keeps the linked orders", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		driverID, storeID := SeedReferenceData(t, testDB.Pool)

		saved, err := orderService.SaveOrder(ctx, saveRequest(driverID, storeID))
		require.NoError(t, err)

		created, err := billService.CreateBill(ctx, billRequest(driverID, saved.Order.ID.Int64()))
		require.NoError(t, err)

		require.NoError(t, billService.DeleteBill(ctx, created.Bill.ID))

		_, err = billService.GetBill(ctx, created.Bill.ID)
		assert.ErrorIs(t, err, model.ErrBillNotFound)

		// The order is untouched.
		_, err = orderService.LoadOrder(ctx, saved.Order.ID)
		assert.NoError(t, err)
	})
}
