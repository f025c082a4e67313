package repository

import (
	"time"

	"garage-backend/internal/model"
)

// Argument helpers unwrap the nominal id types into the nullable raw values
// pgx expects.

func employeeArg(id *model.EmployeeID) *int64 {
	if id == nil {
		return nil
	}
	raw := id.Int64()
	return &raw
}

func variantArg(id *model.VariantID) *int64 {
	if id == nil {
		return nil
	}
	raw := id.Int64()
	return &raw
}

func orderArg(id *model.OrderID) *int64 {
	if id == nil {
		return nil
	}
	raw := id.Int64()
	return &raw
}

func orderIDArgs(ids []model.OrderID) []int64 {
	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = id.Int64()
	}
	return raw
}

// lineArgs flattens a line item into the positional arguments of the upsert
// statement, in lineColumns order.
func lineArgs(orderID model.OrderID, line model.ServiceLine) []any {
	args := []any{
		orderID.Int64(),
		line.ServiceID.Int64(),
		variantArg(line.VariantID),
		line.Name,
		line.Quantity,
	}
	for _, day := range line.Days {
		args = append(args, day.Date, day.WorkMinutes, employeeArg(day.EmployeeID))
	}
	return append(args, line.UnitCost.Amount(), line.UnitCost.Currency(), line.VATFree, line.Notes)
}

// lineRow is the scan buffer for one row of a catalog table.
type lineRow struct {
	orderID        int64
	serviceID      int64
	variantID      *int64
	name           string
	quantity       int
	dayDate        [5]*time.Time
	dayWork        [5]*int
	dayEmployee    [5]*int64
	unitCostAmount int64
	currency       string
	vatFree        bool
	notes          *string
}

func (r *lineRow) targets() []any {
	targets := []any{&r.orderID, &r.serviceID, &r.variantID, &r.name, &r.quantity}
	for i := range r.dayDate {
		targets = append(targets, &r.dayDate[i], &r.dayWork[i], &r.dayEmployee[i])
	}
	return append(targets, &r.unitCostAmount, &r.currency, &r.vatFree, &r.notes)
}

func (r *lineRow) toModel() model.ServiceLine {
	line := model.ServiceLine{
		OrderID:   model.OrderID(r.orderID),
		ServiceID: model.ServiceID(r.serviceID),
		Name:      r.name,
		Quantity:  r.quantity,
		UnitCost:  model.NewMoney(r.unitCostAmount, r.currency),
		VATFree:   r.vatFree,
		Notes:     r.notes,
	}
	if r.variantID != nil {
		variant := model.VariantID(*r.variantID)
		line.VariantID = &variant
	}
	for i := range line.Days {
		line.Days[i].Date = r.dayDate[i]
		line.Days[i].WorkMinutes = r.dayWork[i]
		if r.dayEmployee[i] != nil {
			employee := model.EmployeeID(*r.dayEmployee[i])
			line.Days[i].EmployeeID = &employee
		}
	}
	return line
}

// joinedLineRow is the scan buffer for the line columns of the aggregate
// join, where even the identifying columns are nullable because the LEFT
// JOIN produces empty line slots for orders without lines.
type joinedLineRow struct {
	serviceID      *int64
	variantID      *int64
	name           *string
	quantity       *int
	dayDate        [5]*time.Time
	dayWork        [5]*int
	dayEmployee    [5]*int64
	unitCostAmount *int64
	currency       *string
	vatFree        *bool
	notes          *string
}

func (r *joinedLineRow) targets() []any {
	targets := []any{&r.serviceID, &r.variantID, &r.name, &r.quantity}
	for i := range r.dayDate {
		targets = append(targets, &r.dayDate[i], &r.dayWork[i], &r.dayEmployee[i])
	}
	return append(targets, &r.unitCostAmount, &r.currency, &r.vatFree, &r.notes)
}

// toModel must only be called when serviceID is non-nil.
func (r *joinedLineRow) toModel(orderID model.OrderID) model.ServiceLine {
	line := model.ServiceLine{
		OrderID:   orderID,
		ServiceID: model.ServiceID(*r.serviceID),
		Name:      *r.name,
		Quantity:  *r.quantity,
		UnitCost:  model.NewMoney(*r.unitCostAmount, *r.currency),
		VATFree:   *r.vatFree,
		Notes:     r.notes,
	}
	if r.variantID != nil {
		variant := model.VariantID(*r.variantID)
		line.VariantID = &variant
	}
	for i := range line.Days {
		line.Days[i].Date = r.dayDate[i]
		line.Days[i].WorkMinutes = r.dayWork[i]
		if r.dayEmployee[i] != nil {
			employee := model.EmployeeID(*r.dayEmployee[i])
			line.Days[i].EmployeeID = &employee
		}
	}
	return line
}

// headerRow is the scan buffer for the order header columns.
type headerRow struct {
	orderID        int64
	driverID       int64
	vehicleID      int64
	storeID        int64
	bookedBy       *int64
	notes          *string
	submissionTime time.Time
	pickupTime     time.Time
	vatFree        bool
	discountAmount int64
	currency       string
	status         string
	createdAt      time.Time
	updatedAt      time.Time
}

func (r *headerRow) targets() []any {
	return []any{
		&r.orderID, &r.driverID, &r.vehicleID, &r.storeID, &r.bookedBy, &r.notes,
		&r.submissionTime, &r.pickupTime, &r.vatFree, &r.discountAmount,
		&r.currency, &r.status, &r.createdAt, &r.updatedAt,
	}
}

func (r *headerRow) toModel() model.Order {
	order := model.Order{
		ID:             model.OrderID(r.orderID),
		DriverID:       model.DriverID(r.driverID),
		VehicleID:      model.VehicleID(r.vehicleID),
		StoreID:        model.StoreID(r.storeID),
		Notes:          r.notes,
		SubmissionTime: r.submissionTime,
		PickupTime:     r.pickupTime,
		VATFree:        r.vatFree,
		Discount:       model.NewMoney(r.discountAmount, r.currency),
		Currency:       r.currency,
		Status:         model.OrderStatus(r.status),
		CreatedAt:      r.createdAt,
		UpdatedAt:      r.updatedAt,
	}
	if r.bookedBy != nil {
		employee := model.EmployeeID(*r.bookedBy)
		order.BookedBy = &employee
	}
	return order
}

// bookingRow is the scan buffer for the nullable booking columns of the
// aggregate join.
type bookingRow struct {
	bookingID          *int64
	registrationNumber *string
	start              *time.Time
	end                *time.Time
	bookedBy           *int64
	status             *string
	submissionTime     *time.Time
	createdAt          *time.Time
	updatedAt          *time.Time
}

func (r *bookingRow) targets() []any {
	return []any{
		&r.bookingID, &r.registrationNumber, &r.start, &r.end,
		&r.bookedBy, &r.status, &r.submissionTime, &r.createdAt, &r.updatedAt,
	}
}

// toModel must only be called when bookingID is non-nil.
func (r *bookingRow) toModel(orderID model.OrderID) model.Booking {
	booking := model.Booking{
		ID:                 model.BookingID(*r.bookingID),
		OrderID:            &orderID,
		RegistrationNumber: *r.registrationNumber,
		Start:              *r.start,
		End:                *r.end,
		Status:             model.BookingStatus(*r.status),
		SubmissionTime:     *r.submissionTime,
		CreatedAt:          *r.createdAt,
		UpdatedAt:          *r.updatedAt,
	}
	if r.bookedBy != nil {
		employee := model.EmployeeID(*r.bookedBy)
		booking.BookedBy = &employee
	}
	return booking
}
