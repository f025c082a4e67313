package model

import "time"

// BillStatus enumerates the lifecycle states of a bill.
type BillStatus string

const (
	BillStatusDraft   BillStatus = "Draft"
	BillStatusSent    BillStatus = "Sent"
	BillStatusPaid    BillStatus = "Paid"
	BillStatusOverdue BillStatus = "Overdue"
)

// Valid reports whether the status is one of the known states.
func (s BillStatus) Valid() bool {
	switch s {
	case BillStatusDraft, BillStatusSent, BillStatusPaid, BillStatusOverdue:
		return true
	}
	return false
}

// Bill is the header row for one bill. Driver and company fields are a
// snapshot taken at billing time; they are never re-read from the driver
// record, so the bill stays historically accurate.
type Bill struct {
	ID               BillID      `json:"billId"`
	Status           BillStatus  `json:"status"`
	BookedBy         *EmployeeID `json:"bookedBy,omitempty"`
	BillingDate      time.Time   `json:"billingDate"`
	PaymentDate      time.Time   `json:"paymentDate"`
	PaymentDays      int         `json:"paymentDays"`
	DriverID         DriverID    `json:"driverId"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	Address          string      `json:"address"`
	PostalCode       string      `json:"postalCode"`
	City             string      `json:"city"`
	Country          string      `json:"country"`
	CardNumber       *string     `json:"cardNumber,omitempty"`
	CardExpiry       *string     `json:"cardExpiry,omitempty"`
	CompanyReference *string     `json:"companyReference,omitempty"`
	OrgNumber        *string     `json:"orgNumber,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// BillRow is one line of the bill's order-row view. Rows are recomputed from
// the linked orders' line items on every read, never stored.
type BillRow struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitCost  Money  `json:"unitCost"`
	LineTotal Money  `json:"lineTotal"`
}

// BillAggregate is a bill header together with its linked order ids, the
// recomputed order-row view and the derived totals.
type BillAggregate struct {
	Bill     Bill      `json:"bill"`
	OrderIDs []OrderID `json:"orderIds"`
	Rows     []BillRow `json:"rows"`
	Total    Money     `json:"total"`
	Discount Money     `json:"discount"`
}

// CreateBillRequest is the request payload for creating a bill from one or
// more existing orders plus a snapshot of the driver's billing details.
type CreateBillRequest struct {
	OrderIDs         []int64   `json:"orderIds"`
	Status           string    `json:"status"`
	BookedBy         *int64    `json:"bookedBy,omitempty"`
	BillingDate      time.Time `json:"billingDate"`
	PaymentDays      int       `json:"paymentDays"`
	DriverID         int64     `json:"driverId"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	PostalCode       string    `json:"postalCode"`
	City             string    `json:"city"`
	Country          string    `json:"country"`
	CardNumber       *string   `json:"cardNumber,omitempty"`
	CardExpiry       *string   `json:"cardExpiry,omitempty"`
	CompanyReference *string   `json:"companyReference,omitempty"`
	OrgNumber        *string   `json:"orgNumber,omitempty"`
}

// OrderSummary is the minimal order projection the bill aggregator needs:
// existence proof, discount and currency.
type OrderSummary struct {
	ID       OrderID
	Discount Money
}
