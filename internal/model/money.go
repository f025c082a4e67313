package model

import "fmt"

// Money is a monetary amount in minor currency units (e.g. öre, cents)
// paired with a currency code. All arithmetic stays on integers; there is
// no floating-point path in or out.
type Money struct {
	amount   int64
	currency string
}

// NewMoney creates a Money value from an amount in minor units and a
// currency code.
func NewMoney(amount int64, currency string) Money {
	return Money{amount: amount, currency: currency}
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// Add returns the sum of two amounts in the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add %s to %s: %w", other.currency, m.currency, ErrCurrencyMismatch)
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns the difference of two amounts in the same currency.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot subtract %s from %s: %w", other.currency, m.currency, ErrCurrencyMismatch)
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// MultiplyByQuantity scales the amount by an integer quantity.
func (m Money) MultiplyByQuantity(quantity int) Money {
	return Money{amount: m.amount * int64(quantity), currency: m.currency}
}

// MarshalJSON encodes Money as {"amount": ..., "currency": "..."}.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"amount":%d,"currency":%q}`, m.amount, m.currency)), nil
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}
