package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderID(t *testing.T) {
	tests := []struct {
		name        string
		raw         int64
		expectError bool
	}{
		{name: "Positive id", raw: 42},
		{name: "Zero id", raw: 0, expectError: true},
		{name: "Negative id", raw: -1, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewOrderID(tt.raw)

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidID)
				assert.False(t, id.Valid())
				return
			}

			require.NoError(t, err)
			assert.True(t, id.Valid())
			assert.Equal(t, tt.raw, id.Int64())
		})
	}
}

func TestIDConstructorsRejectNonPositive(t *testing.T) {
	_, err := NewServiceID(0)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = NewBillID(-7)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = NewBookingID(0)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = NewDriverID(-1)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = NewStoreID(0)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = NewEmployeeID(-3)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, CodeOf(ErrOrderNotFound))
	assert.Equal(t, ErrCodeValidation, CodeOf(ErrCurrencyMismatch))
	assert.Equal(t, ErrCodeConflict, CodeOf(ErrDuplicateBooking))
	assert.Equal(t, ErrCodeStorage, CodeOf(assert.AnError))
}
