package kernel

import (
	"fmt"

	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
)

// Money is a value object for monetary amounts in the marketplace currency,
// expressed in whole currency units (the currency has no minor unit).
// Amounts are never negative; refunds and COD settlements are modelled as
// positive amounts flowing in a named direction.
//
// The zero value is a valid zero amount, so Money can be embedded without a
// constructor guard.
type Money struct {
	amount int64
}

// NewMoney creates a Money value. Negative amounts are rejected.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	return Money{amount: amount}, nil
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{}
}

// Amount returns the raw amount in whole currency units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual compares two amounts by value.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String formats the amount for logs and notification copy.
func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
