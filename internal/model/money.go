package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned by ToMinorUnits for NaN, infinite or
// out of range amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// ToMinorUnits converts a user-facing amount (dollars) into the minor
// units stored in properties.cost_per_night (cents).
//
// The multiplication happens in decimal so 0.29 becomes 29, not 28;
// halves round away from zero. Amounts whose cents do not fit in an
// int64 are rejected rather than wrapped.
func ToMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %v is not a finite number", ErrInvalidAmount, amount)
	}

	cents := decimal.NewFromFloat(amount).Shift(2).Round(0)
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %v is out of range", ErrInvalidAmount, amount)
	}

	return cents.IntPart(), nil
}

// FromMinorUnits converts stored cents back into a decimal amount.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
