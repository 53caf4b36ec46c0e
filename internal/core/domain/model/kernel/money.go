package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// BasisPointsPerUnit is the scale used for tax rates: 10000 basis points = 100%.
const BasisPointsPerUnit int64 = 10000

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoneyFromCents or MoneyFromDecimalString")

// Money is a non-negative euro amount stored as integer cents. All arithmetic
// is exact; tax is applied in basis points with half-up rounding so that the
// same input always produces the same total.
//
// The zero value is invalid; use the constructors.
type Money struct { //nolint:recvcheck //using for validation
	cents int64
	guard guard.ConstructorGuard
}

// NewMoneyFromCents creates a Money from an amount in euro cents.
// Negative amounts are rejected.
func NewMoneyFromCents(cents int64) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := m.setCents(cents); err != nil {
		return Money{}, err
	}

	return m, nil
}

// MoneyFromDecimalString parses a decimal euro amount such as "850", "850.5"
// or "850.50" without going through floating point, so no precision is lost.
func MoneyFromDecimalString(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, errs.NewValueIsRequiredError("amount")
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	euros, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || euros < 0 || strings.HasPrefix(whole, "-") {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("malformed euro amount %q", s))
	}

	var cents int64
	if hasFrac {
		if len(frac) < 1 || len(frac) > 2 {
			return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("malformed euro amount %q", s))
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("malformed euro amount %q", s))
		}
		if len(frac) == 1 {
			cents *= 10
		}
	}

	return NewMoneyFromCents(euros*100 + cents)
}

// Cents returns the amount in euro cents.
func (m Money) Cents() int64 {
	return m.cents
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// Add returns the sum of two amounts. Both operands must be constructed.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}

	return NewMoneyFromCents(m.cents + other.cents)
}

// WithTax returns the amount grossed up by a tax rate expressed in basis
// points (2200 = 22%). Rounding is half up on the resulting cents.
func (m Money) WithTax(rateBasisPoints int64) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if rateBasisPoints < 0 || rateBasisPoints > BasisPointsPerUnit {
		return Money{}, errs.NewValueIsOutOfRangeError(
			"rateBasisPoints", rateBasisPoints, int64(0), BasisPointsPerUnit)
	}

	gross := (m.cents*(BasisPointsPerUnit+rateBasisPoints) + BasisPointsPerUnit/2) / BasisPointsPerUnit
	return NewMoneyFromCents(gross)
}

// IsEqual compares two amounts. Both operands must be constructed.
func (m Money) IsEqual(other Money) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}

	return m.cents == other.cents, nil
}

// String formats the amount with two decimals, e.g. "1037.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m *Money) setCents(cents int64) error {
	if cents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("amount must not be negative, got %d cents", cents))
	}

	m.cents = cents
	return nil
}
