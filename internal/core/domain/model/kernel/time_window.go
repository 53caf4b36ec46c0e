package kernel

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const timeWindowLayout = "15:04"

// ErrTimeWindowIsNotConstructed is returned when validating a zero-value TimeWindow.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via NewTimeWindow")

// TimeWindow is an HH:MM..HH:MM slot within a day, used for pickup and
// delivery availability on a request.
type TimeWindow struct { //nolint:recvcheck //using for validation
	from  string
	to    string
	guard guard.ConstructorGuard
}

// NewTimeWindow creates a TimeWindow from "HH:MM" strings. The start must be
// strictly before the end.
func NewTimeWindow(from, to string) (TimeWindow, error) {
	w := TimeWindow{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(w.setFrom(from), w.setTo(to)); err != nil {
		return TimeWindow{}, err
	}
	if w.from >= w.to {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("timeWindow",
			fmt.Errorf("window start %s is not before end %s", w.from, w.to))
	}

	return w, nil
}

// From returns the window start as "HH:MM".
func (w TimeWindow) From() string {
	return w.from
}

// To returns the window end as "HH:MM".
func (w TimeWindow) To() string {
	return w.to
}

// String formats the window as "08:00-12:00".
func (w TimeWindow) String() string {
	return fmt.Sprintf("%s-%s", w.from, w.to)
}

// IsEqual compares two windows. Both must be constructed.
func (w TimeWindow) IsEqual(other TimeWindow) (bool, error) {
	if err := errors.Join(w.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return w == other, nil
}

// Validate returns ErrTimeWindowIsNotConstructed for the zero value.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

func (w *TimeWindow) setFrom(from string) error {
	if _, err := time.Parse(timeWindowLayout, from); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("from", err)
	}
	w.from = from
	return nil
}

func (w *TimeWindow) setTo(to string) error {
	if _, err := time.Parse(timeWindowLayout, to); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("to", err)
	}
	w.to = to
	return nil
}
