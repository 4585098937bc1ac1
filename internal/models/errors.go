package models

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for simple not-found conditions.
var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrDogNotFound      = errors.New("dog not found")
	ErrOwnerNotFound    = errors.New("owner not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrSettingsNotFound = errors.New("kennel settings not configured")
)

// ValidationError is a generic user-facing input failure for fields without
// a more specific error type.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// InvalidDateRangeError is a user-facing validation failure: the requested
// dates break one of the date rules. Reason says which rule.
type InvalidDateRangeError struct {
	Reason string
}

func (e *InvalidDateRangeError) Error() string {
	return e.Reason
}

// OperatingDayError is returned when a check-in or check-out falls on a day
// the kennel is closed.
type OperatingDayError struct {
	Date time.Time
	End  string // "check-in" or "check-out"
}

func (e *OperatingDayError) Error() string {
	return fmt.Sprintf("the kennel does not accept %ss on %ss", e.End, e.Date.Weekday())
}

// CapacityConflictError is returned when at least one night of the requested
// stay is already at maximum capacity. It depends on current bookings, not
// on the input itself, so it is distinct from the validation errors.
type CapacityConflictError struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (e *CapacityConflictError) Error() string {
	return fmt.Sprintf("no kennel space available between %s and %s",
		e.CheckIn.Format(time.DateOnly), e.CheckOut.Format(time.DateOnly))
}

// InvalidTransitionError signals a status change the lifecycle forbids. A
// correct UI never triggers it; treat it as a workflow bug, not bad input.
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %q to %q", e.From, e.To)
}

// StateError is a configuration-integrity violation, such as creating a
// second settings row for the same company.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string {
	return e.Msg
}
