package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the booking lifecycle state. Transitions between states
// are enforced by the lifecycle package.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// ActiveStatuses are the statuses that reserve kennel capacity. A pending
// request provisionally holds a space so that two pending requests cannot
// both be approved past capacity later.
var ActiveStatuses = []BookingStatus{BookingStatusPending, BookingStatusApproved}

// IsActive reports whether the status still consumes capacity.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusApproved
}

// PaymentStatus values are owned by the payment collaborator, never by the
// booking workflow itself.
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

type Booking struct {
	ID                  uuid.UUID     `json:"id" db:"id"`
	CompanyID           uuid.UUID     `json:"company_id" db:"company_id"`
	DogID               uuid.UUID     `json:"dog_id" db:"dog_id"`
	CheckInDate         time.Time     `json:"check_in_date" db:"check_in_date"`
	CheckOutDate        time.Time     `json:"check_out_date" db:"check_out_date"`
	Status              BookingStatus `json:"status" db:"status"`
	Notes               *string       `json:"notes" db:"notes"`
	SpecialRequirements *string       `json:"special_requirements" db:"special_requirements"`
	RejectionReason     *string       `json:"rejection_reason" db:"rejection_reason"`
	CancellationReason  *string       `json:"cancellation_reason" db:"cancellation_reason"`
	AmountPence         int           `json:"amount_pence" db:"amount_pence"`
	PaymentStatus       string        `json:"payment_status" db:"payment_status"`
	CreatedAt           time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at" db:"updated_at"`
	DeletedAt           *time.Time    `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Nights returns the number of nights the dog stays. Dates are normalised
// calendar dates, so the difference is an exact multiple of 24h.
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

// Occupies reports whether the booking holds a kennel space on the given
// date. The interval is half-open: the check-out day itself is free because
// the dog has left.
func (b *Booking) Occupies(d time.Time) bool {
	return !d.Before(b.CheckInDate) && d.Before(b.CheckOutDate)
}

// BookingSearchFilter holds the staff booking list filters.
type BookingSearchFilter struct {
	Status   *BookingStatus `json:"status,omitempty"`
	Search   string         `json:"search,omitempty"` // matches dog or owner name
	DateFrom *time.Time     `json:"date_from,omitempty"`
	DateTo   *time.Time     `json:"date_to,omitempty"`
	Limit    int            `json:"limit,omitempty"`
	Offset   int            `json:"offset,omitempty"`
}

// DateOnly truncates a timestamp to its calendar date in UTC. All booking
// dates are stored and compared in this form.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
