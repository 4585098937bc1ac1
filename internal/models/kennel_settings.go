package models

import (
	"time"

	"github.com/google/uuid"
)

// KennelSettings is the per-company singleton configuration. Exactly one
// row exists per company; the unique index on company_id enforces it.
type KennelSettings struct {
	ID               uuid.UUID `json:"id" db:"id"`
	CompanyID        uuid.UUID `json:"company_id" db:"company_id"`
	MaxCapacity      int       `json:"max_capacity" db:"max_capacity"`
	NightlyRatePence int       `json:"nightly_rate_pence" db:"nightly_rate_pence"`
	OperatingDays    []int     `json:"operating_days" db:"operating_days"`
	CheckInTime      string    `json:"check_in_time" db:"check_in_time"`
	CheckOutTime     string    `json:"check_out_time" db:"check_out_time"`
	BookingLeadDays  int       `json:"booking_lead_days" db:"booking_lead_days"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// IsOperatingDay reports whether the given ISO weekday (Monday=1 .. Sunday=7)
// is one the kennel accepts check-ins and check-outs on.
func (s *KennelSettings) IsOperatingDay(isoWeekday int) bool {
	for _, d := range s.OperatingDays {
		if d == isoWeekday {
			return true
		}
	}
	return false
}

// NightlyRate returns the configured rate in minor currency units.
func (s *KennelSettings) NightlyRate() int {
	return s.NightlyRatePence
}

// ISOWeekday converts Go's Sunday-based weekday to ISO numbering
// (Monday=1 .. Sunday=7), which is how operating days are stored.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
