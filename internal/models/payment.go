package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment records money taken against a booking. Rows are written by the
// payment collaborator; the booking workflow only reads them.
type Payment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CompanyID   uuid.UUID `json:"company_id" db:"company_id"`
	BookingID   uuid.UUID `json:"booking_id" db:"booking_id"`
	AmountPence int       `json:"amount_pence" db:"amount_pence"`
	Method      string    `json:"method" db:"method"`
	Reference   *string   `json:"reference" db:"reference"`
	PaidAt      time.Time `json:"paid_at" db:"paid_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
