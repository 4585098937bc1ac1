package models

import (
	"time"

	"github.com/google/uuid"
)

type CareLog struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CompanyID  uuid.UUID `json:"company_id" db:"company_id"`
	BookingID  uuid.UUID `json:"booking_id" db:"booking_id"`
	Activity   string    `json:"activity" db:"activity"`
	Notes      *string   `json:"notes" db:"notes"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
