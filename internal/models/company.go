package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is the tenant boundary: every business entity belongs to exactly
// one company and is never visible to another.
type Company struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Slug            string    `json:"slug" db:"slug"`
	StripeAccountID *string   `json:"stripe_account_id,omitempty" db:"stripe_account_id"`
	PaymentsEnabled bool      `json:"payments_enabled" db:"payments_enabled"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
