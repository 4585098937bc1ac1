package models

import (
	"time"

	"github.com/google/uuid"
)

type Owner struct {
	ID               uuid.UUID `json:"id" db:"id"`
	CompanyID        uuid.UUID `json:"company_id" db:"company_id"`
	Name             string    `json:"name" db:"name"`
	Email            string    `json:"email" db:"email"`
	Phone            *string   `json:"phone" db:"phone"`
	Address          *string   `json:"address" db:"address"`
	EmergencyContact *string   `json:"emergency_contact" db:"emergency_contact"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
