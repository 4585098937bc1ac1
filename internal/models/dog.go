package models

import (
	"time"

	"github.com/google/uuid"
)

type Dog struct {
	ID                   uuid.UUID  `json:"id" db:"id"`
	CompanyID            uuid.UUID  `json:"company_id" db:"company_id"`
	OwnerID              uuid.UUID  `json:"owner_id" db:"owner_id"`
	Name                 string     `json:"name" db:"name"`
	Breed                string     `json:"breed" db:"breed"`
	DateOfBirth          *time.Time `json:"date_of_birth" db:"date_of_birth"`
	Sex                  string     `json:"sex" db:"sex"`
	Neutered             bool       `json:"neutered" db:"neutered"`
	WeightKg             *float64   `json:"weight_kg" db:"weight_kg"`
	MicrochipNumber      *string    `json:"microchip_number" db:"microchip_number"`
	VetName              *string    `json:"vet_name" db:"vet_name"`
	VetPhone             *string    `json:"vet_phone" db:"vet_phone"`
	VaccinationConfirmed bool       `json:"vaccination_confirmed" db:"vaccination_confirmed"`
	MedicalNotes         *string    `json:"medical_notes" db:"medical_notes"`
	DietaryNotes         *string    `json:"dietary_notes" db:"dietary_notes"`
	BehaviouralNotes     *string    `json:"behavioural_notes" db:"behavioural_notes"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt            *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}
