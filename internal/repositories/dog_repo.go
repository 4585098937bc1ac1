package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

const dogColumns = `id, company_id, owner_id, name, breed, date_of_birth, sex, neutered, weight_kg, microchip_number, vet_name, vet_phone, vaccination_confirmed, medical_notes, dietary_notes, behavioural_notes, created_at, updated_at`

type DogRepository interface {
	Create(ctx context.Context, dog *models.Dog) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dog, error)
	Update(ctx context.Context, dog *models.Dog) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, ownerID *uuid.UUID, limit, offset int) ([]*models.Dog, error)
}

type dogRepo struct {
	db Querier
}

func NewDogRepo(db Querier) DogRepository {
	return &dogRepo{db: db}
}

func (r *dogRepo) Create(ctx context.Context, dog *models.Dog) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}
	dog.CompanyID = sc.Stamp(dog.CompanyID)

	query := `
		INSERT INTO dogs (id, company_id, owner_id, name, breed, date_of_birth, sex, neutered, weight_kg, microchip_number, vet_name, vet_phone, vaccination_confirmed, medical_notes, dietary_notes, behavioural_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, dog.ID, dog.CompanyID, dog.OwnerID, dog.Name,
		dog.Breed, dog.DateOfBirth, dog.Sex, dog.Neutered, dog.WeightKg,
		dog.MicrochipNumber, dog.VetName, dog.VetPhone, dog.VaccinationConfirmed,
		dog.MedicalNotes, dog.DietaryNotes, dog.BehaviouralNotes)
	return err
}

func (r *dogRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Dog, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + dogColumns + ` FROM dogs WHERE deleted_at IS NULL AND id = $1`
	query, args := sc.Filter(query, []any{id})

	dog, err := scanDog(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrDogNotFound
	}
	return dog, err
}

func (r *dogRepo) Update(ctx context.Context, dog *models.Dog) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE dogs
		SET owner_id = $1, name = $2, breed = $3, date_of_birth = $4, sex = $5, neutered = $6, weight_kg = $7, microchip_number = $8, vet_name = $9, vet_phone = $10, vaccination_confirmed = $11, medical_notes = $12, dietary_notes = $13, behavioural_notes = $14, updated_at = NOW()
		WHERE deleted_at IS NULL AND id = $15`
	args := []any{dog.OwnerID, dog.Name, dog.Breed, dog.DateOfBirth, dog.Sex,
		dog.Neutered, dog.WeightKg, dog.MicrochipNumber, dog.VetName, dog.VetPhone,
		dog.VaccinationConfirmed, dog.MedicalNotes, dog.DietaryNotes, dog.BehaviouralNotes, dog.ID}
	query, args = sc.Filter(query, args)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrDogNotFound
	}
	return nil
}

func (r *dogRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}
	query := `UPDATE dogs SET deleted_at = NOW(), updated_at = NOW() WHERE deleted_at IS NULL AND id = $1`
	query, args := sc.Filter(query, []any{id})

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrDogNotFound
	}
	return nil
}

func (r *dogRepo) List(ctx context.Context, ownerID *uuid.UUID, limit, offset int) ([]*models.Dog, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = 50
	}
	query := `SELECT ` + dogColumns + ` FROM dogs WHERE deleted_at IS NULL`
	var args []any
	query, args = sc.Filter(query, args)

	if ownerID != nil {
		args = append(args, *ownerID)
		query += fmt.Sprintf(` AND owner_id = $%d`, len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY name ASC LIMIT $%d`, len(args))
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dogs []*models.Dog
	for rows.Next() {
		dog, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		dogs = append(dogs, dog)
	}
	return dogs, rows.Err()
}

func scanDog(row pgx.Row) (*models.Dog, error) {
	d := &models.Dog{}
	err := row.Scan(&d.ID, &d.CompanyID, &d.OwnerID, &d.Name, &d.Breed,
		&d.DateOfBirth, &d.Sex, &d.Neutered, &d.WeightKg, &d.MicrochipNumber,
		&d.VetName, &d.VetPhone, &d.VaccinationConfirmed, &d.MedicalNotes,
		&d.DietaryNotes, &d.BehaviouralNotes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}
