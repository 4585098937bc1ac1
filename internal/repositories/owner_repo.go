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

const ownerColumns = `id, company_id, name, email, phone, address, emergency_contact, created_at, updated_at`

type OwnerRepository interface {
	Create(ctx context.Context, owner *models.Owner) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Owner, error)
	GetByEmail(ctx context.Context, email string) (*models.Owner, error)
	Update(ctx context.Context, owner *models.Owner) error
	List(ctx context.Context, limit, offset int) ([]*models.Owner, error)
}

type ownerRepo struct {
	db Querier
}

func NewOwnerRepo(db Querier) OwnerRepository {
	return &ownerRepo{db: db}
}

func (r *ownerRepo) Create(ctx context.Context, owner *models.Owner) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}
	owner.CompanyID = sc.Stamp(owner.CompanyID)

	query := `
		INSERT INTO owners (id, company_id, name, email, phone, address, emergency_contact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, owner.ID, owner.CompanyID, owner.Name,
		owner.Email, owner.Phone, owner.Address, owner.EmergencyContact)
	return err
}

func (r *ownerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Owner, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE id = $1`
	query, args := sc.Filter(query, []any{id})

	owner, err := scanOwner(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrOwnerNotFound
	}
	return owner, err
}

func (r *ownerRepo) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE email = $1`
	query, args := sc.Filter(query, []any{email})

	owner, err := scanOwner(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrOwnerNotFound
	}
	return owner, err
}

func (r *ownerRepo) Update(ctx context.Context, owner *models.Owner) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE owners
		SET name = $1, email = $2, phone = $3, address = $4, emergency_contact = $5, updated_at = NOW()
		WHERE id = $6`
	args := []any{owner.Name, owner.Email, owner.Phone, owner.Address, owner.EmergencyContact, owner.ID}
	query, args = sc.Filter(query, args)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrOwnerNotFound
	}
	return nil
}

func (r *ownerRepo) List(ctx context.Context, limit, offset int) ([]*models.Owner, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = 50
	}
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE 1=1`
	var args []any
	query, args = sc.Filter(query, args)

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

	var owners []*models.Owner
	for rows.Next() {
		owner, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		owners = append(owners, owner)
	}
	return owners, rows.Err()
}

func scanOwner(row pgx.Row) (*models.Owner, error) {
	o := &models.Owner{}
	err := row.Scan(&o.ID, &o.CompanyID, &o.Name, &o.Email, &o.Phone,
		&o.Address, &o.EmergencyContact, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}
