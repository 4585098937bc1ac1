package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jamesruscoe/dog-kennel/internal/models"
)

const companyColumns = `id, name, slug, stripe_account_id, payments_enabled, created_at, updated_at`

// CompanyRepository is platform-level: companies are the scope boundary, not
// scoped rows themselves.
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	GetBySlug(ctx context.Context, slug string) (*models.Company, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, company *models.Company) error
	List(ctx context.Context, limit, offset int) ([]*models.Company, error)
}

type companyRepo struct {
	db Querier
}

func NewCompanyRepo(db Querier) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (id, name, slug, stripe_account_id, payments_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, company.ID, company.Name, company.Slug,
		company.StripeAccountID, company.PaymentsEnabled)
	return err
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	company, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrCompanyNotFound
	}
	return company, err
}

func (r *companyRepo) GetBySlug(ctx context.Context, slug string) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE slug = $1`
	company, err := scanCompany(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrCompanyNotFound
	}
	return company, err
}

func (r *companyRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func (r *companyRepo) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies
		SET name = $1, stripe_account_id = $2, payments_enabled = $3, updated_at = NOW()
		WHERE id = $4`
	tag, err := r.db.Exec(ctx, query, company.Name, company.StripeAccountID,
		company.PaymentsEnabled, company.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCompanyNotFound
	}
	return nil
}

func (r *companyRepo) List(ctx context.Context, limit, offset int) ([]*models.Company, error) {
	if limit == 0 {
		limit = 100
	}
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

func scanCompany(row pgx.Row) (*models.Company, error) {
	c := &models.Company{}
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.StripeAccountID,
		&c.PaymentsEnabled, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}
