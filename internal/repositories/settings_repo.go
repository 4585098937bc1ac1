package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

const settingsColumns = `id, company_id, max_capacity, nightly_rate_pence, operating_days, check_in_time, check_out_time, booking_lead_days, created_at, updated_at`

type KennelSettingsRepository interface {
	Create(ctx context.Context, settings *models.KennelSettings) error
	GetForCompany(ctx context.Context) (*models.KennelSettings, error)
	Update(ctx context.Context, settings *models.KennelSettings) error
}

type settingsRepo struct {
	db Querier
}

func NewKennelSettingsRepo(db Querier) KennelSettingsRepository {
	return &settingsRepo{db: db}
}

// Create inserts the singleton settings row for the bound company. The
// unique index on company_id turns a second insert into a StateError.
func (r *settingsRepo) Create(ctx context.Context, settings *models.KennelSettings) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}
	settings.CompanyID = sc.Stamp(settings.CompanyID)

	query := `
		INSERT INTO kennel_settings (id, company_id, max_capacity, nightly_rate_pence, operating_days, check_in_time, check_out_time, booking_lead_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, settings.ID, settings.CompanyID,
		settings.MaxCapacity, settings.NightlyRatePence, settings.OperatingDays,
		settings.CheckInTime, settings.CheckOutTime, settings.BookingLeadDays)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &models.StateError{Msg: "kennel settings already exist for this company"}
	}
	return err
}

func (r *settingsRepo) GetForCompany(ctx context.Context) (*models.KennelSettings, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	// Settings are meaningless without a company; an unscoped context would
	// otherwise read an arbitrary company's row.
	if _, ok := sc.CompanyID(); !ok {
		return nil, scope.ErrNoCompany
	}
	query := `SELECT ` + settingsColumns + ` FROM kennel_settings WHERE 1=1`
	query, args := sc.Filter(query, nil)

	s := &models.KennelSettings{}
	err = r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CompanyID,
		&s.MaxCapacity, &s.NightlyRatePence, &s.OperatingDays, &s.CheckInTime,
		&s.CheckOutTime, &s.BookingLeadDays, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *settingsRepo) Update(ctx context.Context, settings *models.KennelSettings) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE kennel_settings
		SET max_capacity = $1, nightly_rate_pence = $2, operating_days = $3, check_in_time = $4, check_out_time = $5, booking_lead_days = $6, updated_at = NOW()
		WHERE id = $7`
	args := []any{settings.MaxCapacity, settings.NightlyRatePence,
		settings.OperatingDays, settings.CheckInTime, settings.CheckOutTime,
		settings.BookingLeadDays, settings.ID}
	query, args = sc.Filter(query, args)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrSettingsNotFound
	}
	return nil
}
