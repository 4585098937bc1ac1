package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

type CareLogRepository interface {
	Create(ctx context.Context, log *models.CareLog) error
	ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*models.CareLog, error)
}

type careLogRepo struct {
	db Querier
}

func NewCareLogRepo(db Querier) CareLogRepository {
	return &careLogRepo{db: db}
}

func (r *careLogRepo) Create(ctx context.Context, log *models.CareLog) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}
	log.CompanyID = sc.Stamp(log.CompanyID)

	query := `
		INSERT INTO care_logs (id, company_id, booking_id, activity, notes, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err = r.db.Exec(ctx, query, log.ID, log.CompanyID, log.BookingID,
		log.Activity, log.Notes, log.OccurredAt)
	return err
}

func (r *careLogRepo) ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*models.CareLog, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, company_id, booking_id, activity, notes, occurred_at, created_at
		FROM care_logs
		WHERE booking_id = $1`
	query, args := sc.Filter(query, []any{bookingID})
	query += ` ORDER BY occurred_at ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.CareLog
	for rows.Next() {
		l := &models.CareLog{}
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.BookingID, &l.Activity,
			&l.Notes, &l.OccurredAt, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
