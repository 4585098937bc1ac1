package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*models.Payment, error)
}

type paymentRepo struct {
	db Querier
}

func NewPaymentRepo(db Querier) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}
	payment.CompanyID = sc.Stamp(payment.CompanyID)

	query := `
		INSERT INTO payments (id, company_id, booking_id, amount_pence, method, reference, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err = r.db.Exec(ctx, query, payment.ID, payment.CompanyID,
		payment.BookingID, payment.AmountPence, payment.Method,
		payment.Reference, payment.PaidAt)
	return err
}

func (r *paymentRepo) ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*models.Payment, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, company_id, booking_id, amount_pence, method, reference, paid_at, created_at
		FROM payments
		WHERE booking_id = $1`
	query, args := sc.Filter(query, []any{bookingID})
	query += ` ORDER BY paid_at ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.BookingID, &p.AmountPence,
			&p.Method, &p.Reference, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
