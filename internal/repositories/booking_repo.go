package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

const bookingColumns = `id, company_id, dog_id, check_in_date, check_out_date, status, notes, special_requirements, rejection_reason, cancellation_reason, amount_pence, payment_status, created_at, updated_at`

const bookingColumnsB = `b.id, b.company_id, b.dog_id, b.check_in_date, b.check_out_date, b.status, b.notes, b.special_requirements, b.rejection_reason, b.cancellation_reason, b.amount_pence, b.payment_status, b.created_at, b.updated_at`

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)

	// Update writes a status transition. The row must still be in the
	// from status or the write is refused, so a transition decided
	// against a stale read cannot overwrite a concurrent one.
	Update(ctx context.Context, booking *models.Booking, from models.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *models.BookingSearchFilter) ([]*models.Booking, error)
	ListActive(ctx context.Context, limit, offset int) ([]*models.Booking, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, filter *models.BookingSearchFilter) ([]*models.Booking, error)
	ListActiveOverlapping(ctx context.Context, from, to time.Time) ([]*models.Booking, error)
	CancelStalePending(ctx context.Context, before time.Time, reason string) (int64, error)

	// WithTx returns a repository running its queries on the given
	// transaction, used by the orchestrator to couple capacity checks to
	// booking writes.
	WithTx(tx pgx.Tx) BookingRepository
}

type bookingRepo struct {
	db Querier
}

func NewBookingRepo(db Querier) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) WithTx(tx pgx.Tx) BookingRepository {
	if tx == nil {
		return r
	}
	return &bookingRepo{db: tx}
}

func (r *bookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}
	booking.CompanyID = sc.Stamp(booking.CompanyID)

	query := `
		INSERT INTO bookings (id, company_id, dog_id, check_in_date, check_out_date, status, notes, special_requirements, amount_pence, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, booking.ID, booking.CompanyID, booking.DogID,
		booking.CheckInDate, booking.CheckOutDate, booking.Status, booking.Notes,
		booking.SpecialRequirements, booking.AmountPence, booking.PaymentStatus)
	return err
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE deleted_at IS NULL AND id = $1`
	query, args := sc.Filter(query, []any{id})

	booking, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrBookingNotFound
	}
	return booking, err
}

func (r *bookingRepo) Update(ctx context.Context, booking *models.Booking, from models.BookingStatus) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE bookings
		SET status = $1, notes = $2, special_requirements = $3, rejection_reason = $4, cancellation_reason = $5, updated_at = NOW()
		WHERE deleted_at IS NULL AND id = $6 AND status = $7`
	args := []any{booking.Status, booking.Notes, booking.SpecialRequirements,
		booking.RejectionReason, booking.CancellationReason, booking.ID, from}
	query, args = sc.Filter(query, args)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &models.StateError{Msg: "booking status changed concurrently"}
	}
	return nil
}

func (r *bookingRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}
	query := `UPDATE bookings SET payment_status = $1, updated_at = NOW() WHERE deleted_at IS NULL AND id = $2`
	query, args := sc.Filter(query, []any{status, id})

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

func (r *bookingRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}
	query := `UPDATE bookings SET deleted_at = NOW(), updated_at = NOW() WHERE deleted_at IS NULL AND id = $1`
	query, args := sc.Filter(query, []any{id})

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

// List returns bookings for the staff dashboard, newest check-in first.
func (r *bookingRepo) List(ctx context.Context, filter *models.BookingSearchFilter) ([]*models.Booking, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		filter = &models.BookingSearchFilter{}
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	query := `SELECT ` + bookingColumnsB + ` FROM bookings b WHERE b.deleted_at IS NULL`
	query, args := sc.FilterAs(query, nil, "b")

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(` AND b.status = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM dogs d
			JOIN owners o ON o.id = d.owner_id
			WHERE d.id = b.dog_id AND (d.name ILIKE $%d OR o.name ILIKE $%d)
		)`, len(args), len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(` AND b.check_in_date >= $%d`, len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += fmt.Sprintf(` AND b.check_out_date <= $%d`, len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` ORDER BY b.check_in_date DESC LIMIT $%d`, len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	return r.queryBookings(ctx, query, args...)
}

// ListActive returns bookings still consuming capacity, soonest first.
func (r *bookingRepo) ListActive(ctx context.Context, limit, offset int) ([]*models.Booking, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = 20
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE deleted_at IS NULL AND status = ANY($1)`
	args := []any{activeStatusStrings()}
	query, args = sc.Filter(query, args)

	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY check_in_date ASC LIMIT $%d`, len(args))
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}
	return r.queryBookings(ctx, query, args...)
}

func (r *bookingRepo) ListForOwner(ctx context.Context, ownerID uuid.UUID, filter *models.BookingSearchFilter) ([]*models.Booking, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		filter = &models.BookingSearchFilter{}
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	query := `SELECT ` + bookingColumnsB + ` FROM bookings b
		WHERE b.deleted_at IS NULL
		AND EXISTS (SELECT 1 FROM dogs d WHERE d.id = b.dog_id AND d.owner_id = $1 AND d.deleted_at IS NULL)`
	query, args := sc.FilterAs(query, []any{ownerID}, "b")

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(` AND b.status = $%d`, len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` ORDER BY b.check_in_date DESC LIMIT $%d`, len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}
	return r.queryBookings(ctx, query, args...)
}

// ListActiveOverlapping returns active bookings whose stay touches any date
// in [from, to] inclusive. The capacity engine counts nights from these rows
// in memory.
func (r *bookingRepo) ListActiveOverlapping(ctx context.Context, from, to time.Time) ([]*models.Booking, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE deleted_at IS NULL AND status = ANY($1) AND check_in_date <= $2 AND check_out_date > $3`
	query, args := sc.Filter(query, []any{activeStatusStrings(), to, from})
	return r.queryBookings(ctx, query, args...)
}

// CancelStalePending cancels pending requests whose check-in date has passed
// without a staff decision, releasing the capacity they were holding. Used
// by the background sweep; the pending->cancelled transition is always legal.
func (r *bookingRepo) CancelStalePending(ctx context.Context, before time.Time, reason string) (int64, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return 0, err
	}
	query := `
		UPDATE bookings
		SET status = $1, cancellation_reason = $2, updated_at = NOW()
		WHERE deleted_at IS NULL AND status = $3 AND check_in_date < $4`
	args := []any{models.BookingStatusCancelled, reason, models.BookingStatusPending, before}
	query, args = sc.Filter(query, args)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *bookingRepo) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(&b.ID, &b.CompanyID, &b.DogID, &b.CheckInDate, &b.CheckOutDate,
		&b.Status, &b.Notes, &b.SpecialRequirements, &b.RejectionReason,
		&b.CancellationReason, &b.AmountPence, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func activeStatusStrings() []string {
	out := make([]string, len(models.ActiveStatuses))
	for i, s := range models.ActiveStatuses {
		out[i] = string(s)
	}
	return out
}
