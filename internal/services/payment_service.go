package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/repositories"
)

type PaymentService interface {
	Record(ctx context.Context, req *RecordPaymentRequest) (*models.Payment, error)
	ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*models.Payment, error)
}

type RecordPaymentRequest struct {
	BookingID   uuid.UUID `json:"booking_id"`
	AmountPence int       `json:"amount_pence"`
	Method      string    `json:"method"`
	Reference   *string   `json:"reference"`
}

type paymentService struct {
	payments repositories.PaymentRepository
	bookings repositories.BookingRepository
	now      func() time.Time
}

func NewPaymentService(payments repositories.PaymentRepository, bookings repositories.BookingRepository) PaymentService {
	return &paymentService{payments: payments, bookings: bookings, now: time.Now}
}

// Record stores a payment against a booking and flips the booking to paid
// once payments cover the booked amount. Payment state is tracked separately
// from booking status; a cancelled booking can still settle.
func (s *paymentService) Record(ctx context.Context, req *RecordPaymentRequest) (*models.Payment, error) {
	if req.AmountPence <= 0 {
		return nil, &models.ValidationError{Msg: "payment amount must be positive"}
	}
	if req.Method == "" {
		return nil, &models.ValidationError{Msg: "payment method is required"}
	}

	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		ID:          uuid.New(),
		BookingID:   booking.ID,
		AmountPence: req.AmountPence,
		Method:      req.Method,
		Reference:   req.Reference,
		PaidAt:      s.now(),
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	existing, err := s.payments.ListForBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, p := range existing {
		total += p.AmountPence
	}
	if total >= booking.AmountPence && booking.PaymentStatus != models.PaymentStatusPaid {
		if err := s.bookings.UpdatePaymentStatus(ctx, booking.ID, models.PaymentStatusPaid); err != nil {
			return nil, err
		}
	}
	return payment, nil
}

func (s *paymentService) ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*models.Payment, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.payments.ListForBooking(ctx, bookingID)
}
