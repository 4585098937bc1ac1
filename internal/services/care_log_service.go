package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/repositories"
)

type CareLogService interface {
	Add(ctx context.Context, req *AddCareLogRequest) (*models.CareLog, error)
	ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*models.CareLog, error)
}

type AddCareLogRequest struct {
	BookingID  uuid.UUID  `json:"booking_id"`
	Activity   string     `json:"activity"`
	Notes      *string    `json:"notes"`
	OccurredAt *time.Time `json:"occurred_at"`
}

type careLogService struct {
	logs     repositories.CareLogRepository
	bookings repositories.BookingRepository
	now      func() time.Time
}

func NewCareLogService(logs repositories.CareLogRepository, bookings repositories.BookingRepository) CareLogService {
	return &careLogService{logs: logs, bookings: bookings, now: time.Now}
}

// Add records a care activity against a booking. Logs only make sense while
// the dog is actually in the kennel, so the booking must be approved.
func (s *careLogService) Add(ctx context.Context, req *AddCareLogRequest) (*models.CareLog, error) {
	if req.Activity == "" {
		return nil, &models.ValidationError{Msg: "activity is required"}
	}

	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusApproved && booking.Status != models.BookingStatusCompleted {
		return nil, &models.StateError{Msg: "care logs can only be added to approved bookings"}
	}

	occurredAt := s.now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	entry := &models.CareLog{
		ID:         uuid.New(),
		BookingID:  booking.ID,
		Activity:   req.Activity,
		Notes:      req.Notes,
		OccurredAt: occurredAt,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *careLogService) ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*models.CareLog, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.logs.ListForBooking(ctx, bookingID)
}
