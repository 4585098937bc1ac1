package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/jamesruscoe/dog-kennel/internal/events"
	"github.com/jamesruscoe/dog-kennel/internal/lifecycle"
	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/repositories"
)

// BookingService orchestrates the booking lifecycle: date and operating-day
// validation, capacity admission, status transitions and event emission.
// Create and Approve couple their capacity check to the write inside a
// single transaction (see repositories.TxRunner), so concurrent requests
// for the last slot cannot both succeed.
type BookingService interface {
	Create(ctx context.Context, req *CreateBookingRequest) (*models.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	List(ctx context.Context, filter *models.BookingSearchFilter) ([]*models.Booking, error)
	ListActive(ctx context.Context, limit, offset int) ([]*models.Booking, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, filter *models.BookingSearchFilter) ([]*models.Booking, error)
	Approve(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Reject(ctx context.Context, id uuid.UUID, reason *string) (*models.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID, reason *string) (*models.Booking, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateBookingRequest carries a new booking request. Dates are calendar
// dates; any time-of-day component is discarded.
type CreateBookingRequest struct {
	DogID               uuid.UUID  `json:"dog_id"`
	CheckInDate         time.Time  `json:"check_in_date"`
	CheckOutDate        time.Time  `json:"check_out_date"`
	Notes               *string    `json:"notes,omitempty"`
	SpecialRequirements *string    `json:"special_requirements,omitempty"`
}

type bookingService struct {
	bookings repositories.BookingRepository
	dogs     repositories.DogRepository
	settings repositories.KennelSettingsRepository
	capacity CapacityService
	guard    *lifecycle.Guard
	tx       repositories.TxRunner
	events   events.Publisher
	now      func() time.Time
}

func NewBookingService(
	bookings repositories.BookingRepository,
	dogs repositories.DogRepository,
	settings repositories.KennelSettingsRepository,
	capacity CapacityService,
	tx repositories.TxRunner,
	publisher events.Publisher,
) BookingService {
	return &bookingService{
		bookings: bookings,
		dogs:     dogs,
		settings: settings,
		capacity: capacity,
		guard:    lifecycle.NewGuard(),
		tx:       tx,
		events:   publisher,
		now:      time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, req *CreateBookingRequest) (*models.Booking, error) {
	checkIn := models.DateOnly(req.CheckInDate)
	checkOut := models.DateOnly(req.CheckOutDate)

	settings, err := s.settings.GetForCompany(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validateDates(settings, checkIn, checkOut); err != nil {
		return nil, err
	}
	if err := validateOperatingDays(settings, checkIn, checkOut); err != nil {
		return nil, err
	}

	// The dog lookup runs under the company scope, so it doubles as the
	// ownership-chain check: a dog from another company is simply not found.
	dog, err := s.dogs.GetByID(ctx, req.DogID)
	if err != nil {
		return nil, err
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	booking := &models.Booking{
		ID:                  uuid.New(),
		CompanyID:           dog.CompanyID,
		DogID:               dog.ID,
		CheckInDate:         checkIn,
		CheckOutDate:        checkOut,
		Status:              models.BookingStatusPending,
		Notes:               req.Notes,
		SpecialRequirements: req.SpecialRequirements,
		AmountPence:         nights * settings.NightlyRate(),
		PaymentStatus:       models.PaymentStatusUnpaid,
	}

	err = s.tx.InTx(ctx, func(tx pgx.Tx) error {
		available, err := s.capacity.WithTx(tx).IsAvailable(ctx, checkIn, checkOut, nil)
		if err != nil {
			return err
		}
		if !available {
			return &models.CapacityConflictError{CheckIn: checkIn, CheckOut: checkOut}
		}
		return s.bookings.WithTx(tx).Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.BookingCreated, booking)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *bookingService) List(ctx context.Context, filter *models.BookingSearchFilter) ([]*models.Booking, error) {
	return s.bookings.List(ctx, filter)
}

func (s *bookingService) ListActive(ctx context.Context, limit, offset int) ([]*models.Booking, error) {
	return s.bookings.ListActive(ctx, limit, offset)
}

func (s *bookingService) ListForOwner(ctx context.Context, ownerID uuid.UUID, filter *models.BookingSearchFilter) ([]*models.Booking, error) {
	return s.bookings.ListForOwner(ctx, ownerID, filter)
}

// Approve re-checks capacity excluding the booking itself: it already holds
// a pending slot, but another booking approved since creation may have
// filled the remaining room.
func (s *bookingService) Approve(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := booking.Status
	if err := s.guard.Check(from, models.BookingStatusApproved); err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(tx pgx.Tx) error {
		available, err := s.capacity.WithTx(tx).IsAvailable(ctx, booking.CheckInDate, booking.CheckOutDate, &booking.ID)
		if err != nil {
			return err
		}
		if !available {
			return &models.CapacityConflictError{CheckIn: booking.CheckInDate, CheckOut: booking.CheckOutDate}
		}
		booking.Status = models.BookingStatusApproved
		return s.bookings.WithTx(tx).Update(ctx, booking, from)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.BookingApproved, booking)
	return booking, nil
}

func (s *bookingService) Reject(ctx context.Context, id uuid.UUID, reason *string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := booking.Status
	if err := s.guard.Check(from, models.BookingStatusRejected); err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusRejected
	booking.RejectionReason = reason
	if err := s.bookings.Update(ctx, booking, from); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, id uuid.UUID, reason *string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := booking.Status
	if err := s.guard.Check(from, models.BookingStatusCancelled); err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCancelled
	booking.CancellationReason = reason
	if err := s.bookings.Update(ctx, booking, from); err != nil {
		return nil, err
	}

	s.publish(ctx, events.BookingCancelled, booking)
	return booking, nil
}

func (s *bookingService) Complete(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := booking.Status
	if err := s.guard.Check(from, models.BookingStatusCompleted); err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCompleted
	if err := s.bookings.Update(ctx, booking, from); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.bookings.SoftDelete(ctx, id)
}

func (s *bookingService) validateDates(settings *models.KennelSettings, checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return &models.InvalidDateRangeError{Reason: "check-out must be after check-in"}
	}

	today := models.DateOnly(s.now())
	if checkIn.Before(today) {
		return &models.InvalidDateRangeError{Reason: "check-in date cannot be in the past"}
	}

	if settings.BookingLeadDays > 0 {
		minDate := today.AddDate(0, 0, settings.BookingLeadDays)
		if checkIn.Before(minDate) {
			return &models.InvalidDateRangeError{
				Reason: fmt.Sprintf("bookings must be made at least %d day(s) in advance", settings.BookingLeadDays),
			}
		}
	}
	return nil
}

func validateOperatingDays(settings *models.KennelSettings, checkIn, checkOut time.Time) error {
	if !settings.IsOperatingDay(models.ISOWeekday(checkIn)) {
		return &models.OperatingDayError{Date: checkIn, End: "check-in"}
	}
	if !settings.IsOperatingDay(models.ISOWeekday(checkOut)) {
		return &models.OperatingDayError{Date: checkOut, End: "check-out"}
	}
	return nil
}

// publish emits after the transaction committed; delivery is best-effort
// and never fails the operation.
func (s *bookingService) publish(ctx context.Context, event string, booking *models.Booking) {
	if err := s.events.PublishBooking(ctx, event, booking); err != nil {
		log.Warn().Err(err).
			Str("event", event).
			Str("booking_id", booking.ID.String()).
			Msg("Failed to publish booking event")
	}
}
