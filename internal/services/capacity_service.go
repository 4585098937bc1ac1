package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/repositories"
)

// CapacityService answers "is there room?" and "how full are we?" purely
// from stored bookings and the company's configured capacity. A booking
// occupies a space on every date d with check_in <= d < check_out; the
// check-out day itself is free.
type CapacityService interface {
	// OccupancyByDate counts occupied spaces for every date in [from, to]
	// inclusive, keyed by YYYY-MM-DD.
	OccupancyByDate(ctx context.Context, from, to time.Time) (map[string]int, error)

	// IsAvailable reports whether every night in [checkIn, checkOut) has a
	// free space. excludeBookingID drops one booking from the count, used
	// when re-validating a booking that already holds a slot.
	IsAvailable(ctx context.Context, checkIn, checkOut time.Time, excludeBookingID *uuid.UUID) (bool, error)

	// WithTx returns a service whose booking reads run on the given
	// transaction, so the orchestrator can couple the check to its write.
	WithTx(tx pgx.Tx) CapacityService
}

type capacityService struct {
	bookings repositories.BookingRepository
	settings repositories.KennelSettingsRepository
}

func NewCapacityService(bookings repositories.BookingRepository, settings repositories.KennelSettingsRepository) CapacityService {
	return &capacityService{bookings: bookings, settings: settings}
}

func (s *capacityService) WithTx(tx pgx.Tx) CapacityService {
	return &capacityService{bookings: s.bookings.WithTx(tx), settings: s.settings}
}

func (s *capacityService) OccupancyByDate(ctx context.Context, from, to time.Time) (map[string]int, error) {
	from, to = models.DateOnly(from), models.DateOnly(to)

	active, err := s.bookings.ListActiveOverlapping(ctx, from, to)
	if err != nil {
		return nil, err
	}

	occupancy := make(map[string]int)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		count := 0
		for _, b := range active {
			if b.Occupies(d) {
				count++
			}
		}
		occupancy[d.Format(time.DateOnly)] = count
	}
	return occupancy, nil
}

func (s *capacityService) IsAvailable(ctx context.Context, checkIn, checkOut time.Time, excludeBookingID *uuid.UUID) (bool, error) {
	checkIn, checkOut = models.DateOnly(checkIn), models.DateOnly(checkOut)

	settings, err := s.settings.GetForCompany(ctx)
	if err != nil {
		return false, err
	}

	// Last occupied night is the day before check-out.
	active, err := s.bookings.ListActiveOverlapping(ctx, checkIn, checkOut.AddDate(0, 0, -1))
	if err != nil {
		return false, err
	}

	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		count := 0
		for _, b := range active {
			if excludeBookingID != nil && b.ID == *excludeBookingID {
				continue
			}
			if b.Occupies(d) {
				count++
			}
		}
		if count >= settings.MaxCapacity {
			return false, nil
		}
	}
	return true, nil
}
