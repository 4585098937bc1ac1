package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stay(checkIn, checkOut time.Time, status models.BookingStatus) *models.Booking {
	return &models.Booking{
		ID:           uuid.New(),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       status,
	}
}

type CapacityServiceTestSuite struct {
	suite.Suite
	bookings *MockBookingRepository
	settings *MockSettingsRepository
	service  CapacityService
	ctx      context.Context
}

func (s *CapacityServiceTestSuite) SetupTest() {
	s.bookings = new(MockBookingRepository)
	s.settings = new(MockSettingsRepository)
	s.service = NewCapacityService(s.bookings, s.settings)
	s.ctx = scope.Bind(context.Background(), uuid.New())
}

func TestCapacityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CapacityServiceTestSuite))
}

func (s *CapacityServiceTestSuite) withCapacity(max int) {
	s.settings.On("GetForCompany", mock.Anything).Return(&models.KennelSettings{MaxCapacity: max}, nil)
}

func (s *CapacityServiceTestSuite) TestIsAvailable_EmptyKennel() {
	s.withCapacity(5)
	s.bookings.On("ListActiveOverlapping", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Booking{}, nil)

	available, err := s.service.IsAvailable(s.ctx, day(2026, 3, 10), day(2026, 3, 13), nil)
	assert.NoError(s.T(), err)
	assert.True(s.T(), available)
}

func (s *CapacityServiceTestSuite) TestIsAvailable_FullOnOneNight() {
	s.withCapacity(2)
	// Both existing stays cover the night of the 11th.
	s.bookings.On("ListActiveOverlapping", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Booking{
			stay(day(2026, 3, 11), day(2026, 3, 14), models.BookingStatusApproved),
			stay(day(2026, 3, 9), day(2026, 3, 12), models.BookingStatusPending),
		}, nil)

	available, err := s.service.IsAvailable(s.ctx, day(2026, 3, 10), day(2026, 3, 13), nil)
	assert.NoError(s.T(), err)
	assert.False(s.T(), available, "one full night blocks the whole stay")
}

func (s *CapacityServiceTestSuite) TestIsAvailable_CheckOutDayIsFree() {
	s.withCapacity(1)
	// The existing guest leaves on the 10th, the new one arrives on the 10th.
	s.bookings.On("ListActiveOverlapping", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Booking{
			stay(day(2026, 3, 7), day(2026, 3, 10), models.BookingStatusApproved),
		}, nil)

	available, err := s.service.IsAvailable(s.ctx, day(2026, 3, 10), day(2026, 3, 12), nil)
	assert.NoError(s.T(), err)
	assert.True(s.T(), available, "back-to-back stays share the turnover day")
}

func (s *CapacityServiceTestSuite) TestIsAvailable_ExcludesGivenBooking() {
	s.withCapacity(1)
	existing := stay(day(2026, 3, 10), day(2026, 3, 13), models.BookingStatusPending)
	s.bookings.On("ListActiveOverlapping", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Booking{existing}, nil)

	// Without the exclusion the kennel is full.
	available, err := s.service.IsAvailable(s.ctx, day(2026, 3, 10), day(2026, 3, 13), nil)
	assert.NoError(s.T(), err)
	assert.False(s.T(), available)

	// Excluding the booking under review frees its own slot.
	available, err = s.service.IsAvailable(s.ctx, day(2026, 3, 10), day(2026, 3, 13), &existing.ID)
	assert.NoError(s.T(), err)
	assert.True(s.T(), available)
}

func (s *CapacityServiceTestSuite) TestOccupancyByDate() {
	s.bookings.On("ListActiveOverlapping", mock.Anything, day(2026, 3, 10), day(2026, 3, 12)).
		Return([]*models.Booking{
			stay(day(2026, 3, 10), day(2026, 3, 12), models.BookingStatusApproved),
			stay(day(2026, 3, 11), day(2026, 3, 13), models.BookingStatusPending),
		}, nil)

	occupancy, err := s.service.OccupancyByDate(s.ctx, day(2026, 3, 10), day(2026, 3, 12))
	assert.NoError(s.T(), err)

	assert.Equal(s.T(), map[string]int{
		"2026-03-10": 1,
		"2026-03-11": 2,
		"2026-03-12": 1, // first stay checked out, second still occupies
	}, occupancy)
}
