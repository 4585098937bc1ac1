package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/jamesruscoe/dog-kennel/internal/caching"
	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/repositories"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *models.Booking, from models.BookingStatus) error {
	args := m.Called(ctx, booking, from)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) List(ctx context.Context, filter *models.BookingSearchFilter) ([]*models.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListActive(ctx context.Context, limit, offset int) ([]*models.Booking, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListForOwner(ctx context.Context, ownerID uuid.UUID, filter *models.BookingSearchFilter) ([]*models.Booking, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListActiveOverlapping(ctx context.Context, from, to time.Time) ([]*models.Booking, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) CancelStalePending(ctx context.Context, before time.Time, reason string) (int64, error) {
	args := m.Called(ctx, before, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) WithTx(tx pgx.Tx) repositories.BookingRepository {
	return m
}

type MockDogRepository struct {
	mock.Mock
}

func (m *MockDogRepository) Create(ctx context.Context, dog *models.Dog) error {
	args := m.Called(ctx, dog)
	return args.Error(0)
}

func (m *MockDogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Dog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dog), args.Error(1)
}

func (m *MockDogRepository) Update(ctx context.Context, dog *models.Dog) error {
	args := m.Called(ctx, dog)
	return args.Error(0)
}

func (m *MockDogRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDogRepository) List(ctx context.Context, ownerID *uuid.UUID, limit, offset int) ([]*models.Dog, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	return args.Get(0).([]*models.Dog), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Create(ctx context.Context, settings *models.KennelSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) GetForCompany(ctx context.Context) (*models.KennelSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KennelSettings), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, settings *models.KennelSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *models.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *MockCompanyRepository) GetBySlug(ctx context.Context, slug string) (*models.Company, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *MockCompanyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) Update(ctx context.Context, company *models.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) List(ctx context.Context, limit, offset int) ([]*models.Company, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Company), args.Error(1)
}

// fakeTxRunner runs the function directly with a nil transaction. The real
// repositories treat a nil tx as "keep using the pool", so the mocks see the
// same calls they would inside a transaction.
type fakeTxRunner struct{}

func (fakeTxRunner) InTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// recordingPublisher captures published events in order.
type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishBooking(_ context.Context, event string, _ *models.Booking) error {
	p.events = append(p.events, event)
	return nil
}

var _ caching.CacheService = fakeCache{}

// fakeCache is a always-miss cache with call tracking for invalidation.
type fakeCache struct {
	deleted *[]uuid.UUID
}

func (fakeCache) GetSettings(context.Context, uuid.UUID) (*models.KennelSettings, error) {
	return nil, nil
}

func (fakeCache) SetSettings(context.Context, *models.KennelSettings, time.Duration) error {
	return nil
}

func (c fakeCache) DeleteSettings(_ context.Context, companyID uuid.UUID) error {
	if c.deleted != nil {
		*c.deleted = append(*c.deleted, companyID)
	}
	return nil
}

func (fakeCache) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return true, nil
}
