package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

func validSettingsRequest() *SettingsRequest {
	return &SettingsRequest{
		MaxCapacity:      10,
		NightlyRatePence: 2500,
		OperatingDays:    []int{1, 2, 3, 4, 5},
		CheckInTime:      "09:00",
		CheckOutTime:     "17:00",
	}
}

func TestSettingsService_CreateValidation(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewKennelSettingsService(repo, fakeCache{})
	ctx := scope.Bind(context.Background(), uuid.New())

	cases := []struct {
		name   string
		mutate func(*SettingsRequest)
	}{
		{"zero capacity", func(r *SettingsRequest) { r.MaxCapacity = 0 }},
		{"negative capacity", func(r *SettingsRequest) { r.MaxCapacity = -3 }},
		{"negative rate", func(r *SettingsRequest) { r.NightlyRatePence = -1 }},
		{"no operating days", func(r *SettingsRequest) { r.OperatingDays = nil }},
		{"weekday zero", func(r *SettingsRequest) { r.OperatingDays = []int{0, 1} }},
		{"weekday eight", func(r *SettingsRequest) { r.OperatingDays = []int{1, 8} }},
		{"negative lead days", func(r *SettingsRequest) { r.BookingLeadDays = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validSettingsRequest()
			tc.mutate(req)

			_, err := svc.Create(ctx, req)

			var validationErr *models.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSettingsService_CreateSuccess(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewKennelSettingsService(repo, fakeCache{})
	ctx := scope.Bind(context.Background(), uuid.New())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.KennelSettings")).Return(nil)

	settings, err := svc.Create(ctx, validSettingsRequest())
	assert.NoError(t, err)
	assert.Equal(t, 10, settings.MaxCapacity)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, settings.OperatingDays)
	repo.AssertExpectations(t)
}

func TestSettingsService_UpdateInvalidatesCache(t *testing.T) {
	companyID := uuid.New()
	repo := new(MockSettingsRepository)
	var deleted []uuid.UUID
	svc := NewKennelSettingsService(repo, fakeCache{deleted: &deleted})
	ctx := scope.Bind(context.Background(), companyID)

	existing := &models.KennelSettings{ID: uuid.New(), CompanyID: companyID, MaxCapacity: 5, OperatingDays: []int{1}}
	repo.On("GetForCompany", mock.Anything).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	updated, err := svc.Update(ctx, validSettingsRequest())
	assert.NoError(t, err)
	assert.Equal(t, 10, updated.MaxCapacity)
	assert.Equal(t, []uuid.UUID{companyID}, deleted)
}

func TestSettingsService_GetUnconfigured(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewKennelSettingsService(repo, fakeCache{})
	ctx := scope.Bind(context.Background(), uuid.New())

	repo.On("GetForCompany", mock.Anything).Return(nil, models.ErrSettingsNotFound)

	_, err := svc.Get(ctx)
	assert.ErrorIs(t, err, models.ErrSettingsNotFound)
}

func TestSettingsService_GetRequiresScope(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewKennelSettingsService(repo, fakeCache{})

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, scope.ErrNoCompany)
	repo.AssertNotCalled(t, "GetForCompany", mock.Anything)
}
