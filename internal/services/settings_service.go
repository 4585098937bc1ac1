package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jamesruscoe/dog-kennel/internal/caching"
	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/repositories"
	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

const settingsCacheTTL = 5 * time.Minute

type KennelSettingsService interface {
	Create(ctx context.Context, req *SettingsRequest) (*models.KennelSettings, error)
	Get(ctx context.Context) (*models.KennelSettings, error)
	Update(ctx context.Context, req *SettingsRequest) (*models.KennelSettings, error)
}

type SettingsRequest struct {
	MaxCapacity      int    `json:"max_capacity"`
	NightlyRatePence int    `json:"nightly_rate_pence"`
	OperatingDays    []int  `json:"operating_days"`
	CheckInTime      string `json:"check_in_time"`
	CheckOutTime     string `json:"check_out_time"`
	BookingLeadDays  int    `json:"booking_lead_days"`
}

type settingsService struct {
	repo  repositories.KennelSettingsRepository
	cache caching.CacheService
}

func NewKennelSettingsService(repo repositories.KennelSettingsRepository, cache caching.CacheService) KennelSettingsService {
	return &settingsService{repo: repo, cache: cache}
}

func (s *settingsService) Create(ctx context.Context, req *SettingsRequest) (*models.KennelSettings, error) {
	if err := validateSettings(req); err != nil {
		return nil, err
	}

	settings := &models.KennelSettings{
		ID:               uuid.New(),
		MaxCapacity:      req.MaxCapacity,
		NightlyRatePence: req.NightlyRatePence,
		OperatingDays:    req.OperatingDays,
		CheckInTime:      req.CheckInTime,
		CheckOutTime:     req.CheckOutTime,
		BookingLeadDays:  req.BookingLeadDays,
	}
	if err := s.repo.Create(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Get reads through the cache when a company is bound; unscoped reads go
// straight to the repository.
func (s *settingsService) Get(ctx context.Context) (*models.KennelSettings, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	companyID, bound := sc.CompanyID()

	if bound {
		if cached, err := s.cache.GetSettings(ctx, companyID); err == nil && cached != nil {
			return cached, nil
		}
	}

	settings, err := s.repo.GetForCompany(ctx)
	if err != nil {
		return nil, err
	}

	if bound {
		// Cache write failures only cost the next read a database trip.
		_ = s.cache.SetSettings(ctx, settings, settingsCacheTTL)
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, req *SettingsRequest) (*models.KennelSettings, error) {
	if err := validateSettings(req); err != nil {
		return nil, err
	}

	settings, err := s.repo.GetForCompany(ctx)
	if err != nil {
		return nil, err
	}

	settings.MaxCapacity = req.MaxCapacity
	settings.NightlyRatePence = req.NightlyRatePence
	settings.OperatingDays = req.OperatingDays
	settings.CheckInTime = req.CheckInTime
	settings.CheckOutTime = req.CheckOutTime
	settings.BookingLeadDays = req.BookingLeadDays

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}
	_ = s.cache.DeleteSettings(ctx, settings.CompanyID)
	return settings, nil
}

func validateSettings(req *SettingsRequest) error {
	if req.MaxCapacity <= 0 {
		return &models.ValidationError{Msg: "max capacity must be positive"}
	}
	if req.NightlyRatePence < 0 {
		return &models.ValidationError{Msg: "nightly rate cannot be negative"}
	}
	if len(req.OperatingDays) == 0 {
		return &models.ValidationError{Msg: "at least one operating day is required"}
	}
	for _, d := range req.OperatingDays {
		if d < 1 || d > 7 {
			return &models.ValidationError{Msg: "operating days must be ISO weekdays between 1 and 7"}
		}
	}
	if req.BookingLeadDays < 0 {
		return &models.ValidationError{Msg: "booking lead days cannot be negative"}
	}
	return nil
}
