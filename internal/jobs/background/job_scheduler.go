// Package background runs the scheduled maintenance work: the morning
// summary for each kennel and the stale pending-booking sweep.
package background

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/repositories"
	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

const staleCancelReason = "automatically cancelled: not approved before check-in date"

type JobScheduler struct {
	scheduler gocron.Scheduler
	companies repositories.CompanyRepository
	bookings  repositories.BookingRepository
}

func NewJobScheduler(companies repositories.CompanyRepository, bookings repositories.BookingRepository) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		companies: companies,
		bookings:  bookings,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Info().Msg("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Info().Msg("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	if _, err := js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(7, 0, 0))),
		gocron.NewTask(js.sendDailySummaries, context.Background()),
		gocron.WithName("daily-summary"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.sweepStalePending, context.Background()),
		gocron.WithName("stale-pending-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	return nil
}

// sendDailySummaries logs each kennel's arrivals and departures for the day.
func (js *JobScheduler) sendDailySummaries(ctx context.Context) error {
	companies, err := js.companies.List(scope.Unscoped(ctx), 1000, 0)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list companies for daily summary")
		return err
	}

	today := models.DateOnly(time.Now())

	for _, company := range companies {
		scoped := scope.Bind(ctx, company.ID)

		// A check-out today occupies last night, so the window starting
		// yesterday catches both today's arrivals and departures.
		active, err := js.bookings.ListActiveOverlapping(scoped, today.AddDate(0, 0, -1), today)
		if err != nil {
			log.Error().Err(err).Str("company", company.Slug).Msg("Failed to load bookings for daily summary")
			continue
		}

		checkIns, checkOuts := 0, 0
		for _, b := range active {
			if b.CheckInDate.Equal(today) {
				checkIns++
			}
			if b.CheckOutDate.Equal(today) {
				checkOuts++
			}
		}

		log.Info().
			Str("company", company.Slug).
			Str("date", today.Format(time.DateOnly)).
			Int("check_ins", checkIns).
			Int("check_outs", checkOuts).
			Msg("Daily kennel summary")
	}
	return nil
}

// sweepStalePending cancels pending bookings whose check-in date has passed
// without a decision, releasing the capacity they were holding.
func (js *JobScheduler) sweepStalePending(ctx context.Context) error {
	companies, err := js.companies.List(scope.Unscoped(ctx), 1000, 0)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list companies for stale pending sweep")
		return err
	}

	today := models.DateOnly(time.Now())

	for _, company := range companies {
		scoped := scope.Bind(ctx, company.ID)

		cancelled, err := js.bookings.CancelStalePending(scoped, today, staleCancelReason)
		if err != nil {
			log.Error().Err(err).Str("company", company.Slug).Msg("Failed to sweep stale pending bookings")
			continue
		}
		if cancelled > 0 {
			log.Info().
				Str("company", company.Slug).
				Int64("cancelled", cancelled).
				Msg("Cancelled stale pending bookings")
		}
	}
	return nil
}
