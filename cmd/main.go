package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jamesruscoe/dog-kennel/internal/caching"
	"github.com/jamesruscoe/dog-kennel/internal/config"
	"github.com/jamesruscoe/dog-kennel/internal/events"
	"github.com/jamesruscoe/dog-kennel/internal/handlers"
	"github.com/jamesruscoe/dog-kennel/internal/jobs/background"
	"github.com/jamesruscoe/dog-kennel/internal/middleware"
	"github.com/jamesruscoe/dog-kennel/internal/repositories"
	"github.com/jamesruscoe/dog-kennel/internal/services"
	"github.com/jamesruscoe/dog-kennel/pkg/database"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.Log)

	ctx := context.Background()

	if err := database.RunMigrations(cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		nc, err := nats.Connect(cfg.NATS.URL, nats.Name("dog-kennel"))
		if err != nil {
			log.Warn().Err(err).Msg("NATS unavailable, booking events disabled")
		} else {
			defer nc.Drain() //nolint:errcheck
			publisher = events.NewNATSPublisher(nc)
		}
	}

	// Repositories
	companyRepo := repositories.NewCompanyRepo(pool)
	ownerRepo := repositories.NewOwnerRepo(pool)
	dogRepo := repositories.NewDogRepo(pool)
	settingsRepo := repositories.NewKennelSettingsRepo(pool)
	bookingRepo := repositories.NewBookingRepo(pool)
	careLogRepo := repositories.NewCareLogRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)
	txRunner := repositories.NewTxRunner(pool)

	// Services
	companySvc := services.NewCompanyService(companyRepo)
	ownerSvc := services.NewOwnerService(ownerRepo)
	dogSvc := services.NewDogService(dogRepo, ownerRepo)
	settingsSvc := services.NewKennelSettingsService(settingsRepo, cacheSvc)
	capacitySvc := services.NewCapacityService(bookingRepo, settingsRepo)
	bookingSvc := services.NewBookingService(bookingRepo, dogRepo, settingsRepo, capacitySvc, txRunner, publisher)
	careLogSvc := services.NewCareLogService(careLogRepo, bookingRepo)
	paymentSvc := services.NewPaymentService(paymentRepo, bookingRepo)

	// Handlers
	healthHandlers := handlers.NewHealthHandlers(pool)
	companyHandlers := handlers.NewCompanyHandlers(companySvc, ownerSvc, cfg.JWT.Secret, cfg.JWT.TTL.Std())
	settingsHandlers := handlers.NewSettingsHandlers(settingsSvc)
	calendarHandlers := handlers.NewCalendarHandlers(capacitySvc, settingsSvc)
	bookingHandlers := handlers.NewBookingHandlers(bookingSvc, dogSvc, careLogSvc, paymentSvc)
	dogHandlers := handlers.NewDogHandlers(dogSvc)
	ownerHandlers := handlers.NewOwnerHandlers(ownerSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(companyRepo, bookingRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create job scheduler")
	}
	scheduler.Start()
	defer scheduler.Stop() //nolint:errcheck

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	v1 := e.Group("/v1")

	// Public routes
	v1.POST("/signup", companyHandlers.Signup, middleware.RateLimit(cacheSvc, 10, time.Minute))
	v1.GET("/kennels/:slug/calendar", calendarHandlers.GetCalendar, middleware.CompanyFromSlug(companySvc))

	// Authenticated routes; the token binds the company scope.
	auth := v1.Group("", middleware.JWT(cfg.JWT.Secret))

	auth.GET("/calendar", calendarHandlers.GetCalendar)

	auth.POST("/bookings", bookingHandlers.CreateBooking)
	auth.GET("/bookings", bookingHandlers.ListBookings)
	auth.GET("/bookings/:id", bookingHandlers.GetBooking)
	auth.POST("/bookings/:id/cancel", bookingHandlers.CancelBooking)

	staff := auth.Group("", middleware.RequireStaff())

	staff.GET("/settings", settingsHandlers.GetSettings)
	staff.POST("/settings", settingsHandlers.CreateSettings)
	staff.PUT("/settings", settingsHandlers.UpdateSettings)

	staff.POST("/bookings/:id/approve", bookingHandlers.ApproveBooking)
	staff.POST("/bookings/:id/reject", bookingHandlers.RejectBooking)
	staff.POST("/bookings/:id/complete", bookingHandlers.CompleteBooking)
	staff.DELETE("/bookings/:id", bookingHandlers.DeleteBooking)
	staff.POST("/bookings/:id/care-logs", bookingHandlers.AddCareLog)
	staff.GET("/bookings/:id/care-logs", bookingHandlers.ListCareLogs)
	staff.POST("/bookings/:id/payments", bookingHandlers.RecordPayment)
	staff.GET("/bookings/:id/payments", bookingHandlers.ListPayments)

	staff.GET("/owners", ownerHandlers.ListOwners)
	staff.POST("/owners", ownerHandlers.CreateOwner)
	staff.GET("/owners/:id", ownerHandlers.GetOwner)
	staff.PUT("/owners/:id", ownerHandlers.UpdateOwner)
	staff.POST("/owners/:id/token", companyHandlers.IssueOwnerToken)

	staff.GET("/dogs", dogHandlers.ListDogs)
	staff.POST("/dogs", dogHandlers.CreateDog)
	staff.GET("/dogs/:id", dogHandlers.GetDog)
	staff.PUT("/dogs/:id", dogHandlers.UpdateDog)
	staff.DELETE("/dogs/:id", dogHandlers.DeleteDog)

	staff.GET("/companies/:id", companyHandlers.GetCompany)
	staff.POST("/companies/:id/payments", companyHandlers.EnablePayments)

	// Serve with graceful shutdown.
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info().Str("addr", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("Server stopped")
}

func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
