package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/qdbs/booking-api/internal/availability"
	"github.com/qdbs/booking-api/internal/config"
	"github.com/qdbs/booking-api/internal/handler"
	availabilityHandler "github.com/qdbs/booking-api/internal/handler/availability"
	barberHandler "github.com/qdbs/booking-api/internal/handler/barber"
	bookingHandler "github.com/qdbs/booking-api/internal/handler/booking"
	catalogHandler "github.com/qdbs/booking-api/internal/handler/catalog"
	scheduleHandler "github.com/qdbs/booking-api/internal/handler/schedule"
	"github.com/qdbs/booking-api/internal/middleware"
	"github.com/qdbs/booking-api/internal/repository/postgres"
	"github.com/qdbs/booking-api/internal/router"
	barberService "github.com/qdbs/booking-api/internal/service/barber"
	bookingService "github.com/qdbs/booking-api/internal/service/booking"
	catalogService "github.com/qdbs/booking-api/internal/service/catalog"
	scheduleService "github.com/qdbs/booking-api/internal/service/schedule"
	"github.com/qdbs/booking-api/pkg/logger"
	redisBroker "github.com/qdbs/booking-api/pkg/messaging/redis"
	"github.com/qdbs/booking-api/pkg/metrics"
	"github.com/qdbs/booking-api/pkg/validator"
	"github.com/qdbs/booking-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Log)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	barberRepo := postgres.NewBarberRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	store := postgres.NewAvailabilityStore(db)

	// Availability engine
	engine := availability.New(store, availability.Config{
		SlotStep: time.Duration(cfg.Availability.SlotStepMinutes) * time.Minute,
	})

	// Services
	barberSvc := barberService.NewService(barberRepo)
	catalogSvc := catalogService.NewService(serviceRepo)
	scheduleSvc := scheduleService.NewService(scheduleRepo, barberRepo)
	bookingSvc := bookingService.NewService(bookingRepo, serviceRepo, barberRepo, engine, outboxRepo, nil)

	m := metrics.NewMetrics("booking_api")
	v := validator.New()

	// Handlers
	h := handler.NewHandler(db)
	availabilityH := availabilityHandler.NewHandler(engine, serviceRepo, m, cfg.Availability.ServiceCacheTTL, cfg.Availability.DefaultDaysAhead)
	bookingH := bookingHandler.NewHandler(bookingSvc, v, m)
	barberH := barberHandler.NewHandler(barberSvc, v)
	catalogH := catalogHandler.NewHandler(catalogSvc, v)
	scheduleH := scheduleHandler.NewHandler(scheduleSvc, v)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	}

	r := router.NewRouter(availabilityH, bookingH, barberH, catalogH, scheduleH, h, router.RouterConfig{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		CORSConfig:       corsConfig,
		RequestTimeout:   cfg.Server.RequestTimeout,
		MetricsPrefix:    "booking_api_http",
	})
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The outbox processor is optional: without Redis the API still
	// serves requests, events just stay pending until a worker runs.
	if cfg.Redis.URL != "" {
		broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, &log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()

		processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
			BatchSize:     cfg.Outbox.BatchSize,
			PollInterval:  cfg.Outbox.PollInterval,
			RetryAttempts: cfg.Outbox.RetryAttempts,
			RetryDelay:    cfg.Outbox.RetryDelay,
			Channel:       cfg.Outbox.Channel,
		}, logger.NewLogger(&logger.Config{Level: logger.InfoLevel}), m)
		go processor.Start(ctx)
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
}
