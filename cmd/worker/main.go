package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/qdbs/booking-api/internal/config"
	"github.com/qdbs/booking-api/internal/repository/postgres"
	"github.com/qdbs/booking-api/pkg/logger"
	redisBroker "github.com/qdbs/booking-api/pkg/messaging/redis"
	"github.com/qdbs/booking-api/pkg/metrics"
	"github.com/qdbs/booking-api/pkg/worker"
)

// workerEnv lets deployments tune the worker without touching the
// shared YAML file.
type workerEnv struct {
	HealthPort       int           `envconfig:"WORKER_HEALTH_PORT" default:"8081"`
	BatchSize        int           `envconfig:"WORKER_BATCH_SIZE" default:"0"`
	PollInterval     time.Duration `envconfig:"WORKER_POLL_INTERVAL" default:"0s"`
	CleanupInterval  time.Duration `envconfig:"WORKER_CLEANUP_INTERVAL" default:"1h"`
	CleanupRetention time.Duration `envconfig:"WORKER_CLEANUP_RETENTION" default:"168h"`
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	var env workerEnv
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal().Err(err).Msg("failed to process environment")
	}
	if env.BatchSize > 0 {
		cfg.Outbox.BatchSize = env.BatchSize
	}
	if env.PollInterval > 0 {
		cfg.Outbox.PollInterval = env.PollInterval
	}

	lg := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		lg.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, lg.Zerolog())
	if err != nil {
		lg.Fatal(err, "Failed to connect to Redis")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)
	m := metrics.NewMetrics("booking_worker")

	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  cfg.Outbox.PollInterval,
		RetryAttempts: cfg.Outbox.RetryAttempts,
		RetryDelay:    cfg.Outbox.RetryDelay,
		Channel:       cfg.Outbox.Channel,
	}, lg, m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupHealthServer(lg, env.HealthPort, db)

	go processor.Start(ctx)

	go func() {
		ticker := time.NewTicker(env.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := processor.Cleanup(ctx, env.CleanupRetention); err != nil {
					lg.Error(err, "Outbox cleanup failed")
				}
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("Shutting down worker")
	cancel()
}

func setupHealthServer(lg *logger.Logger, port int, pinger interface{ Ping() error }) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := pinger.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		addr := ":" + strconv.Itoa(port)
		if err := http.ListenAndServe(addr, mux); err != nil {
			lg.Error(err, "Health check server failed")
			os.Exit(1)
		}
	}()
}
