package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"renthub/internal/api"
	"renthub/internal/config"
	"renthub/internal/database"
	"renthub/internal/domain"
	"renthub/internal/events"
	"renthub/internal/logging"
	"renthub/internal/metrics"
	"renthub/internal/ratelimit"
	"renthub/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	logger := baseLogger.With().Str("component", "server").Logger()

	metrics.Register()

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limitStore := buildRateLimitStore(cfg, &logger)

	eventBus := events.NewEventBus()
	subscribeMetrics(eventBus, &logger)

	summaries := service.NewSummaryBuilder(db)
	bookingService := service.NewBookingService(db, db, db, eventBus, &logger)
	itemService := service.NewItemService(db, db, db, db, summaries, eventBus, &logger)
	userService := service.NewUserService(db, &logger)
	requestService := service.NewRequestService(db, db, db, &logger)

	server := api.NewHTTPServer(cfg, bookingService, itemService, userService, requestService, limitStore, &logger)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	if cfg.Monitoring.PrometheusEnabled {
		go startMetricsServer(cfg.Monitoring.PrometheusPort, &logger)
	}

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildRateLimitStore prefers redis with an in-memory fallback, degrading to
// memory only when redis is disabled.
func buildRateLimitStore(cfg *config.Config, logger *zerolog.Logger) domain.RateLimitStore {
	memory := ratelimit.NewMemoryStore()
	if !cfg.Redis.Enabled {
		return memory
	}

	client := ratelimit.NewRedisClient(cfg.Redis)
	return ratelimit.NewFailoverStore(ratelimit.NewRedisStore(client), memory, logger)
}

func subscribeMetrics(bus *events.EventBus, logger *zerolog.Logger) {
	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingApproved,
		events.EventBookingRejected,
		events.EventCommentAdded,
	} {
		eventType := eventType
		bus.Subscribe(eventType, func(event *events.Event) error {
			metrics.IncBookingEvent(eventType)
			logger.Debug().Str("event", eventType).Msg("domain event")
			return nil
		})
	}
}

func startMetricsServer(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info().Int("port", port).Msg("metrics endpoint listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
