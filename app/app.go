package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"

	"github.com/solawi-club/bidround/app/modules/bidderround"
	"github.com/solawi-club/bidround/config"
	"github.com/solawi-club/bidround/internal/db/bundb"
	"github.com/solawi-club/bidround/internal/eventbus"
	"github.com/solawi-club/bidround/internal/metrics"
)

// App wires the database, event bus, metrics and the bidder round module.
type App struct {
	Config            *config.Config
	Logger            *slog.Logger
	DB                *bun.DB
	Publisher         message.Publisher
	BidderRoundModule *bidderround.Module
	Router            *chi.Mux
}

// NewApp initializes the application.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := bundb.NewBunDB(cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var publisher message.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = eventbus.NewPublisher(cfg.NATS.URL, watermill.NewSlogLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize event publisher: %w", err)
		}
	} else {
		logger.Warn("NATS URL not configured, event publishing disabled")
	}

	resolutionMetrics := metrics.NewResolutionMetrics(prometheus.DefaultRegisterer)
	module := bidderround.NewBidderRoundModule(db, publisher, logger, resolutionMetrics, cfg.BidderRound.AnnualizationFactor)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Handle("/metrics", promhttp.Handler())
	module.Handlers.RegisterRoutes(router)

	return &App{
		Config:            cfg,
		Logger:            logger,
		DB:                db,
		Publisher:         publisher,
		BidderRoundModule: module,
		Router:            router,
	}, nil
}

// Run serves HTTP until the context is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.Config.HTTP.Address,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("HTTP server listening", slog.String("address", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	}
}

// Close releases the application's resources.
func (a *App) Close() {
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			a.Logger.Error("Failed to close event publisher", slog.Any("error", err))
		}
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Failed to close database connection", slog.Any("error", err))
	}
}
