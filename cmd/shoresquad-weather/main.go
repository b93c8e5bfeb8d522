package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	httpapi "github.com/shoresquad/shoresquad-weather/internal/api/http"
	"github.com/shoresquad/shoresquad-weather/internal/config"
	"github.com/shoresquad/shoresquad-weather/internal/observability"
	"github.com/shoresquad/shoresquad-weather/internal/scheduler"
	"github.com/shoresquad/shoresquad-weather/internal/store"
	"github.com/shoresquad/shoresquad-weather/internal/weather"
	"github.com/shoresquad/shoresquad-weather/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// Shared HTTP client for outbound NEA calls. Its timeout also bounds
	// requests abandoned by the fetch timeout.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	source := providers.NewNEAClient(httpClient, providers.Endpoints{
		AirTemperature:  cfg.AirTemperatureURL,
		FourDayForecast: cfg.FourDayForecastURL,
		TodayForecast:   cfg.TwentyFourHourForecastURL,
	}, cfg.FetchMaxRetries, logger, metrics)

	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge, clock)

	service := weather.NewService(source, memStore, weather.Options{
		Location: cfg.Location,
		Timeout:  cfg.FetchTimeout,
		Clock:    clock,
		Logger:   logger,
		Metrics:  metrics,
	})

	// Runs once immediately, then every REFRESH_INTERVAL.
	sched := scheduler.New(cfg.RefreshInterval, service, logger, metrics)
	if err := sched.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, logger)

	go func() {
		logger.Info("http server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}
