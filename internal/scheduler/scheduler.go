package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/shoresquad/shoresquad-weather/internal/observability"
	"github.com/shoresquad/shoresquad-weather/internal/weather"
)

// Refresher is the part of weather.Service the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context) weather.Report
}

// Scheduler periodically refreshes the weather report.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	interval  time.Duration
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a new Scheduler. A non-positive interval falls back to 15 minutes.
func New(interval time.Duration, refresher Refresher, logger *slog.Logger, metrics *observability.Metrics) *Scheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: refresher,
		interval:  interval,
		logger:    logger,
		metrics:   metrics,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).SingletonMode().StartImmediately().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", "interval", s.interval)
	return nil
}

func (s *Scheduler) run() {
	s.metrics.SchedulerRuns.Inc()
	s.logger.Debug("scheduler: running weather refresh")

	report := s.refresher.Refresh(context.Background())

	s.logger.Debug("scheduler: completed weather refresh",
		"report_id", report.ID,
		"source", report.Origin,
	)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
