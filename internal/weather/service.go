package weather

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/shoresquad/shoresquad-weather/internal/observability"
)

// DefaultTimeout bounds the combined fetch of all three endpoints.
const DefaultTimeout = 10 * time.Second

// Options configures a Service. Zero values take defaults, except Metrics
// which is required.
type Options struct {
	Location string
	Timeout  time.Duration
	Clock    clockwork.Clock
	Logger   *slog.Logger
	Metrics  *observability.Metrics
}

// Service runs the pipeline against a Source and keeps the resulting
// reports in a Store.
type Service struct {
	source   Source
	store    Store
	location string
	timeout  time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics

	refreshes singleflight.Group
}

// NewService creates a new Service.
func NewService(source Source, store Store, opts Options) *Service {
	s := &Service{
		source:   source,
		store:    store,
		location: opts.Location,
		timeout:  opts.Timeout,
		clock:    opts.Clock,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
	if s.location == "" {
		s.location = DefaultLocation
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Location is the name stamped on live snapshots and used as the store key.
func (s *Service) Location() string {
	return s.location
}

// FetchAndNormalize fetches the three payloads under the service timeout
// and builds a Snapshot. It fails with *FetchError or *TimeoutError; callers
// are expected to fall back to FallbackSnapshot.
func (s *Service) FetchAndNormalize(ctx context.Context) (Snapshot, error) {
	start := s.clock.Now()
	raw, err := fetchAll(ctx, s.source, s.clock, s.timeout)
	s.metrics.FetchDuration.Observe(s.clock.Since(start).Seconds())
	if err != nil {
		return Snapshot{}, err
	}

	snapshot, defaulted := processWeatherData(s.location, raw.temp, raw.fourDay, raw.today)
	s.logNormalized(ctx, raw, snapshot, defaulted)
	return snapshot, nil
}

// logNormalized traces the raw and normalized fields at debug level.
func (s *Service) logNormalized(ctx context.Context, raw rawBundle, snapshot Snapshot, defaulted []string) {
	if !s.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, field := range defaulted {
		s.logger.DebugContext(ctx, "weather field missing, using default",
			"location", s.location,
			"field", field,
		)
	}

	general := todayGeneral(raw.today)
	s.logger.DebugContext(ctx, "weather normalized",
		"location", s.location,
		"raw_humidity", general.RelativeHumidity,
		"humidity", snapshot.Humidity,
		"raw_wind", general.Wind,
		"wind_speed", snapshot.WindSpeed,
		"temperature", snapshot.Temperature,
		"condition", snapshot.Condition,
	)
	for _, day := range snapshot.Forecast {
		s.logger.DebugContext(ctx, "forecast day",
			"location", s.location,
			"day", day.Label,
			"temperature", day.Temperature,
			"condition", day.Condition,
			"icon", day.Icon,
		)
	}
}

// Refresh runs the pipeline and stores the resulting report. It always
// returns a usable report: failures substitute the fallback snapshot.
// Callers arriving while a refresh is in flight share its result. The shared
// refresh ignores cancellation of the caller that started it and is bounded
// by the service timeout alone.
func (s *Service) Refresh(ctx context.Context) Report {
	v, _, shared := s.refreshes.Do(s.location, func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx)), nil
	})
	if shared {
		s.logger.Debug("refresh coalesced", "location", s.location)
	}
	return v.(Report)
}

func (s *Service) refresh(ctx context.Context) Report {
	snapshot, err := s.FetchAndNormalize(ctx)

	report := Report{
		ID:        uuid.NewString(),
		Origin:    OriginLive,
		FetchedAt: s.clock.Now().UTC(),
	}
	if err != nil {
		s.logger.Warn("weather fetch failed, using fallback",
			"location", s.location,
			"error", err,
		)
		snapshot = FallbackSnapshot()
		report.Origin = OriginFallback
		report.Error = err.Error()
		report.Notice = NoticeFor(err)
	}
	report.Snapshot = snapshot
	report.Advisory = DeriveAdvisory(snapshot)

	s.store.SaveReport(s.location, report)
	s.record(report, err)

	s.logger.Info("weather refreshed",
		"location", s.location,
		"source", report.Origin,
		"temperature", snapshot.Temperature,
		"condition", snapshot.Condition,
		"suitability", report.Advisory.Tier,
	)
	return report
}

func (s *Service) record(report Report, err error) {
	s.metrics.Refreshes.WithLabelValues(outcomeLabel(err)).Inc()
	s.metrics.AdvisoryTier.Set(float64(report.Advisory.Tier))
	s.metrics.CurrentTemperature.Set(float64(report.Snapshot.Temperature))
	s.metrics.CurrentHumidity.Set(float64(report.Snapshot.Humidity))
	s.metrics.CurrentWindSpeed.Set(float64(report.Snapshot.WindSpeed))
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (Report, error) {
	return s.store.GetLatest(s.location)
}

// History delegates to the underlying store.
func (s *Service) History(from, to time.Time) ([]Report, error) {
	return s.store.GetRange(s.location, from, to)
}
