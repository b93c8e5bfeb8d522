package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shoresquad_weather"

// Metrics holds the Prometheus counters, histograms, and gauges for the weather service.
type Metrics struct {
	// Upstream NEA requests.
	SourceRequests        *prometheus.CounterVec   // labels: endpoint, outcome={success,error}
	SourceRequestDuration *prometheus.HistogramVec // labels: endpoint
	CircuitBreakerState   *prometheus.GaugeVec     // labels: endpoint; 0 closed, 1 half-open, 2 open

	// Pipeline.
	FetchDuration prometheus.Histogram
	Refreshes     *prometheus.CounterVec // labels: outcome={live,fetch_error,timeout}
	SchedulerRuns prometheus.Counter

	// Latest report.
	AdvisoryTier       prometheus.Gauge
	CurrentTemperature prometheus.Gauge
	CurrentHumidity    prometheus.Gauge
	CurrentWindSpeed   prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SourceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_total",
			Help:      "NEA API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		SourceRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_request_duration_seconds",
			Help:      "NEA API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		CircuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state per endpoint: 0 closed, 1 half-open, 2 open.",
		}, []string{"endpoint"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the combined three-endpoint fetch.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Pipeline refreshes by outcome.",
		}, []string{"outcome"}),
		SchedulerRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_runs_total",
			Help:      "Scheduled refresh jobs started.",
		}),
		AdvisoryTier: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "advisory_tier",
			Help:      "Latest cleanup suitability: 0 poor, 1 moderate, 2 good, 3 excellent.",
		}),
		CurrentTemperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "temperature_celsius",
			Help:      "Latest reported temperature.",
		}),
		CurrentHumidity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "humidity_percent",
			Help:      "Latest reported relative humidity.",
		}),
		CurrentWindSpeed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wind_speed_kmh",
			Help:      "Latest reported wind speed.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.SourceRequests,
		m.SourceRequestDuration,
		m.CircuitBreakerState,
		m.FetchDuration,
		m.Refreshes,
		m.SchedulerRuns,
		m.AdvisoryTier,
		m.CurrentTemperature,
		m.CurrentHumidity,
		m.CurrentWindSpeed,
	}
}
