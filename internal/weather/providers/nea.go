package providers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/shoresquad/shoresquad-weather/internal/observability"
	"github.com/shoresquad/shoresquad-weather/internal/weather"
)

const userAgent = "shoresquad-weather/1.0"

// Endpoints holds the three NEA URLs.
type Endpoints struct {
	AirTemperature  string
	FourDayForecast string
	TodayForecast   string
}

// NEAClient implements weather.Source against the data.gov.sg environment API.
type NEAClient struct {
	endpoints Endpoints
	httpCfg   HTTPClientConfig
	breakers  map[string]*gobreaker.CircuitBreaker
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewNEAClient creates a client with one circuit breaker per endpoint.
// maxRetries of 0 keeps every call fail-fast.
func NewNEAClient(client *http.Client, endpoints Endpoints, maxRetries int, logger *slog.Logger, metrics *observability.Metrics) *NEAClient {
	c := &NEAClient{
		endpoints: endpoints,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      maxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		breakers: make(map[string]*gobreaker.CircuitBreaker, 3),
		logger:   logger,
		metrics:  metrics,
	}

	for _, name := range []string{
		weather.EndpointAirTemperature,
		weather.EndpointFourDayForecast,
		weather.EndpointTodayForecast,
	} {
		c.breakers[name] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:          name,
			MaxRequests:   1,
			Interval:      1 * time.Minute,
			Timeout:       2 * time.Minute,
			OnStateChange: c.onStateChange,
		})
		metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))
	}
	return c
}

func (c *NEAClient) onStateChange(name string, from, to gobreaker.State) {
	c.logger.Warn("circuit breaker state changed",
		"endpoint", name,
		"from", from.String(),
		"to", to.String(),
	)
	c.metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
}

func (c *NEAClient) FetchTemperature(ctx context.Context) (weather.RawTemperature, error) {
	var raw weather.RawTemperature
	err := c.fetch(ctx, weather.EndpointAirTemperature, c.endpoints.AirTemperature, &raw)
	return raw, err
}

func (c *NEAClient) FetchFourDayForecast(ctx context.Context) (weather.RawFourDayForecast, error) {
	var raw weather.RawFourDayForecast
	err := c.fetch(ctx, weather.EndpointFourDayForecast, c.endpoints.FourDayForecast, &raw)
	return raw, err
}

func (c *NEAClient) FetchTodayForecast(ctx context.Context) (weather.RawTodayForecast, error) {
	var raw weather.RawTodayForecast
	err := c.fetch(ctx, weather.EndpointTodayForecast, c.endpoints.TodayForecast, &raw)
	return raw, err
}

// fetch GETs url and decodes the body into out, recording metrics. Every
// failure comes back as *weather.FetchError.
func (c *NEAClient) fetch(ctx context.Context, endpoint, url string, out any) error {
	start := time.Now()
	err := c.get(ctx, endpoint, url, out)
	c.metrics.SourceRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.SourceRequests.WithLabelValues(endpoint, "error").Inc()
		c.logger.Debug("nea request failed", "endpoint", endpoint, "error", err)
		return &weather.FetchError{Endpoint: endpoint, Err: err}
	}
	c.metrics.SourceRequests.WithLabelValues(endpoint, "success").Inc()
	return nil
}

func (c *NEAClient) get(ctx context.Context, endpoint, url string, out any) error {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.breakers[endpoint], buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeLenient(resp.Body, out)
}
