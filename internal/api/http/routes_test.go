package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoresquad/shoresquad-weather/internal/observability"
	"github.com/shoresquad/shoresquad-weather/internal/store"
	"github.com/shoresquad/shoresquad-weather/internal/weather"
)

var fetchedAt = time.Date(2025, 1, 6, 2, 0, 0, 0, time.UTC)

// failingSource rejects every request, so each refresh yields the fallback report.
type failingSource struct{}

func (failingSource) FetchTemperature(context.Context) (weather.RawTemperature, error) {
	return weather.RawTemperature{}, errors.New("offline")
}

func (failingSource) FetchFourDayForecast(context.Context) (weather.RawFourDayForecast, error) {
	return weather.RawFourDayForecast{}, errors.New("offline")
}

func (failingSource) FetchTodayForecast(context.Context) (weather.RawTodayForecast, error) {
	return weather.RawTodayForecast{}, errors.New("offline")
}

func newTestApp(t *testing.T) (*fiberTestApp, *weather.Service) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(fetchedAt)
	svc := weather.NewService(failingSource{}, store.NewMemoryStore(10, time.Hour, clock), weather.Options{
		Clock:   clock,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: observability.NewMetricsForTesting(),
	})
	return &fiberTestApp{t: t, app: NewApp(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))}, svc
}

type fiberTestApp struct {
	t   *testing.T
	app *fiber.App
}

func (a *fiberTestApp) do(method, target string) (int, map[string]any) {
	a.t.Helper()
	resp, err := a.app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(a.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)

	var out map[string]any
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(a.t, json.Unmarshal(body, &out))
	}
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := app.do(http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "shoresquad-weather", body["service"])
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestCurrent_NotFoundBeforeFirstRefresh(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{
		"/api/v1/weather/current",
		"/api/v1/weather/advisory",
		"/api/v1/weather/forecast",
	} {
		code, body := app.do(http.MethodGet, path)
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.Equal(t, true, body["error"], path)
		assert.Equal(t, "no weather report yet", body["message"], path)
	}
}

func TestRefreshThenRead(t *testing.T) {
	app, _ := newTestApp(t)

	code, refreshed := app.do(http.MethodPost, "/api/v1/weather/refresh")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "fallback", refreshed["source"])
	assert.Equal(t, weather.NoticeNetwork, refreshed["notice"])

	code, current := app.do(http.MethodGet, "/api/v1/weather/current")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, refreshed["id"], current["id"])

	snapshot := current["weather"].(map[string]any)
	assert.Equal(t, "Singapore", snapshot["location"])
	assert.Equal(t, "Data Unavailable", snapshot["condition"])
	assert.EqualValues(t, 75, snapshot["humidity"])
	assert.EqualValues(t, 12, snapshot["windSpeed"])
	assert.Len(t, snapshot["forecast"], 4)

	code, advisory := app.do(http.MethodGet, "/api/v1/weather/advisory")
	require.Equal(t, http.StatusOK, code)
	a := advisory["advisory"].(map[string]any)
	assert.Equal(t, "good", a["suitability"])
	assert.Equal(t, "Good conditions for beach cleanup", a["message"])
	assert.Len(t, a["tips"], 4)
}

func TestForecastDays(t *testing.T) {
	app, svc := newTestApp(t)
	svc.Refresh(context.Background())

	code, body := app.do(http.MethodGet, "/api/v1/weather/forecast")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["forecast"], 4)

	code, body = app.do(http.MethodGet, "/api/v1/weather/forecast?days=2")
	require.Equal(t, http.StatusOK, code)
	days := body["forecast"].([]any)
	require.Len(t, days, 2)
	assert.Equal(t, "Today", days[0].(map[string]any)["day"])
	assert.Equal(t, "Tomorrow", days[1].(map[string]any)["day"])
}

// TestForecastDaysValidation verifies that the forecast endpoint enforces the
// expected 1-4 range for the `days` query parameter.
func TestForecastDaysValidation(t *testing.T) {
	app, svc := newTestApp(t)
	svc.Refresh(context.Background())

	for _, q := range []string{"0", "5", "-1", "abc"} {
		code, body := app.do(http.MethodGet, "/api/v1/weather/forecast?days="+q)
		assert.Equal(t, http.StatusBadRequest, code, q)
		assert.Equal(t, true, body["error"], q)
	}
}

func TestHistory(t *testing.T) {
	app, svc := newTestApp(t)
	svc.Refresh(context.Background())

	from := fetchedAt.Add(-time.Minute).Format(time.RFC3339)
	to := fetchedAt.Add(time.Minute).Format(time.RFC3339)

	code, body := app.do(http.MethodGet, "/api/v1/weather/history?from="+from+"&to="+to)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Singapore", body["location"])
	assert.Len(t, body["reports"], 1)

	// Unix seconds are accepted too.
	code, body = app.do(http.MethodGet, "/api/v1/weather/history?from=0&to=1736128800")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["reports"], 1)
}

func TestHistoryValidation(t *testing.T) {
	app, svc := newTestApp(t)
	svc.Refresh(context.Background())

	tests := []struct {
		name  string
		query string
		code  int
	}{
		{"missing", "", http.StatusBadRequest},
		{"missing to", "?from=0", http.StatusBadRequest},
		{"bad format", "?from=yesterday&to=today", http.StatusBadRequest},
		{"to before from", "?from=2025-01-06T03:00:00Z&to=2025-01-06T01:00:00Z", http.StatusBadRequest},
		{"empty range", "?from=2024-01-01T00:00:00Z&to=2024-01-02T00:00:00Z", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := app.do(http.MethodGet, "/api/v1/weather/history"+tt.query)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, true, body["error"])
		})
	}
}

func TestParseTime(t *testing.T) {
	ts, err := parseTime("2025-01-06T10:00:00+08:00")
	require.NoError(t, err)
	assert.True(t, ts.Equal(fetchedAt))

	ts, err = parseTime("1736128800")
	require.NoError(t, err)
	assert.True(t, ts.Equal(fetchedAt))

	_, err = parseTime("06/01/2025")
	assert.Error(t, err)
}
