package weather

import (
	"errors"
	"fmt"
	"time"
)

// Source endpoint names used in errors, logs and metric labels.
const (
	EndpointAirTemperature  = "air-temperature"
	EndpointFourDayForecast = "4-day-weather-forecast"
	EndpointTodayForecast   = "24-hour-weather-forecast"
)

// ErrMalformedPayload marks a response body that is not valid JSON.
var ErrMalformedPayload = errors.New("malformed payload")

// FetchError reports a failed source request: transport error, non-2xx
// status, malformed JSON, or caller cancellation.
type FetchError struct {
	Endpoint string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// TimeoutError reports that the combined fetch did not finish in time.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("weather fetch timed out after %s", e.After)
}

// User-facing notices attached to fallback reports.
const (
	NoticeDataFormat  = "Data format issue - using fallback"
	NoticeNetwork     = "Network issue - showing cached data"
	NoticeUnavailable = "Weather data temporarily unavailable"
)

// NoticeFor picks the notice shown alongside a fallback report.
func NoticeFor(err error) string {
	var fetchErr *FetchError
	switch {
	case errors.Is(err, ErrMalformedPayload):
		return NoticeDataFormat
	case errors.As(err, &fetchErr):
		return NoticeNetwork
	default:
		return NoticeUnavailable
	}
}

// outcomeLabel classifies a refresh result for metrics.
func outcomeLabel(err error) string {
	var timeoutErr *TimeoutError
	switch {
	case err == nil:
		return "live"
	case errors.As(err, &timeoutErr):
		return "timeout"
	default:
		return "fetch_error"
	}
}
