package weather

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
)

// endpointAll names the combined fetch when the caller cancels it.
const endpointAll = "all"

type rawBundle struct {
	temp    RawTemperature
	fourDay RawFourDayForecast
	today   RawTodayForecast
}

type fetchResult struct {
	endpoint string
	err      error
	apply    func(*rawBundle)
}

// fetchAll issues the three source requests concurrently and waits for the
// first of: all three succeeding, any one failing, the timeout firing, or
// ctx being done.
//
// The requests run on a context detached from ctx's cancellation. When the
// race is lost they are abandoned, not cancelled: they may still complete
// later, bounded by the HTTP client timeout, and their results are dropped
// into the buffered channel unread. Nothing from an abandoned request is
// ever reused.
func fetchAll(ctx context.Context, src Source, clock clockwork.Clock, timeout time.Duration) (rawBundle, error) {
	detached := context.WithoutCancel(ctx)
	results := make(chan fetchResult, 3)

	go func() {
		r, err := src.FetchTemperature(detached)
		results <- fetchResult{endpoint: EndpointAirTemperature, err: err, apply: func(b *rawBundle) { b.temp = r }}
	}()
	go func() {
		r, err := src.FetchFourDayForecast(detached)
		results <- fetchResult{endpoint: EndpointFourDayForecast, err: err, apply: func(b *rawBundle) { b.fourDay = r }}
	}()
	go func() {
		r, err := src.FetchTodayForecast(detached)
		results <- fetchResult{endpoint: EndpointTodayForecast, err: err, apply: func(b *rawBundle) { b.today = r }}
	}()

	timer := clock.NewTimer(timeout)
	defer timer.Stop()

	var bundle rawBundle
	for pending := cap(results); pending > 0; pending-- {
		select {
		case res := <-results:
			if res.err != nil {
				return rawBundle{}, asFetchError(res.endpoint, res.err)
			}
			res.apply(&bundle)
		case <-timer.Chan():
			return rawBundle{}, &TimeoutError{After: timeout}
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return rawBundle{}, &TimeoutError{After: timeout}
			}
			return rawBundle{}, &FetchError{Endpoint: endpointAll, Err: ctx.Err()}
		}
	}
	return bundle, nil
}

func asFetchError(endpoint string, err error) error {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return err
	}
	return &FetchError{Endpoint: endpoint, Err: err}
}
