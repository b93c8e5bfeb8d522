package weather

import (
	"context"
	"time"
)

// Source abstracts the three upstream endpoints feeding the pipeline.
// Implementations return *FetchError (or an error the caller wraps into one)
// for transport failures, non-2xx statuses and malformed JSON.
type Source interface {
	FetchTemperature(ctx context.Context) (RawTemperature, error)
	FetchFourDayForecast(ctx context.Context) (RawFourDayForecast, error)
	FetchTodayForecast(ctx context.Context) (RawTodayForecast, error)
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	SaveReport(location string, report Report)
	GetLatest(location string) (Report, error)
	GetRange(location string, from, to time.Time) ([]Report, error)
}
