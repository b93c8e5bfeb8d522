package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoresquad/shoresquad-weather/internal/weather"
)

const loc = "Singapore"

var epoch = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func report(id string, at time.Time) weather.Report {
	return weather.Report{
		ID:        id,
		Origin:    weather.OriginLive,
		FetchedAt: at,
		Snapshot:  weather.FallbackSnapshot(),
	}
}

func TestMemoryStore_GetLatest(t *testing.T) {
	s := NewMemoryStore(10, 0, clockwork.NewFakeClockAt(epoch))

	_, err := s.GetLatest(loc)
	require.ErrorIs(t, err, ErrNotFound)

	s.SaveReport(loc, report("a", epoch))
	s.SaveReport(loc, report("b", epoch.Add(time.Minute)))

	got, err := s.GetLatest(loc)
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)

	_, err = s.GetLatest("Sentosa")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RetentionByCount(t *testing.T) {
	s := NewMemoryStore(3, 0, clockwork.NewFakeClockAt(epoch))

	for i := range 5 {
		s.SaveReport(loc, report(fmt.Sprint(i), epoch.Add(time.Duration(i)*time.Minute)))
	}

	got, err := s.GetRange(loc, epoch, epoch.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "4", got[2].ID)
}

func TestMemoryStore_RetentionByAge(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	s := NewMemoryStore(0, time.Hour, clock)

	s.SaveReport(loc, report("old", clock.Now()))
	clock.Advance(30 * time.Minute)
	s.SaveReport(loc, report("mid", clock.Now()))
	clock.Advance(45 * time.Minute)
	s.SaveReport(loc, report("new", clock.Now()))

	got, err := s.GetRange(loc, epoch, clock.Now())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "mid", got[0].ID)
	assert.Equal(t, "new", got[1].ID)
}

func TestMemoryStore_KeepsNewestEvenIfStale(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	s := NewMemoryStore(0, time.Hour, clock)

	s.SaveReport(loc, report("stale", epoch.Add(-2*time.Hour)))

	got, err := s.GetLatest(loc)
	require.NoError(t, err)
	assert.Equal(t, "stale", got.ID)
}

func TestMemoryStore_GetRangeInclusive(t *testing.T) {
	s := NewMemoryStore(0, 0, nil)
	for i := range 4 {
		s.SaveReport(loc, report(fmt.Sprint(i), epoch.Add(time.Duration(i)*time.Hour)))
	}

	got, err := s.GetRange(loc, epoch.Add(time.Hour), epoch.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)

	_, err = s.GetRange(loc, epoch.Add(10*time.Hour), epoch.Add(11*time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(50, 0, nil)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SaveReport(loc, report(fmt.Sprint(i), epoch.Add(time.Duration(i)*time.Second)))
		}()
		go func() {
			defer wg.Done()
			_, _ = s.GetLatest(loc)
		}()
	}
	wg.Wait()

	got, err := s.GetRange(loc, epoch, epoch.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, got, 20)
}
