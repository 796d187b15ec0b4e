package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"bizinteltz/api/models"
)

type recordingSink struct {
	events []models.AnalyticsEvent
	err    error
}

func (r *recordingSink) InsertAnalyticsEvents(_ context.Context, events []models.AnalyticsEvent) error {
	r.events = append(r.events, events...)
	return r.err
}

func newRedisCounters(t *testing.T) (*RedisCounters, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCounters(client), mr
}

func track(t *testing.T, s *AnalyticsStore, action string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := s.Track(context.Background(), models.AnalyticsEvent{Action: action, Timestamp: time.Now()})
		require.NoError(t, err)
	}
}

func TestAnalyticsStore_Counters(t *testing.T) {
	redisCounters, _ := newRedisCounters(t)
	backends := map[string]CounterBackend{
		"memory": NewMemoryCounters(),
		"redis":  redisCounters,
	}

	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			s := NewAnalyticsStore(backend, nil, zaptest.NewLogger(t))

			counts, err := s.Counts(context.Background())
			require.NoError(t, err)
			assert.Equal(t, models.AnalyticsCounts{}, counts)

			track(t, s, models.ActionView, 5)
			track(t, s, models.ActionClick, 3)

			counts, err = s.Counts(context.Background())
			require.NoError(t, err)
			assert.Equal(t, models.AnalyticsCounts{Views: 5, Clicks: 3}, counts)

			counted, err := s.Track(context.Background(), models.AnalyticsEvent{Action: "share"})
			require.NoError(t, err)
			assert.False(t, counted)

			counts, err = s.Counts(context.Background())
			require.NoError(t, err)
			assert.Equal(t, models.AnalyticsCounts{Views: 5, Clicks: 3}, counts)
		})
	}
}

func TestAnalyticsStore_ForwardsEveryEventToSink(t *testing.T) {
	sink := &recordingSink{}
	s := NewAnalyticsStore(NewMemoryCounters(), sink, zaptest.NewLogger(t))

	track(t, s, models.ActionView, 1)
	track(t, s, "hover", 1)

	require.Len(t, sink.events, 2)
	assert.Equal(t, models.ActionView, sink.events[0].Action)
	assert.Equal(t, "hover", sink.events[1].Action)
}

func TestAnalyticsStore_SinkFailureIsNotFatal(t *testing.T) {
	sink := &recordingSink{err: errors.New("clickhouse down")}
	s := NewAnalyticsStore(NewMemoryCounters(), sink, zaptest.NewLogger(t))

	counted, err := s.Track(context.Background(), models.AnalyticsEvent{Action: models.ActionClick})
	require.NoError(t, err)
	assert.True(t, counted)

	counts, err := s.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Clicks)
}

func TestRedisCounters_Keys(t *testing.T) {
	c, mr := newRedisCounters(t)
	require.NoError(t, c.Incr(context.Background(), models.ActionView))
	require.NoError(t, c.Incr(context.Background(), "ignored"))

	got, err := mr.Get("bizintel:analytics:views")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
	assert.Len(t, mr.Keys(), 1)
}

func TestRedisCounters_CorruptValue(t *testing.T) {
	c, mr := newRedisCounters(t)
	require.NoError(t, mr.Set("bizintel:analytics:clicks", "lots"))

	_, err := c.Counts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid counter value")
}

func TestRedisCounters_Unavailable(t *testing.T) {
	c, mr := newRedisCounters(t)
	mr.Close()

	s := NewAnalyticsStore(c, nil, zaptest.NewLogger(t))
	_, err := s.Track(context.Background(), models.AnalyticsEvent{Action: models.ActionView})
	require.Error(t, err)
	_, err = s.Counts(context.Background())
	require.Error(t, err)
}
