package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bizinteltz/api/database"
	"bizinteltz/api/models"
)

// CounterBackend keeps the process-wide view/click totals.
type CounterBackend interface {
	Incr(ctx context.Context, action string) error
	Counts(ctx context.Context) (models.AnalyticsCounts, error)
}

// EventSink receives raw tracking events.
type EventSink interface {
	InsertAnalyticsEvents(ctx context.Context, events []models.AnalyticsEvent) error
}

type AnalyticsStore struct {
	counters CounterBackend
	sink     EventSink
	log      *zap.Logger
}

// NewAnalyticsStore wires counters and an optional sink (nil disables it).
func NewAnalyticsStore(counters CounterBackend, sink EventSink, log *zap.Logger) *AnalyticsStore {
	return &AnalyticsStore{counters: counters, sink: sink, log: log.Named("analytics")}
}

// IsCountedAction reports whether an action moves one of the counters.
func IsCountedAction(action string) bool {
	return action == models.ActionView || action == models.ActionClick
}

// Track forwards the event to the sink and bumps the matching counter.
// Unknown actions are not counted and are not an error. Sink failures are
// logged and swallowed.
func (s *AnalyticsStore) Track(ctx context.Context, event models.AnalyticsEvent) (bool, error) {
	if s.sink != nil {
		if err := s.sink.InsertAnalyticsEvents(ctx, []models.AnalyticsEvent{event}); err != nil {
			s.log.Warn("failed to forward analytics event", zap.String("event_id", event.EventID), zap.Error(err))
		}
	}

	if !IsCountedAction(event.Action) {
		s.log.Debug("ignoring analytics action", zap.String("action", event.Action))
		return false, nil
	}
	if err := s.counters.Incr(ctx, event.Action); err != nil {
		return false, fmt.Errorf("failed to increment %s counter: %w", event.Action, err)
	}
	return true, nil
}

func (s *AnalyticsStore) Counts(ctx context.Context) (models.AnalyticsCounts, error) {
	counts, err := s.counters.Counts(ctx)
	if err != nil {
		return models.AnalyticsCounts{}, fmt.Errorf("failed to read analytics counters: %w", err)
	}
	return counts, nil
}

// MemoryCounters is the default, process-local counter backend.
type MemoryCounters struct {
	views  atomic.Int64
	clicks atomic.Int64
}

func NewMemoryCounters() *MemoryCounters {
	return &MemoryCounters{}
}

func (m *MemoryCounters) Incr(_ context.Context, action string) error {
	switch action {
	case models.ActionView:
		m.views.Add(1)
	case models.ActionClick:
		m.clicks.Add(1)
	}
	return nil
}

func (m *MemoryCounters) Counts(_ context.Context) (models.AnalyticsCounts, error) {
	return models.AnalyticsCounts{Views: m.views.Load(), Clicks: m.clicks.Load()}, nil
}

const redisCounterPrefix = "bizintel:analytics:"

// RedisCounters shares the totals between API replicas.
type RedisCounters struct {
	client *redis.Client
}

func NewRedisCounters(client *redis.Client) *RedisCounters {
	return &RedisCounters{client: client}
}

func redisCounterKey(action string) string {
	switch action {
	case models.ActionView:
		return redisCounterPrefix + "views"
	case models.ActionClick:
		return redisCounterPrefix + "clicks"
	}
	return ""
}

func (r *RedisCounters) Incr(ctx context.Context, action string) error {
	key := redisCounterKey(action)
	if key == "" {
		return nil
	}
	return r.client.Incr(ctx, key).Err()
}

func (r *RedisCounters) Counts(ctx context.Context) (models.AnalyticsCounts, error) {
	vals, err := r.client.MGet(ctx, redisCounterKey(models.ActionView), redisCounterKey(models.ActionClick)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return models.AnalyticsCounts{}, err
	}

	var counts models.AnalyticsCounts
	if len(vals) == 2 {
		if counts.Views, err = parseRedisCount(vals[0]); err != nil {
			return models.AnalyticsCounts{}, err
		}
		if counts.Clicks, err = parseRedisCount(vals[1]); err != nil {
			return models.AnalyticsCounts{}, err
		}
	}
	return counts, nil
}

func parseRedisCount(v interface{}) (int64, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected counter value type %T", v)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid counter value %q: %w", s, err)
	}
	return n, nil
}

// ClickHouseSink batches raw events into the analytics_events table.
type ClickHouseSink struct {
	DB  *database.ClickHouseClient
	log *zap.Logger
}

func NewClickHouseSink(ch *database.ClickHouseClient, log *zap.Logger) *ClickHouseSink {
	return &ClickHouseSink{DB: ch, log: log.Named("clickhouse")}
}

// EnsureSchema creates analytics_events when it does not exist yet.
func (c *ClickHouseSink) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS analytics_events (
			event_id    String,
			business_id String,
			action      LowCardinality(String),
			ip_address  String,
			user_agent  String,
			timestamp   DateTime64(3, 'UTC')
		)
		ENGINE = MergeTree
		ORDER BY (action, timestamp)
	`
	if err := c.DB.Conn.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create analytics_events table: %w", err)
	}
	return nil
}

func (c *ClickHouseSink) InsertAnalyticsEvents(ctx context.Context, events []models.AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}

	// Column order must match the analytics_events table.
	batch, err := c.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO analytics_events (
			event_id, business_id, action, ip_address, user_agent, timestamp
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, event := range events {
		if err := batch.Append(
			event.EventID,
			event.BusinessID,
			event.Action,
			event.IPAddress,
			event.UserAgent,
			event.Timestamp,
		); err != nil {
			c.log.Error("error appending event to batch", zap.String("event_id", event.EventID), zap.Error(err))
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	c.log.Debug("inserted analytics events", zap.Int("count", len(events)))
	return nil
}
