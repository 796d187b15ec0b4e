package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"bizinteltz/api/config"
)

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(context.Background(), config.RedisConfig{Addr: mr.Addr()}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedis(context.Background(), config.RedisConfig{Addr: addr}, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestNewPostgresDB_EmptyDSN(t *testing.T) {
	_, err := NewPostgresDB(context.Background(), "", zaptest.NewLogger(t))
	require.Error(t, err)
}

func TestNewClickHouseDB_Disabled(t *testing.T) {
	_, err := NewClickHouseDB(context.Background(), config.ClickHouseConfig{Host: "localhost"}, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLICKHOUSE_HOST")
}
