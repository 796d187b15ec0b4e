package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bizinteltz/api/config"
)

type RedisClient struct {
	Client *redis.Client
	log    *zap.Logger
}

// NewRedis creates a client for the shared analytics counters and pings it.
func NewRedis(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	log.Info("connected to Redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return &RedisClient{Client: rdb, log: log}, nil
}

func (c *RedisClient) Close() {
	if c.Client == nil {
		return
	}
	if err := c.Client.Close(); err != nil {
		c.log.Error("error closing Redis connection", zap.Error(err))
		return
	}
	c.log.Info("Redis connection closed")
}
