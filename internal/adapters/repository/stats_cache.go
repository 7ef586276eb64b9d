package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
)

// RedisStatsCache stores computed month overviews keyed by YYYY-MM.
// InvalidateDay drops the day's month and both neighbors: a padding day
// can sit inside the week grid of an adjacent month.
type RedisStatsCache struct {
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStatsCache(cache *redis.Client, logger *zap.Logger) *RedisStatsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStatsCache{
		cache:  cache,
		ttl:    time.Hour,
		logger: logger,
	}
}

func statsKey(monthKey string) string {
	return fmt.Sprintf("stats:month:%s", monthKey)
}

func (c *RedisStatsCache) GetOverview(ctx context.Context, monthKey string) (*domain.MonthOverview, error) {
	val, err := c.cache.Get(ctx, statsKey(monthKey)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var overview domain.MonthOverview
	if err := json.Unmarshal([]byte(val), &overview); err != nil {
		c.logger.Warn("corrupted stats cache, dropping key", zap.String("month", monthKey))
		c.cache.Del(ctx, statsKey(monthKey))
		return nil, nil
	}

	return &overview, nil
}

func (c *RedisStatsCache) SetOverview(ctx context.Context, monthKey string, overview *domain.MonthOverview) error {
	data, err := json.Marshal(overview)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, statsKey(monthKey), data, c.ttl).Err()
}

func (c *RedisStatsCache) InvalidateDay(ctx context.Context, day time.Time) error {
	// Anchor to the 1st so month arithmetic never slides on short months.
	anchor := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	keys := []string{
		statsKey(anchor.AddDate(0, -1, 0).Format("2006-01")),
		statsKey(anchor.Format("2006-01")),
		statsKey(anchor.AddDate(0, 1, 0).Format("2006-01")),
	}
	return c.cache.Del(ctx, keys...).Err()
}
