package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
)

func setupTestRedis(t *testing.T) *redis.Client {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       1,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping integration test (Redis down): %v", err)
	}

	rdb.FlushDB(ctx)
	return rdb
}

func TestRedisStatsCache_Integration(t *testing.T) {
	rdb := setupTestRedis(t)
	defer rdb.Close()

	cache := NewRedisStatsCache(rdb, nil)
	ctx := context.Background()

	overview := &domain.MonthOverview{
		Month:   "2025-03",
		Monthly: domain.NewStatsSnapshot(5, 31),
	}

	t.Run("Set then Get round trip", func(t *testing.T) {
		require.NoError(t, cache.SetOverview(ctx, "2025-03", overview))

		got, err := cache.GetOverview(ctx, "2025-03")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, overview.Month, got.Month)
		assert.Equal(t, overview.Monthly, got.Monthly)
	})

	t.Run("Miss returns nil without error", func(t *testing.T) {
		got, err := cache.GetOverview(ctx, "1999-01")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Corrupted entry is dropped, treated as miss", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, "stats:month:2025-06", "{not json", time.Minute).Err())

		got, err := cache.GetOverview(ctx, "2025-06")
		assert.NoError(t, err)
		assert.Nil(t, got)

		exists, err := rdb.Exists(ctx, "stats:month:2025-06").Result()
		assert.NoError(t, err)
		assert.Zero(t, exists)
	})

	t.Run("InvalidateDay drops month and neighbors", func(t *testing.T) {
		for _, m := range []string{"2025-02", "2025-03", "2025-04", "2025-05"} {
			require.NoError(t, cache.SetOverview(ctx, m, &domain.MonthOverview{Month: m}))
		}

		// March 31: a day whose week grid can spill into April, and whose
		// month arithmetic must not slide over short February.
		require.NoError(t, cache.InvalidateDay(ctx, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)))

		for _, m := range []string{"2025-02", "2025-03", "2025-04"} {
			got, err := cache.GetOverview(ctx, m)
			assert.NoError(t, err)
			assert.Nil(t, got, "expected %s to be invalidated", m)
		}

		// May is out of reach of any March day's grid.
		got, err := cache.GetOverview(ctx, "2025-05")
		assert.NoError(t, err)
		assert.NotNil(t, got)
	})
}

func TestCachedHabitRepository_Integration(t *testing.T) {
	rdb := setupTestRedis(t)
	defer rdb.Close()

	ctx := context.Background()

	t.Run("List populates cache, write invalidates it", func(t *testing.T) {
		rdb.FlushDB(ctx)

		inner := NewInMemoryHabitRepository()
		repo := NewCachedHabitRepository(inner, rdb, nil)

		h, _ := domain.NewHabit("Cached", "", "", "", 1, 0)
		require.NoError(t, repo.Create(ctx, h))

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)

		exists, err := rdb.Exists(ctx, habitListKey).Result()
		require.NoError(t, err)
		assert.EqualValues(t, 1, exists)

		// A write must drop the cached list so the next read is fresh.
		h2, _ := domain.NewHabit("Second", "", "", "", 1, 1)
		require.NoError(t, repo.Create(ctx, h2))

		exists, err = rdb.Exists(ctx, habitListKey).Result()
		require.NoError(t, err)
		assert.Zero(t, exists)

		list, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("Corrupted cache degrades to the inner repository", func(t *testing.T) {
		rdb.FlushDB(ctx)

		inner := NewInMemoryHabitRepository()
		repo := NewCachedHabitRepository(inner, rdb, nil)

		h, _ := domain.NewHabit("Real", "", "", "", 1, 0)
		require.NoError(t, inner.Create(ctx, h))

		require.NoError(t, rdb.Set(ctx, habitListKey, "][", time.Minute).Err())

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Real", list[0].Name)
	})
}
