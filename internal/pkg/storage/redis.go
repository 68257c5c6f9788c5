package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DayCache caches per-date fetch results (Statcast aggregations, weather,
// lineups) in Redis. Entries expire at the end of the prediction date so a
// rerun for the same slate reuses the expensive downloads.
type DayCache struct {
	client *redis.Client
}

// ErrCacheMiss is returned when a key is absent. Callers treat it as "go
// fetch", never as a failure.
var ErrCacheMiss = errors.New("cache miss")

func NewDayCache(addr, password string, db int) (*DayCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &DayCache{client: client}, nil
}

// Get unmarshals the cached value for (kind, date) into dest.
func (c *DayCache) Get(ctx context.Context, kind, date string, dest any) error {
	data, err := c.client.Get(ctx, cacheKey(kind, date)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to read cache: %w", err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached %s: %w", kind, err)
	}
	return nil
}

// Set stores value under (kind, date) with a TTL running to the end of the
// date in the local timezone.
func (c *DayCache) Set(ctx context.Context, kind, date string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}
	return c.client.Set(ctx, cacheKey(kind, date), data, ttlUntilEndOfDay(date, time.Now())).Err()
}

func (c *DayCache) Close() error {
	return c.client.Close()
}

func cacheKey(kind, date string) string {
	return fmt.Sprintf("dingerbot:%s:%s", kind, date)
}

// ttlUntilEndOfDay returns the duration from now until midnight after the
// given date. Past dates and unparseable dates get a one-hour floor so a
// backfill run still benefits from caching within the run.
func ttlUntilEndOfDay(date string, now time.Time) time.Duration {
	d, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return time.Hour
	}
	end := d.AddDate(0, 0, 1)
	ttl := end.Sub(now)
	if ttl < time.Hour {
		return time.Hour
	}
	return ttl
}
