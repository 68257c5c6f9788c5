package savant

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dingerbot/dingerbot/internal/pkg/storage"
)

// DayCache is the slice of the Redis cache the fetcher needs.
type DayCache interface {
	Get(ctx context.Context, kind, date string, dest any) error
	Set(ctx context.Context, kind, date string, value any) error
}

// Data is both aggregation windows for one prediction date.
type Data struct {
	Season map[int]BatterName  `json:"season"`
	Recent map[int]BatterName  `json:"recent"`
	Pitch  map[int]PitcherName `json:"pitchers"`
}

// longWindowDays is the wide contact-quality window. The short window
// length comes from config (default 15).
const longWindowDays = 45

// Fetcher downloads and aggregates Statcast windows, caching the result
// per day so reruns skip the download.
type Fetcher struct {
	client     *Client
	cache      DayCache
	recentDays int
}

// NewFetcher wires a fetcher. cache may be nil; caching is then skipped.
func NewFetcher(client *Client, cache DayCache, recentDays int) *Fetcher {
	if recentDays <= 0 {
		recentDays = 15
	}
	return &Fetcher{client: client, cache: cache, recentDays: recentDays}
}

// Profiles returns the aggregated Statcast profiles for a prediction date:
// one download covering the long window, with the recent window filtered
// out of it by game date. Cache errors degrade to a direct fetch; only the
// download itself can fail the call.
func (f *Fetcher) Profiles(ctx context.Context, date string) (*Data, error) {
	const kind = "savant"

	if f.cache != nil {
		var cached Data
		err := f.cache.Get(ctx, kind, date, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, storage.ErrCacheMiss) {
			slog.Warn("Savant cache read failed, fetching directly", "error", err)
		}
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, err
	}
	end := day.AddDate(0, 0, -1).Format("2006-01-02")
	longStart := day.AddDate(0, 0, -longWindowDays).Format("2006-01-02")
	recentStart := day.AddDate(0, 0, -f.recentDays).Format("2006-01-02")

	events, err := f.client.FetchEvents(ctx, longStart, end)
	if err != nil {
		return nil, err
	}

	var recentEvents []Event
	for _, e := range events {
		if e.GameDate >= recentStart {
			recentEvents = append(recentEvents, e)
		}
	}

	data := &Data{
		Season: AggregateBatters(events),
		Recent: AggregateBatters(recentEvents),
		Pitch:  AggregatePitchers(events),
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, kind, date, data); err != nil {
			slog.Warn("Savant cache write failed", "error", err)
		}
	}
	return data, nil
}
