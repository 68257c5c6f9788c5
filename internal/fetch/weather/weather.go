// Package weather fetches game-time ballpark conditions from OpenWeather,
// with controlled-environment short-circuits for domes and deterministic
// defaults when the API is unavailable.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dingerbot/dingerbot/internal/pkg/ballparks"
	"github.com/dingerbot/dingerbot/internal/pkg/models"
	"github.com/dingerbot/dingerbot/internal/pkg/performance"
	"github.com/dingerbot/dingerbot/internal/pkg/storage"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      DayCache
}

// DayCache is the slice of the Redis cache the client needs.
type DayCache interface {
	Get(ctx context.Context, kind, date string, dest any) error
	Set(ctx context.Context, kind, date string, value any) error
}

// NewClient wires a weather client. cache may be nil; apiKey may be empty,
// in which case every open-air game gets deterministic defaults.
func NewClient(baseURL, apiKey string, cache DayCache, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
	}
}

type apiResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
}

// ForGame returns the conditions at a game's ballpark. Domes get fixed
// controlled conditions; API failures and missing coordinates degrade to
// deterministic per-team defaults so a rerun produces the same numbers.
// The result is never an error: weather is a factor input, not a blocker.
func (c *Client) ForGame(ctx context.Context, game models.Game) models.Weather {
	if park, ok := ballparks.ByCode(game.HomeTeam); ok && park.Controlled() {
		return models.Weather{TempF: 72, Humidity: 50, Source: models.WeatherFromDome}
	}
	if game.ParkLat == 0 || game.ParkLon == 0 {
		slog.Warn("No coordinates for ballpark, using default weather",
			"ballpark", game.Venue, "home_team", game.HomeTeam)
		return defaultWeather(game.HomeTeam)
	}

	if c.cache != nil {
		var cached models.Weather
		if err := c.cache.Get(ctx, "weather:"+game.HomeTeam, game.Date, &cached); err == nil {
			return cached
		} else if !errors.Is(err, storage.ErrCacheMiss) {
			slog.Warn("Weather cache read failed", "error", err)
		}
	}

	w, err := c.fetch(ctx, game.ParkLat, game.ParkLon)
	if err != nil {
		slog.Warn("Weather API failed, using default weather",
			"ballpark", game.Venue, "home_team", game.HomeTeam, "error", err)
		return defaultWeather(game.HomeTeam)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, "weather:"+game.HomeTeam, game.Date, w); err != nil {
			slog.Warn("Weather cache write failed", "error", err)
		}
	}
	return w
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (models.Weather, error) {
	if c.apiKey == "" {
		return models.Weather{}, errors.New("no weather API key configured")
	}

	params := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', 4, 64)},
		"lon":   {strconv.FormatFloat(lon, 'f', 4, 64)},
		"appid": {c.apiKey},
		"units": {"imperial"},
	}
	rawURL := c.baseURL + "/weather?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return models.Weather{}, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		performance.GetTracker().RecordFetch("weather", time.Since(start), false, err)
		return models.Weather{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		err := fmt.Errorf("weather api status %d: %s", resp.StatusCode, string(body))
		performance.GetTracker().RecordFetch("weather", time.Since(start), false, err)
		return models.Weather{}, err
	}

	var data apiResponse
	err = json.NewDecoder(resp.Body).Decode(&data)
	performance.GetTracker().RecordFetch("weather", time.Since(start), err == nil, err)
	if err != nil {
		return models.Weather{}, fmt.Errorf("decode weather response: %w", err)
	}

	return models.Weather{
		TempF:     data.Main.Temp,
		Humidity:  data.Main.Humidity,
		WindSpeed: data.Wind.Speed,
		WindDeg:   data.Wind.Deg,
		Source:    models.WeatherFromAPI,
	}, nil
}

// defaultWeather derives stable pseudo-conditions from the home team code:
// same team, same defaults, every run.
func defaultWeather(homeTeam string) models.Weather {
	h := fnv.New32a()
	h.Write([]byte(homeTeam))
	n := float64(h.Sum32() % 100)

	return models.Weather{
		TempF:     70 + float64(int(n)%20),
		Humidity:  45 + float64(int(n)%20),
		WindSpeed: float64(int(n) % 10),
		WindDeg:   float64(int(n*3.6) % 360),
		Source:    models.WeatherFromDefault,
	}
}
