// Package mlb is a typed client for the public MLB Stats API: schedule,
// rosters, live lineups, player stats and boxscores.
package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dingerbot/dingerbot/internal/pkg/performance"
)

type Client struct {
	baseURL    string
	season     int
	httpClient *http.Client
}

func NewClient(baseURL string, season int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://statsapi.mlb.com/api/v1"
	}
	if season == 0 {
		season = time.Now().Year()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		season:     season,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Season returns the season the client was configured for.
func (c *Client) Season() int {
	return c.season
}

// getJSONv11 hits the v1.1 surface of the API (the live game feed lives
// there; everything else is v1).
func (c *Client) getJSONv11(ctx context.Context, path string, dest any) error {
	base := strings.Replace(c.baseURL, "/api/v1", "/api/v1.1", 1)
	return c.fetchJSON(ctx, base+path, dest)
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest any) error {
	rawURL := c.baseURL + path
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}
	return c.fetchJSON(ctx, rawURL, dest)
}

func (c *Client) fetchJSON(ctx context.Context, rawURL string, dest any) error {
	start := time.Now()
	body, err := c.doRequest(ctx, rawURL)
	performance.GetTracker().RecordFetch("mlb", time.Since(start), err == nil, err)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("unmarshal mlb response: %w", err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}
