// Package savant downloads Statcast event CSVs from Baseball Savant and
// aggregates them into per-batter and per-pitcher contact profiles.
package savant

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dingerbot/dingerbot/internal/pkg/performance"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://baseballsavant.mlb.com"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Event is one Statcast pitch record. Launch fields are only meaningful
// when HasContact is true (the CSV leaves them empty on non-contact).
type Event struct {
	GameDate    string  `json:"game_date"`
	PlayerName  string  `json:"player_name"`
	BatterID    int     `json:"batter"`
	PitcherID   int     `json:"pitcher"`
	Stand       string  `json:"stand"`
	LaunchSpeed float64 `json:"launch_speed"`
	LaunchAngle float64 `json:"launch_angle"`
	HasContact  bool    `json:"has_contact"`
	HitDistance float64 `json:"hit_distance_sc"`
	PlateX      float64 `json:"plate_x"`
	PlateZ      float64 `json:"plate_z"`
	HasLocation bool    `json:"has_location"`
	Outcome     string  `json:"events"`
	PitchType   string  `json:"pitch_type"`
	Barrel      bool    `json:"barrel"`
}

// FetchEvents downloads the Statcast search CSV for a date range (inclusive,
// YYYY-MM-DD) and parses it into events.
func (c *Client) FetchEvents(ctx context.Context, startDate, endDate string) ([]Event, error) {
	params := url.Values{
		"all":          {"true"},
		"type":         {"details"},
		"player_type":  {"batter"},
		"game_date_gt": {startDate},
		"game_date_lt": {endDate},
	}
	rawURL := c.baseURL + "/statcast_search/csv?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		performance.GetTracker().RecordFetch("savant", time.Since(start), false, err)
		return nil, fmt.Errorf("fetch statcast csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("statcast csv status %d: %s", resp.StatusCode, string(body))
		performance.GetTracker().RecordFetch("savant", time.Since(start), false, err)
		return nil, err
	}

	events, err := ParseEvents(resp.Body)
	performance.GetTracker().RecordFetch("savant", time.Since(start), err == nil, err)
	if err != nil {
		return nil, fmt.Errorf("parse statcast csv: %w", err)
	}
	return events, nil
}

// ParseEvents reads the Statcast CSV. Columns are located by header name so
// column reordering upstream does not break parsing; unknown columns are
// ignored.
func ParseEvents(r io.Reader) ([]Event, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var events []Event
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}

		e := Event{
			GameDate:   field(record, "game_date"),
			PlayerName: field(record, "player_name"),
			Stand:      field(record, "stand"),
			Outcome:    field(record, "events"),
			PitchType:  field(record, "pitch_type"),
		}
		e.BatterID, _ = strconv.Atoi(field(record, "batter"))
		e.PitcherID, _ = strconv.Atoi(field(record, "pitcher"))

		ls, lsOK := parseFloat(field(record, "launch_speed"))
		la, laOK := parseFloat(field(record, "launch_angle"))
		if lsOK && laOK {
			e.LaunchSpeed = ls
			e.LaunchAngle = la
			e.HasContact = true
		}
		if d, ok := parseFloat(field(record, "hit_distance_sc")); ok {
			e.HitDistance = d
		}

		px, pxOK := parseFloat(field(record, "plate_x"))
		pz, pzOK := parseFloat(field(record, "plate_z"))
		if pxOK && pzOK {
			e.PlateX = px
			e.PlateZ = pz
			e.HasLocation = true
		}

		if b := field(record, "barrel"); b == "1" {
			e.Barrel = true
		}

		events = append(events, e)
	}
	return events, nil
}

func parseFloat(s string) (float64, bool) {
	if s == "" || s == "null" || s == "NA" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
