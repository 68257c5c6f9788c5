package performance

import (
	"log/slog"
	"sync"
	"time"
)

// Tracker tracks performance metrics for prediction runs.
type Tracker struct {
	mu sync.RWMutex

	// Overall metrics
	TotalRuns        int
	TotalGames       int
	TotalBatters     int
	TotalPredictions int

	// Timing metrics
	TotalDuration    time.Duration
	ScheduleDuration time.Duration
	LineupDuration   time.Duration
	StatsDuration    time.Duration
	StatcastDuration time.Duration
	WeatherDuration  time.Duration
	ScoringDuration  time.Duration
	StoreDuration    time.Duration

	// Upstream fetch metrics
	FetchOperations []FetchOperation
}

// FetchOperation tracks a single upstream call (MLB API, Savant, weather).
type FetchOperation struct {
	Source    string
	Duration  time.Duration
	Success   bool
	Error     string
	Timestamp time.Time
}

var globalTracker = &Tracker{
	FetchOperations: make([]FetchOperation, 0, 1000),
}

// GetTracker returns the global performance tracker
func GetTracker() *Tracker {
	return globalTracker
}

// Reset resets all metrics
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.TotalRuns = 0
	t.TotalGames = 0
	t.TotalBatters = 0
	t.TotalPredictions = 0
	t.TotalDuration = 0
	t.ScheduleDuration = 0
	t.LineupDuration = 0
	t.StatsDuration = 0
	t.StatcastDuration = 0
	t.WeatherDuration = 0
	t.ScoringDuration = 0
	t.StoreDuration = 0
	t.FetchOperations = t.FetchOperations[:0]
}

// StageTimings carries the per-stage durations of one prediction run.
type StageTimings struct {
	Schedule time.Duration
	Lineups  time.Duration
	Stats    time.Duration
	Statcast time.Duration
	Weather  time.Duration
	Scoring  time.Duration
	Store    time.Duration
	Total    time.Duration
}

// RecordRun records a complete prediction run
func (t *Tracker) RecordRun(timings StageTimings, games, batters, predictions int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.TotalRuns++
	t.TotalGames += games
	t.TotalBatters += batters
	t.TotalPredictions += predictions
	t.TotalDuration += timings.Total
	t.ScheduleDuration += timings.Schedule
	t.LineupDuration += timings.Lineups
	t.StatsDuration += timings.Stats
	t.StatcastDuration += timings.Statcast
	t.WeatherDuration += timings.Weather
	t.ScoringDuration += timings.Scoring
	t.StoreDuration += timings.Store
}

// RecordFetch records a single upstream fetch
func (t *Tracker) RecordFetch(source string, duration time.Duration, success bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	errStr := ""
	if err != nil {
		errStr = err.Error()
	}

	t.FetchOperations = append(t.FetchOperations, FetchOperation{
		Source:    source,
		Duration:  duration,
		Success:   success,
		Error:     errStr,
		Timestamp: time.Now(),
	})
}

// PrintSummary prints a performance summary through the default logger.
func (t *Tracker) PrintSummary() {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.TotalRuns == 0 {
		slog.Info("No performance data collected yet")
		return
	}

	runs := time.Duration(t.TotalRuns)
	slog.Info("Run statistics",
		"total_runs", t.TotalRuns,
		"total_games", t.TotalGames,
		"total_batters", t.TotalBatters,
		"total_predictions", t.TotalPredictions)

	slog.Info("Timing breakdown (average per run)",
		"schedule", t.ScheduleDuration/runs,
		"lineups", t.LineupDuration/runs,
		"stats", t.StatsDuration/runs,
		"statcast", t.StatcastDuration/runs,
		"weather", t.WeatherDuration/runs,
		"scoring", t.ScoringDuration/runs,
		"store", t.StoreDuration/runs,
		"total", t.TotalDuration/runs)

	for source, stat := range t.fetchStats() {
		slog.Info("Upstream fetches",
			"source", source,
			"count", stat.count,
			"avg_time", stat.total/time.Duration(stat.count),
			"success_rate", float64(stat.success)/float64(stat.count)*100)
	}
}

type fetchStat struct {
	count   int
	total   time.Duration
	success int
}

func (t *Tracker) fetchStats() map[string]fetchStat {
	stats := make(map[string]fetchStat)
	for _, op := range t.FetchOperations {
		s := stats[op.Source]
		s.count++
		s.total += op.Duration
		if op.Success {
			s.success++
		}
		stats[op.Source] = s
	}
	return stats
}

// MetricsResponse represents the JSON response structure for /metrics endpoint
type MetricsResponse struct {
	Overall struct {
		TotalRuns        int `json:"total_runs"`
		TotalGames       int `json:"total_games"`
		TotalBatters     int `json:"total_batters"`
		TotalPredictions int `json:"total_predictions"`
	} `json:"overall"`

	Timing struct {
		TotalDuration    string `json:"total_duration"`
		ScheduleDuration string `json:"schedule_duration"`
		LineupDuration   string `json:"lineup_duration"`
		StatsDuration    string `json:"stats_duration"`
		StatcastDuration string `json:"statcast_duration"`
		WeatherDuration  string `json:"weather_duration"`
		ScoringDuration  string `json:"scoring_duration"`
		StoreDuration    string `json:"store_duration"`
	} `json:"timing"`

	Fetches map[string]struct {
		Count       int     `json:"count"`
		AvgTime     string  `json:"avg_time"`
		SuccessRate float64 `json:"success_rate"`
	} `json:"fetches"`
}

// GetMetrics returns structured metrics for the JSON API
func (t *Tracker) GetMetrics() MetricsResponse {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var resp MetricsResponse

	resp.Overall.TotalRuns = t.TotalRuns
	resp.Overall.TotalGames = t.TotalGames
	resp.Overall.TotalBatters = t.TotalBatters
	resp.Overall.TotalPredictions = t.TotalPredictions

	if t.TotalRuns > 0 {
		runs := time.Duration(t.TotalRuns)
		resp.Timing.TotalDuration = (t.TotalDuration / runs).String()
		resp.Timing.ScheduleDuration = (t.ScheduleDuration / runs).String()
		resp.Timing.LineupDuration = (t.LineupDuration / runs).String()
		resp.Timing.StatsDuration = (t.StatsDuration / runs).String()
		resp.Timing.StatcastDuration = (t.StatcastDuration / runs).String()
		resp.Timing.WeatherDuration = (t.WeatherDuration / runs).String()
		resp.Timing.ScoringDuration = (t.ScoringDuration / runs).String()
		resp.Timing.StoreDuration = (t.StoreDuration / runs).String()
	}

	resp.Fetches = make(map[string]struct {
		Count       int     `json:"count"`
		AvgTime     string  `json:"avg_time"`
		SuccessRate float64 `json:"success_rate"`
	})
	for source, stat := range t.fetchStats() {
		resp.Fetches[source] = struct {
			Count       int     `json:"count"`
			AvgTime     string  `json:"avg_time"`
			SuccessRate float64 `json:"success_rate"`
		}{
			Count:       stat.count,
			AvgTime:     (stat.total / time.Duration(stat.count)).String(),
			SuccessRate: float64(stat.success) / float64(stat.count) * 100,
		}
	}

	return resp
}
