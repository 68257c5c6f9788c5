package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/dingerbot/dingerbot/internal/fetch/handedness"
	"github.com/dingerbot/dingerbot/internal/fetch/lineups"
	"github.com/dingerbot/dingerbot/internal/fetch/mlb"
	"github.com/dingerbot/dingerbot/internal/fetch/rotowire"
	"github.com/dingerbot/dingerbot/internal/fetch/savant"
	"github.com/dingerbot/dingerbot/internal/fetch/weather"
	"github.com/dingerbot/dingerbot/internal/pkg/config"
	"github.com/dingerbot/dingerbot/internal/pkg/httpapi"
	"github.com/dingerbot/dingerbot/internal/pkg/logging"
	"github.com/dingerbot/dingerbot/internal/pkg/models"
	"github.com/dingerbot/dingerbot/internal/pkg/performance"
	"github.com/dingerbot/dingerbot/internal/pkg/storage"
	"github.com/dingerbot/dingerbot/internal/predictor"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	var configPath, date string
	var forceEarly, noTelegram bool

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.StringVar(&date, "date", "", "Prediction date YYYY-MM-DD (default today)")
	flag.BoolVar(&forceEarly, "early", false, "Force early-run mode (projected lineups)")
	flag.BoolVar(&noTelegram, "no-telegram", false, "Skip sending the Telegram report")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.SetupLogger("predictor", slog.LevelInfo)

	now := time.Now()
	if date == "" {
		date = now.Format("2006-01-02")
	}
	earlyRun := forceEarly || now.Hour() < cfg.Predictor.EarlyRunHour

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := storage.NewPredictionStore(cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer store.Close()

	var cache *storage.DayCache
	if cfg.Redis.Addr != "" {
		cache, err = storage.NewDayCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Warn("Redis unavailable, fetch caching disabled", "error", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	httpapi.NewServer(store).Run(ctx, cfg.HTTP.Addr)

	season := cfg.MLB.Season
	if season == 0 {
		season = now.Year()
	}
	api := mlb.NewClient(cfg.MLB.BaseURL, season, 30*time.Second)

	var savantCache savant.DayCache
	var weatherCache weather.DayCache
	if cache != nil {
		savantCache = cache
		weatherCache = cache
	}
	savantFetcher := savant.NewFetcher(savant.NewClient(cfg.Savant.BaseURL, 2*time.Minute), savantCache, cfg.Savant.RecentDays)
	weatherClient := weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, weatherCache, 10*time.Second)

	var roto lineups.RotoSource
	if cfg.Rotowire.Enabled {
		roto = rotowire.NewScraper(cfg.Rotowire.LineupsURL)
	}
	lineupFetcher := lineups.NewFetcher(api, roto)

	var csvHands *handedness.Lookup
	if cfg.Predictor.BattersCSV != "" {
		csvHands, err = handedness.Load(cfg.Predictor.BattersCSV, cfg.Predictor.PitchersCSV)
		if err != nil {
			slog.Warn("Handedness CSVs unavailable", "error", err)
			csvHands = nil
		}
	}

	var notifier *predictor.Notifier
	if cfg.Telegram.BotToken != "" && !noTelegram {
		notifier, err = predictor.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			slog.Warn("Telegram unavailable, report will not be sent", "error", err)
			notifier = nil
		} else {
			defer notifier.Stop()
		}
	}

	deps := pipeline{
		api:         api,
		lineups:     lineupFetcher,
		weather:     weatherClient,
		savant:      savantFetcher,
		store:       store,
		notifier:    notifier,
		csvHands:    csvHands,
		topN:        cfg.Predictor.TopN,
		recentDays:  7,
		concurrency: cfg.MLB.Concurrency,
	}

	slog.Info("Starting prediction run", "date", date, "early_run", earlyRun)
	if err := deps.run(ctx, date, earlyRun); err != nil {
		slog.Error("Prediction run failed", "date", date, "error", err)
		os.Exit(1)
	}
	performance.GetTracker().PrintSummary()
}

type pipeline struct {
	api      *mlb.Client
	lineups  *lineups.Fetcher
	weather  *weather.Client
	savant   *savant.Fetcher
	store    *storage.PredictionStore
	notifier *predictor.Notifier
	csvHands *handedness.Lookup

	topN        int
	recentDays  int
	concurrency int
}

// run executes one full prediction cycle: schedule, lineups, weather, stats,
// Statcast profiles, scoring, persistence and the Telegram report.
func (p *pipeline) run(ctx context.Context, date string, earlyRun bool) error {
	start := time.Now()
	var timings performance.StageTimings

	t0 := time.Now()
	scheduled, err := p.api.Schedule(ctx, date)
	timings.Schedule = time.Since(t0)
	if err != nil {
		return fmt.Errorf("fetch schedule: %w", err)
	}
	if len(scheduled) == 0 {
		slog.Info("No games scheduled", "date", date)
		return nil
	}
	slog.Info("Schedule fetched", "date", date, "games", len(scheduled))

	t0 = time.Now()
	games := make([]predictor.GameData, 0, len(scheduled))
	for _, sg := range scheduled {
		games = append(games, predictor.GameData{
			Game:     sg.Game,
			Pitchers: sg.Pitchers,
			Lineup:   p.lineups.ForGame(ctx, sg.Game, earlyRun),
		})
	}
	timings.Lineups = time.Since(t0)

	t0 = time.Now()
	for i := range games {
		games[i].Weather = p.weather.ForGame(ctx, games[i].Game)
	}
	timings.Weather = time.Since(t0)

	batters, pitchers := collectPlayers(games)

	t0 = time.Now()
	hands := p.fetchHands(ctx, batters, pitchers)

	now := time.Now()
	seasonStats, recentStats := p.api.FetchAllBatterStats(ctx, batters, hands, p.recentDays, p.concurrency, now)
	pitcherStats := p.api.FetchAllPitcherStats(ctx, pitchers, hands, 7, p.concurrency, now)
	timings.Stats = time.Since(t0)

	t0 = time.Now()
	if data, err := p.savant.Profiles(ctx, date); err != nil {
		slog.Warn("Statcast profiles unavailable, scoring on estimates", "error", err)
	} else {
		data.Merge(seasonStats, recentStats, pitcherStats)
	}
	timings.Statcast = time.Since(t0)

	idx := buildIndex(seasonStats, recentStats, pitcherStats)

	t0 = time.Now()
	predictions := predictor.NewEngine(nil).Predict(games, idx)
	categories := predictor.Categorize(predictions, p.topN)
	timings.Scoring = time.Since(t0)

	run := &models.Run{
		RunID:      uuid.NewString(),
		Date:       date,
		EarlyRun:   earlyRun,
		Categories: categories,
		CreatedAt:  time.Now(),
	}

	t0 = time.Now()
	if err := p.store.StoreRun(ctx, run); err != nil {
		return fmt.Errorf("store run: %w", err)
	}
	timings.Store = time.Since(t0)

	if p.notifier != nil {
		report := predictor.FormatReport(categories, date, earlyRun)
		if err := p.notifier.SendReport(ctx, report); err != nil {
			slog.Error("Telegram report failed", "error", err)
		}
	}

	timings.Total = time.Since(start)
	performance.GetTracker().RecordRun(timings, len(games), len(batters), len(predictions))
	slog.Info("Prediction run complete",
		"run_id", run.RunID, "date", date,
		"games", len(games), "batters", len(batters), "predictions", len(predictions),
		"locks", len(categories.Locks), "hot_picks", len(categories.HotPicks), "sleepers", len(categories.Sleepers))
	return nil
}

// collectPlayers gathers every distinct batter and announced starter on the
// slate. Batters without a person ID cannot be keyed and are left out here;
// the engine skips them anyway.
func collectPlayers(games []predictor.GameData) ([]models.Batter, []models.Pitcher) {
	var batters []models.Batter
	var pitchers []models.Pitcher
	seen := make(map[int]bool)

	for _, gd := range games {
		for _, side := range [][]models.Batter{gd.Lineup.Home, gd.Lineup.Away} {
			for _, b := range side {
				if b.PersonID != 0 && !seen[b.PersonID] {
					seen[b.PersonID] = true
					batters = append(batters, b)
				}
			}
		}
		for _, pit := range []models.Pitcher{gd.Pitchers.Home, gd.Pitchers.Away} {
			if pit.Announced() && pit.PersonID != 0 && !seen[pit.PersonID] {
				seen[pit.PersonID] = true
				pitchers = append(pitchers, pit)
			}
		}
	}
	return batters, pitchers
}

// fetchHands resolves handedness from the API, filling the gaps from the
// CSV tables when those are configured.
func (p *pipeline) fetchHands(ctx context.Context, batters []models.Batter, pitchers []models.Pitcher) map[int]mlb.PersonHand {
	ids := make([]int, 0, len(batters)+len(pitchers))
	for _, b := range batters {
		ids = append(ids, b.PersonID)
	}
	for _, pit := range pitchers {
		ids = append(ids, pit.PersonID)
	}

	hands, err := p.api.Hands(ctx, ids)
	if err != nil {
		slog.Warn("Handedness fetch failed", "error", err)
		hands = make(map[int]mlb.PersonHand, len(ids))
	}

	if p.csvHands == nil {
		return hands
	}
	for _, b := range batters {
		h := hands[b.PersonID]
		if h.Bats == "" || h.Bats == models.HandUnknown {
			h.Bats = p.csvHands.Bats(b.Name)
			hands[b.PersonID] = h
		}
	}
	for _, pit := range pitchers {
		h := hands[pit.PersonID]
		if h.Throws == "" || h.Throws == models.HandUnknown {
			h.Throws = p.csvHands.Throws(pit.Name)
			hands[pit.PersonID] = h
		}
	}
	return hands
}

func buildIndex(
	season map[int]*models.BatterStats,
	recent map[int]*models.RecentBatterStats,
	pitchers map[int]*models.PitcherStats,
) *predictor.StatsIndex {
	idx := &predictor.StatsIndex{
		Batters:  make(map[int]models.BatterStats, len(season)),
		Recent:   make(map[int]models.RecentBatterStats, len(recent)),
		Pitchers: make(map[int]models.PitcherStats, len(pitchers)),
	}
	for id, s := range season {
		idx.Batters[id] = *s
	}
	for id, r := range recent {
		idx.Recent[id] = *r
	}
	for id, s := range pitchers {
		idx.Pitchers[id] = *s
	}
	return idx
}
