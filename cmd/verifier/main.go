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

	"github.com/dingerbot/dingerbot/internal/fetch/mlb"
	"github.com/dingerbot/dingerbot/internal/pkg/config"
	"github.com/dingerbot/dingerbot/internal/pkg/logging"
	"github.com/dingerbot/dingerbot/internal/pkg/storage"
	"github.com/dingerbot/dingerbot/internal/predictor"
	"github.com/dingerbot/dingerbot/internal/track"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	var configPath, date string
	var reportDays int

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.StringVar(&date, "date", "", "Verify a single date YYYY-MM-DD (default: all pending past dates)")
	flag.IntVar(&reportDays, "report-days", 0, "Send the accuracy report for the last N days to Telegram")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.SetupLogger("verifier", slog.LevelInfo)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := storage.NewPredictionStore(cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer store.Close()

	season := cfg.MLB.Season
	if season == 0 {
		season = time.Now().Year()
	}
	api := mlb.NewClient(cfg.MLB.BaseURL, season, 30*time.Second)
	verifier := track.NewVerifier(api, store)

	if err := verify(ctx, verifier, date); err != nil {
		slog.Error("Verification failed", "error", err)
		os.Exit(1)
	}

	if reportDays > 0 {
		if err := sendAccuracyReport(ctx, verifier, cfg, reportDays); err != nil {
			slog.Error("Accuracy report failed", "error", err)
			os.Exit(1)
		}
	}
}

func verify(ctx context.Context, verifier *track.Verifier, date string) error {
	if date != "" {
		hits, err := verifier.VerifyDate(ctx, date)
		if err != nil {
			return err
		}
		slog.Info("Date verified", "date", date, "hits", hits)
		return nil
	}
	today := time.Now().Format("2006-01-02")
	return verifier.VerifyPending(ctx, today)
}

func sendAccuracyReport(ctx context.Context, verifier *track.Verifier, cfg *config.Config, days int) error {
	to := time.Now().Format("2006-01-02")
	from := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	report, err := verifier.AccuracyReport(ctx, from, to)
	if err != nil {
		return err
	}
	fmt.Println(report)

	if cfg.Telegram.BotToken == "" {
		slog.Info("No Telegram token configured, report printed only")
		return nil
	}
	notifier, err := predictor.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		return err
	}
	defer notifier.Stop()
	return notifier.SendReport(ctx, report)
}
