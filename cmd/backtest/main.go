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

	"github.com/dingerbot/dingerbot/internal/backtest"
	"github.com/dingerbot/dingerbot/internal/pkg/config"
	"github.com/dingerbot/dingerbot/internal/pkg/logging"
	"github.com/dingerbot/dingerbot/internal/pkg/storage"
	"github.com/dingerbot/dingerbot/internal/predictor"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	var configPath, from, to string
	var seed int64
	var showWeights bool

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.StringVar(&from, "from", "", "Start date YYYY-MM-DD (default: 30 days ago)")
	flag.StringVar(&to, "to", "", "End date YYYY-MM-DD (default: today)")
	flag.Int64Var(&seed, "seed", 42, "Seed for the factor-importance simulation")
	flag.BoolVar(&showWeights, "weights", false, "Print the suggested weight table")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.SetupLogger("backtest", slog.LevelInfo)

	now := time.Now()
	if to == "" {
		to = now.Format("2006-01-02")
	}
	if from == "" {
		from = now.AddDate(0, 0, -30).Format("2006-01-02")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := storage.NewPredictionStore(cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer store.Close()

	results, err := store.VerifiedBetween(ctx, from, to)
	if err != nil {
		slog.Error("Failed to load verified predictions", "error", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		slog.Info("No verified predictions in range", "from", from, "to", to)
		return
	}
	slog.Info("Backtesting", "from", from, "to", to, "predictions", len(results))

	analyzer := backtest.NewAnalyzer(predictor.DefaultWeights())
	perf := analyzer.Evaluate(results)
	factors := analyzer.FactorImportance(seed)

	fmt.Println(analyzer.Report(perf, factors))

	if showWeights {
		fmt.Println("Suggested weights:")
		optimized := analyzer.OptimizedWeights(factors)
		for _, f := range factors {
			fmt.Printf("  %-20s %.4f -> %.4f\n", f.Factor, f.Weight, optimized[f.Factor])
		}
	}
}
