package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Weather   WeatherConfig   `yaml:"weather"`
	MLB       MLBConfig       `yaml:"mlb"`
	Savant    SavantConfig    `yaml:"savant"`
	Rotowire  RotowireConfig  `yaml:"rotowire"`
	Predictor PredictorConfig `yaml:"predictor"`
	HTTP      HTTPConfig      `yaml:"http"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type WeatherConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"` // defaults to the public OpenWeather endpoint
}

type MLBConfig struct {
	BaseURL string `yaml:"base_url"` // defaults to statsapi.mlb.com
	Season  int    `yaml:"season"`
	// Concurrency bounds the parallel per-player stat fetches.
	Concurrency int `yaml:"concurrency"`
}

type SavantConfig struct {
	BaseURL string `yaml:"base_url"` // defaults to baseballsavant.mlb.com
	// RecentDays is the short Statcast window (default 15).
	RecentDays int `yaml:"recent_days"`
}

type RotowireConfig struct {
	Enabled    bool   `yaml:"enabled"`
	LineupsURL string `yaml:"lineups_url"`
}

type PredictorConfig struct {
	TopN int `yaml:"top_n"`
	// EarlyRunHour: runs starting before this local hour use projected
	// lineups; later runs use confirmed batting orders.
	EarlyRunHour int `yaml:"early_run_hour"`

	BattersCSV  string `yaml:"batters_csv"`
	PitchersCSV string `yaml:"pitchers_csv"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	config.applyEnv()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Weather.BaseURL == "" {
		c.Weather.BaseURL = "https://api.openweathermap.org/data/2.5"
	}
	if c.MLB.BaseURL == "" {
		c.MLB.BaseURL = "https://statsapi.mlb.com/api/v1"
	}
	if c.MLB.Concurrency <= 0 {
		c.MLB.Concurrency = 4
	}
	if c.Savant.BaseURL == "" {
		c.Savant.BaseURL = "https://baseballsavant.mlb.com"
	}
	if c.Savant.RecentDays <= 0 {
		c.Savant.RecentDays = 15
	}
	if c.Rotowire.LineupsURL == "" {
		c.Rotowire.LineupsURL = "https://www.rotowire.com/baseball/daily-lineups.php"
	}
	if c.Predictor.TopN <= 0 {
		c.Predictor.TopN = 10
	}
	if c.Predictor.EarlyRunHour <= 0 {
		c.Predictor.EarlyRunHour = 12
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
}

// applyEnv overrides secrets from the environment. Tokens never live in
// the config file in production.
func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if chatID, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = chatID
		}
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		c.Weather.APIKey = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.Postgres.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
}
