package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the engine's runtime configuration: where the world/scenario
// data lives, which storage/queue backends to use, and how to log.
type Config struct {
	Port        string        `json:"port"`
	Environment string        `json:"environment"`
	LogLevel    slog.Level    `json:"-"`
	LogLevelStr string        `json:"log_level" env:"LOG_LEVEL"`
	RedisURL    string        `json:"redis_url" env:"REDIS_URL"`
	DataDir     string        `json:"data_dir" env:"DATA_DIR"`
	SessionTTL  time.Duration `json:"session_ttl" env:"SESSION_TTL"`
}

func defaults() Config {
	return Config{
		Port:        "8080",
		Environment: "development",
		LogLevelStr: "info",
		RedisURL:    "redis://localhost:6379",
		DataDir:     "data",
		SessionTTL:  time.Hour,
	}
}

// Load builds a Config: start from sane defaults, overlay a JSON file named
// by ENGINE_CONFIG if set, then overlay individual env vars on top of that
// (RedisURL/DataDir/LogLevelStr may be overridden without editing the file).
func Load() (*Config, error) {
	cfg := defaults()

	if configFile := os.Getenv("ENGINE_CONFIG"); configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %v", configFile, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %v", configFile, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %v", err)
	}

	cfg.LogLevel = parseLogLevel(cfg.LogLevelStr)
	return &cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
