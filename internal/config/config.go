package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment string
	LogLevel    slog.Level
	DataDir     string
	RedisURL    string
	SaveTTL     time.Duration

	// Enhancements turns on the optional gameplay changes below.
	Enhancements  bool
	C64ChestTraps bool
}

func Load() *Config {
	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DataDir:       getEnv("DATA_DIR", "./data"),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		SaveTTL:       parseDuration(getEnv("SAVE_TTL", "24h"), 24*time.Hour),
		Enhancements:  parseBool(getEnv("ENHANCEMENTS", "false")),
		C64ChestTraps: parseBool(getEnv("ENHANCEMENTS_C64_CHEST_TRAPS", "false")),
	}
}

// Validate reports settings the programs cannot start with.
func (c *Config) Validate() error {
	var errs []error
	info, err := os.Stat(c.DataDir)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("DATA_DIR %s: %w", c.DataDir, err))
	case !info.IsDir():
		errs = append(errs, fmt.Errorf("DATA_DIR %s is not a directory", c.DataDir))
	}
	if c.RedisURL == "" {
		errs = append(errs, errors.New("REDIS_URL is required"))
	}
	if c.C64ChestTraps && !c.Enhancements {
		errs = append(errs, errors.New("ENHANCEMENTS_C64_CHEST_TRAPS requires ENHANCEMENTS"))
	}
	return errors.Join(errs...)
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

func parseBool(value string) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return b
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
