package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting, read from the environment.
type Config struct {
	Port             string        `env:"PORT" env-default:"8080"`
	DatabasePath     string        `env:"DATABASE_PATH" env-default:"users.db"`
	LogLevel         string        `env:"LOG_LEVEL" env-default:"info"`
	MaxGenerateCount int           `env:"MAX_GENERATE_COUNT" env-default:"1000"`
	SlowMaxDelay     time.Duration `env:"SLOW_MAX_DELAY" env-default:"3s"`
	RateLimitRPS     float64       `env:"RATE_LIMIT_RPS" env-default:"5"`
	RateLimitBurst   float64       `env:"RATE_LIMIT_BURST" env-default:"10"`
	MaxUploadBytes   int64         `env:"MAX_UPLOAD_BYTES" env-default:"10485760"`
}

// Load reads an optional .env file from the working directory, then the
// process environment. Variables already set in the environment win.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit .env path. A missing file is not an
// error.
func LoadFile(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH must not be empty")
	}
	if c.MaxGenerateCount < 1 {
		return fmt.Errorf("MAX_GENERATE_COUNT must be positive, got %d", c.MaxGenerateCount)
	}
	if c.SlowMaxDelay < 0 {
		return fmt.Errorf("SLOW_MAX_DELAY must not be negative, got %s", c.SlowMaxDelay)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive and RATE_LIMIT_BURST at least 1")
	}
	if c.MaxUploadBytes < 1 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog.Level. Load has already rejected
// unknown levels; a Config built by hand falls back to slog.LevelInfo.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
