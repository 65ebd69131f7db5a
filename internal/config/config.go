package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/rcliao/certimatch/internal/domain"
)

const (
	StorageMemory = "memory"
	StorageFile   = "file"
)

type Config struct {
	Storage           string        `toml:"storage"`
	DataDir           string        `toml:"data_dir"`
	DefaultMarket     domain.Market `toml:"default_market"`
	TriageLimit       int           `toml:"triage_limit"`
	PlaybookCacheSize int           `toml:"playbook_cache_size"`
	ProgressStep      int           `toml:"progress_step"`
	ProgressInterval  time.Duration `toml:"progress_interval"`
	LogLevel          string        `toml:"log_level"`
}

func Default() *Config {
	return &Config{
		Storage:           StorageMemory,
		DataDir:           ".",
		DefaultMarket:     domain.MarketEU,
		TriageLimit:       5,
		PlaybookCacheSize: 256,
		ProgressStep:      2,
		ProgressInterval:  30 * time.Millisecond,
		LogLevel:          "info",
	}
}

// Load layers defaults, the TOML file, .env and CERTIMATCH_* variables,
// in that order. An empty path tries ./certimatch.toml and then
// ~/.config/certimatch/config.toml; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		candidates := []string{
			"./certimatch.toml",
			expandHome("~/.config/certimatch/config.toml"),
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.DefaultMarket = domain.SafeMarket(domain.ParseMarket(string(cfg.DefaultMarket)))
	cfg.DataDir = expandHome(cfg.DataDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("CERTIMATCH_STORAGE")); v != "" {
		c.Storage = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("CERTIMATCH_DATA_DIR")); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("CERTIMATCH_MARKET")); v != "" {
		c.DefaultMarket = domain.Market(v)
	}
	if v := strings.TrimSpace(os.Getenv("CERTIMATCH_TRIAGE_LIMIT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CERTIMATCH_TRIAGE_LIMIT %q: %w", v, err)
		}
		c.TriageLimit = n
	}
	if v := strings.TrimSpace(os.Getenv("CERTIMATCH_LOG_LEVEL")); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageFile:
	default:
		return fmt.Errorf("unknown storage %q (want %q or %q)", c.Storage, StorageMemory, StorageFile)
	}
	if c.TriageLimit <= 0 {
		return fmt.Errorf("triage_limit must be positive, got %d", c.TriageLimit)
	}
	if c.PlaybookCacheSize <= 0 {
		return fmt.Errorf("playbook_cache_size must be positive, got %d", c.PlaybookCacheSize)
	}
	if c.ProgressStep <= 0 || c.ProgressStep > 100 {
		return fmt.Errorf("progress_step must be in 1..100, got %d", c.ProgressStep)
	}
	if c.ProgressInterval < 0 {
		return fmt.Errorf("progress_interval must not be negative, got %s", c.ProgressInterval)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level. Validate has already rejected
// unknown names, so those fall back to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
