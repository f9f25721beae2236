package main

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config is the immutable operating configuration selected at startup.
type Config struct {
	MinPollInterval   time.Duration
	MaxPollInterval   time.Duration
	InactiveThreshold time.Duration
	BatchSaveInterval time.Duration
	ForceSaveCycles   int
	MaxContentBytes   int
	MaxFetchBytes     int
	MaxEntries        int
}

// BalancedConfig is the default preset.
func BalancedConfig() Config {
	return Config{
		MinPollInterval:   200 * time.Millisecond,
		MaxPollInterval:   2 * time.Second,
		InactiveThreshold: 30 * time.Second,
		BatchSaveInterval: 10 * time.Second,
		ForceSaveCycles:   20,
		MaxContentBytes:   512 << 10,
		MaxFetchBytes:     10 << 20,
		MaxEntries:        100,
	}
}

// LowPowerConfig trades latency for fewer wakeups; the GUI front-end
// starts the backend with this preset.
func LowPowerConfig() Config {
	cfg := BalancedConfig()
	cfg.MinPollInterval = time.Second
	cfg.MaxPollInterval = 5 * time.Second
	cfg.InactiveThreshold = 60 * time.Second
	cfg.BatchSaveInterval = 30 * time.Second
	cfg.ForceSaveCycles = 40
	cfg.MaxEntries = 50
	return cfg
}

// ResponsiveConfig polls aggressively for interactive use.
func ResponsiveConfig() Config {
	cfg := BalancedConfig()
	cfg.MinPollInterval = 100 * time.Millisecond
	cfg.MaxPollInterval = 500 * time.Millisecond
	cfg.InactiveThreshold = 15 * time.Second
	cfg.BatchSaveInterval = 5 * time.Second
	cfg.ForceSaveCycles = 10
	cfg.MaxEntries = 200
	return cfg
}

// applyEnvOverrides folds the environment-style inputs into cfg and
// returns it. Invalid values are ignored.
func applyEnvOverrides(cfg Config) Config {
	if v := os.Getenv("CLIPZ_MAX_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxEntries = n
		}
	}
	return cfg
}

// historyFilePath returns the per-user persistence location, honoring
// the CLIPZ_HISTORY_FILE override.
func historyFilePath() string {
	if v := os.Getenv("CLIPZ_HISTORY_FILE"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "clipz_history.json")
	}
	return filepath.Join(home, ".clipz", "history.json")
}
