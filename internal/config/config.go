package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Config holds all tool settings, populated from environment variables.
type Config struct {
	// DataDir is the directory holding accident_<year>.csv.bz2 files.
	DataDir   string
	LogLevel  string
	LogFormat string

	// SuppressProgress disables the reader's per-file progress output.
	// Warnings and errors are always emitted.
	SuppressProgress bool

	// ReaderCacheSize is the number of parsed census files kept in the
	// read-through cache. Zero disables caching.
	ReaderCacheSize int

	// PlotOutputDir is where rendered state maps are written unless an
	// explicit output path is given.
	PlotOutputDir string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	cfg := &Config{
		DataDir:          envOrDefault("FARS_DATA_DIR", "data"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "text"),
		SuppressProgress: os.Getenv("SUPPRESS_PROGRESS") == "true",
		ReaderCacheSize:  parseReaderCacheSize(),
		PlotOutputDir:    envOrDefault("PLOT_OUTPUT_DIR", "."),
	}

	if cfg.DataDir == "" {
		return nil, errors.New("FARS_DATA_DIR is required")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: want debug, info, warn, or error", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseReaderCacheSize() int {
	if s := os.Getenv("READER_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			return n
		}
	}
	return 8
}
