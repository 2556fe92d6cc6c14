package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/robfig/cron/v3"
)

// storeBackends are the recognised storage backend names.
var storeBackends = map[string]bool{
	"memory": true,
	"file":   true,
	"sqlite": true,
}

// Validate checks the configuration for invalid or inconsistent values.
// It expects defaults to have been applied already.
func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := validateStore(&cfg.Store); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := validateTemplates(&cfg.Templates); err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	if err := validateRetention(&cfg.Retention); err != nil {
		return fmt.Errorf("retention: %w", err)
	}
	if err := validateTelemetry(&cfg.Telemetry); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	return nil
}

func validateServer(cfg *ServerConfig) error {
	if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		return fmt.Errorf("invalid listen_address %q: %w", cfg.ListenAddress, err)
	}
	if cfg.MaxHeaderBytes < 0 {
		return fmt.Errorf("max_header_bytes must not be negative, got %d", cfg.MaxHeaderBytes)
	}
	return nil
}

func validateStore(cfg *StoreConfig) error {
	if !storeBackends[cfg.Backend] {
		return fmt.Errorf("unknown backend %q (expected memory, file or sqlite)", cfg.Backend)
	}
	switch cfg.Backend {
	case "file":
		if cfg.File.Directory == "" {
			return fmt.Errorf("file backend requires file.directory")
		}
	case "sqlite":
		if cfg.SQLite.Path == "" {
			return fmt.Errorf("sqlite backend requires sqlite.path")
		}
		if cfg.SQLite.MaxOpenConns < 1 {
			return fmt.Errorf("sqlite.max_open_conns must be at least 1, got %d", cfg.SQLite.MaxOpenConns)
		}
	}
	return nil
}

func validateTemplates(cfg *TemplatesConfig) error {
	if cfg.Watch && cfg.Path == "" {
		return fmt.Errorf("watch requires a templates path")
	}
	if cfg.DebounceInterval < 0 {
		return fmt.Errorf("debounce_interval must not be negative")
	}
	return nil
}

func validateRetention(cfg *RetentionConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.KeepVersions < 1 {
		return fmt.Errorf("keep_versions must be at least 1, got %d", cfg.KeepVersions)
	}
	if cfg.RetentionDays < 0 {
		return fmt.Errorf("retention_days must not be negative, got %d", cfg.RetentionDays)
	}
	if _, err := cron.ParseStandard(cfg.PruneSchedule); err != nil {
		return fmt.Errorf("invalid prune_schedule %q: %w", cfg.PruneSchedule, err)
	}
	return nil
}

func validateTelemetry(cfg *TelemetryConfig) error {
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q (expected debug, info, warn or error)", cfg.Logging.Level)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging.format %q (expected json or text)", cfg.Logging.Format)
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /, got %q", cfg.Metrics.Path)
	}
	return nil
}
