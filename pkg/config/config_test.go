package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("listen_address = %q, want %q", cfg.Server.ListenAddress, DefaultListenAddress)
	}
	if cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("read_timeout = %v, want %v", cfg.Server.ReadTimeout, DefaultReadTimeout)
	}
	if cfg.Store.Backend != DefaultStoreBackend {
		t.Errorf("store backend = %q, want %q", cfg.Store.Backend, DefaultStoreBackend)
	}
	if cfg.Store.SQLite.Path != DefaultSQLitePath {
		t.Errorf("sqlite path = %q, want %q", cfg.Store.SQLite.Path, DefaultSQLitePath)
	}
	if !cfg.Store.SQLite.WALMode {
		t.Error("wal_mode should default to true")
	}
	if cfg.Retention.KeepVersions != DefaultRetentionKeepVersions {
		t.Errorf("keep_versions = %d, want %d", cfg.Retention.KeepVersions, DefaultRetentionKeepVersions)
	}
	if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
		t.Errorf("logging level = %q, want %q", cfg.Telemetry.Logging.Level, DefaultLoggingLevel)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should default to enabled")
	}
}

func TestLoadConfigPreservesExplicitValues(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, `
server:
  listen_address: "0.0.0.0:9090"
  read_timeout: 10s
store:
  backend: file
  file:
    directory: /var/lib/signage
telemetry:
  logging:
    level: debug
    format: text
`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("listen_address = %q", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read_timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Store.Backend != "file" {
		t.Errorf("backend = %q", cfg.Store.Backend)
	}
	if cfg.Store.File.Directory != "/var/lib/signage" {
		t.Errorf("directory = %q", cfg.Store.File.Directory)
	}
	if cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("format = %q", cfg.Telemetry.Logging.Format)
	}
	// Untouched sections still get defaults.
	if cfg.Server.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("write_timeout = %v, want default", cfg.Server.WriteTimeout)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, "server: [not a mapping"))
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("err = %v, want parse error", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "bad listen address",
			mutate:  func(c *Config) { c.Server.ListenAddress = "no-port" },
			wantSub: "listen_address",
		},
		{
			name:    "unknown store backend",
			mutate:  func(c *Config) { c.Store.Backend = "redis" },
			wantSub: "backend",
		},
		{
			name:    "watch without path",
			mutate:  func(c *Config) { c.Templates.Watch = true },
			wantSub: "watch",
		},
		{
			name: "bad prune schedule",
			mutate: func(c *Config) {
				c.Retention.Enabled = true
				c.Retention.PruneSchedule = "not-cron"
			},
			wantSub: "prune_schedule",
		},
		{
			name:    "bad logging level",
			mutate:  func(c *Config) { c.Telemetry.Logging.Level = "verbose" },
			wantSub: "logging.level",
		},
		{
			name:    "metrics path without slash",
			mutate:  func(c *Config) { c.Telemetry.Metrics.Path = "metrics" },
			wantSub: "metrics.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantSub)
			}
		})
	}
}

func TestValidateDisabledRetentionSkipsScheduleCheck(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Retention.PruneSchedule = "garbage"
	if err := Validate(cfg); err != nil {
		t.Errorf("disabled retention should not validate schedule: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SIGNAGE_SERVER_LISTEN_ADDRESS", "127.0.0.1:7777")
	t.Setenv("SIGNAGE_STORE_BACKEND", "memory")
	t.Setenv("SIGNAGE_TELEMETRY_LOGGING_LEVEL", "debug")
	t.Setenv("SIGNAGE_TELEMETRY_METRICS_ENABLED", "false")
	t.Setenv("SIGNAGE_RETENTION_KEEP_VERSIONS", "5")

	cfg, err := LoadConfigWithEnvOverrides(writeConfigFile(t, `
server:
  listen_address: "0.0.0.0:9090"
`))
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides: %v", err)
	}

	if cfg.Server.ListenAddress != "127.0.0.1:7777" {
		t.Errorf("env override lost: listen_address = %q", cfg.Server.ListenAddress)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("backend = %q, want memory", cfg.Store.Backend)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics enabled override lost")
	}
	if cfg.Retention.KeepVersions != 5 {
		t.Errorf("keep_versions = %d, want 5", cfg.Retention.KeepVersions)
	}
}

func TestEnvOverridesRevalidated(t *testing.T) {
	t.Setenv("SIGNAGE_STORE_BACKEND", "redis")

	_, err := LoadConfigWithEnvOverrides(writeConfigFile(t, ""))
	if err == nil {
		t.Fatal("expected validation failure for bad env backend")
	}
}
