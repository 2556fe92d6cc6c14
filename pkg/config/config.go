package config

import "time"

// Config is the root configuration structure for the signage designer.
// It contains all configuration sections for the HTTP server, sign storage,
// the template catalog, retention and telemetry.
type Config struct {
	// Server contains HTTP API server configuration including listen
	// address and timeouts.
	Server ServerConfig `yaml:"server"`

	// Store contains sign storage configuration including backend
	// selection and backend-specific settings.
	Store StoreConfig `yaml:"store"`

	// Templates contains template catalog configuration: where operator
	// template files live and whether they are watched for changes.
	Templates TemplatesConfig `yaml:"templates"`

	// Retention contains superseded-version pruning configuration.
	Retention RetentionConfig `yaml:"retention"`

	// Telemetry contains observability configuration: logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP API server.
type ServerConfig struct {
	// ListenAddress is the address and port for the server to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of
	// the response. A zero or negative value means no timeout.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next
	// request when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown before in-flight requests are abandoned.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing request headers. It does not limit the request body.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// StoreConfig contains configuration for sign storage.
type StoreConfig struct {
	// Backend selects the storage backend: "memory", "file" or "sqlite".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// File contains settings for the file backend.
	File FileStoreConfig `yaml:"file"`

	// SQLite contains settings for the sqlite backend.
	SQLite SQLiteStoreConfig `yaml:"sqlite"`
}

// FileStoreConfig contains settings for the JSON file storage backend.
type FileStoreConfig struct {
	// Directory is where sign documents and the index are written.
	// Default: "data/signs"
	Directory string `yaml:"directory"`
}

// SQLiteStoreConfig contains settings for the SQLite storage backend.
type SQLiteStoreConfig struct {
	// Path is the SQLite database file path.
	// Default: "data/signs.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// WALMode enables write-ahead logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long a connection waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// TemplatesConfig contains configuration for the template catalog.
type TemplatesConfig struct {
	// Path is a YAML file or directory of YAML files holding operator
	// templates, merged over the built-in catalog. Empty disables file
	// templates.
	Path string `yaml:"path"`

	// Watch reloads the catalog when files under Path change.
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceInterval coalesces bursts of file events into one reload.
	// Default: 250ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// RetentionConfig contains configuration for pruning superseded sign
// versions.
type RetentionConfig struct {
	// Enabled controls whether the retention scheduler runs.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// KeepVersions is how many versions of each sign lineage to keep.
	// Default: 3
	KeepVersions int `yaml:"keep_versions"`

	// RetentionDays protects versions newer than this many days from
	// pruning regardless of version count.
	// Default: 30
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is the cron expression for prune runs.
	// Default: "0 3 * * *" (daily at 03:00)
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging settings.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics settings.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn" or "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes source file and line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the metrics exposition endpoint path.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
