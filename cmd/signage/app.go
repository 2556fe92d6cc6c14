package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/WispAyr/signage-designer/pkg/compliance"
	"github.com/WispAyr/signage-designer/pkg/config"
	"github.com/WispAyr/signage-designer/pkg/designer"
	"github.com/WispAyr/signage-designer/pkg/store"
	"github.com/WispAyr/signage-designer/pkg/telemetry/logging"
	"github.com/WispAyr/signage-designer/pkg/telemetry/metrics"
	"github.com/WispAyr/signage-designer/pkg/template"
)

// loadConfig loads the configuration file named by --config. When the
// flag was left at its default and no such file exists, the built-in
// defaults are used so the CLI works without any setup.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		if !cmd.Flags().Changed("config") {
			return config.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config file %q does not exist", cfgFile)
	}
	return config.LoadConfigWithEnvOverrides(cfgFile)
}

// newLogger builds the process logger from telemetry config. Log output
// goes to writer; pass os.Stderr for stdio transports so stdout stays a
// clean protocol channel.
func newLogger(cfg *config.LoggingConfig, writer io.Writer) (*slog.Logger, error) {
	if verbose {
		cfg.Level = "debug"
	}
	return logging.New(logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: cfg.AddSource,
		Writer:    writer,
	})
}

// buildStore constructs the configured storage backend.
func buildStore(cfg *config.StoreConfig, logger *slog.Logger) (store.Store, error) {
	switch cfg.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(cfg.File.Directory, logger)
	case "sqlite":
		return store.NewSQLiteStore(&store.SQLiteConfig{
			Path:         cfg.SQLite.Path,
			MaxOpenConns: cfg.SQLite.MaxOpenConns,
			WALMode:      cfg.SQLite.WALMode,
			BusyTimeout:  cfg.SQLite.BusyTimeout,
		}, logger)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}
}

// buildCatalog constructs the template catalog: built-in templates plus
// any operator template files configured under templates.path.
func buildCatalog(cfg *config.TemplatesConfig, logger *slog.Logger) (*template.Catalog, error) {
	sources := []template.Source{template.BuiltinSource{}}
	if cfg.Path != "" {
		sources = append(sources, template.NewFileSource(cfg.Path, logger))
	}
	return template.NewCatalog(logger, sources...)
}

// application bundles the shared pieces a transport runs on top of.
type application struct {
	service *designer.Service
	store   store.Store
	catalog *template.Catalog
	logger  *slog.Logger
}

// close releases the application's resources.
func (a *application) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("store close failed", "error", err)
	}
}

// buildApplication assembles the application service the transports share.
func buildApplication(cfg *config.Config, collector *metrics.Collector, logger *slog.Logger) (*application, error) {
	st, err := buildStore(&cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	catalog, err := buildCatalog(&cfg.Templates, logger)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &application{
		service: designer.NewService(st, catalog, compliance.NewEngine(nil), collector, logger),
		store:   st,
		catalog: catalog,
		logger:  logger,
	}, nil
}
