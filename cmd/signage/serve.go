package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WispAyr/signage-designer/pkg/server"
	"github.com/WispAyr/signage-designer/pkg/store/retention"
	"github.com/WispAyr/signage-designer/pkg/telemetry/metrics"
	"github.com/WispAyr/signage-designer/pkg/template"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the signage HTTP API server",
	Long: `Start the HTTP API server with the specified configuration.

The server exposes sign CRUD, compliance evaluation, and the template
catalog, plus /health, /ready and Prometheus metrics endpoints.

Examples:
  # Start with default config
  signage serve

  # Start with custom config
  signage serve --config /etc/signage/config.yaml

  # Override listen address
  signage serve --listen 0.0.0.0:8080

  # Validate config without starting the server
  signage serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = serveFlags.logLevel
	}

	logger, err := newLogger(&cfg.Telemetry.Logging, os.Stdout)
	if err != nil {
		return err
	}

	if serveFlags.dryRun {
		fmt.Println("configuration valid")
		return nil
	}

	collector := metrics.NewCollector(metrics.Config{Enabled: cfg.Telemetry.Metrics.Enabled})

	app, err := buildApplication(cfg, collector, logger)
	if err != nil {
		return err
	}
	defer app.close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Template hot reload.
	if cfg.Templates.Watch {
		watcher := template.NewWatcher(app.catalog, cfg.Templates.Path, cfg.Templates.DebounceInterval, logger)
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				logger.Warn("template watcher stopped", "error", err)
			}
		}()
	}

	// Scheduled pruning of superseded sign versions.
	if cfg.Retention.Enabled {
		pruner := retention.NewPruner(app.store, &retention.Config{
			KeepVersions:  cfg.Retention.KeepVersions,
			RetentionDays: cfg.Retention.RetentionDays,
			PruneSchedule: cfg.Retention.PruneSchedule,
		}, logger)
		scheduler := retention.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start retention scheduler: %w", err)
		}
		defer scheduler.Stop()
	}

	srv := server.NewServer(&cfg.Server, &cfg.Telemetry.Metrics, app.service, collector, logger)
	return srv.Start(ctx)
}
