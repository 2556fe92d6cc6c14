package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/WispAyr/signage-designer/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP tool server over stdio",
	Long: `Run the Model Context Protocol tool server over stdio.

The server reads line-delimited JSON-RPC 2.0 requests from stdin and
writes responses to stdout. All logging goes to stderr so the protocol
channel stays clean.

The same tools are available as the HTTP API: creating, revising and
deleting signs, compliance checks, template listing and reference
minting.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// stdout carries JSON-RPC; logs must go to stderr.
	logger, err := newLogger(&cfg.Telemetry.Logging, os.Stderr)
	if err != nil {
		return err
	}

	app, err := buildApplication(cfg, nil, logger)
	if err != nil {
		return err
	}
	defer app.close()

	srv := mcp.NewServer(app.service, Version, logger)
	return srv.ProcessStream(cmd.Context(), os.Stdin, os.Stdout)
}
