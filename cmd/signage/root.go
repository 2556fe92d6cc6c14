package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "signage",
	Short: "Signage Designer - car park signage design and compliance",
	Long: `Signage Designer assembles car park signs from templates, stores them
under versioned references, and checks them against the British Parking
Association Code of Practice.

It exposes the same operations over three surfaces:
  - An HTTP API for sign CRUD and compliance checks (signage serve)
  - An MCP tool server over stdio for agent integrations (signage mcp)
  - One-shot CLI commands for checks and reference minting`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
