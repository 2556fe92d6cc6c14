package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/WispAyr/signage-designer/pkg/compliance"
	"github.com/WispAyr/signage-designer/pkg/sign"
)

var checkFlags struct {
	file       string
	jsonOutput bool
}

var checkCmd = &cobra.Command{
	Use:   "check [reference]",
	Short: "Check a sign against the BPA rulebook",
	Long: `Evaluate a sign against the British Parking Association Code of
Practice rulebook and print the report.

The sign is either a stored one named by reference, or a JSON document
read from a file (use "-" for stdin). The command exits with status 1
when the sign is non-compliant, which makes it usable in CI pipelines.

Examples:
  # Check a stored sign
  signage check KRS-ENT-001-v1

  # Check a sign document from a file
  signage check --file sign.json

  # Machine-readable output
  signage check KRS-ENT-001-v1 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.file, "file", "f", "", "sign JSON document to check (use - for stdin)")
	checkCmd.Flags().BoolVar(&checkFlags.jsonOutput, "json", false, "print the report as JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if (len(args) == 0) == (checkFlags.file == "") {
		return fmt.Errorf("provide exactly one of a sign reference or --file")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(&cfg.Telemetry.Logging, os.Stderr)
	if err != nil {
		return err
	}

	var report *compliance.Report
	var subject string

	if checkFlags.file != "" {
		doc, err := readSignDocument(cmd, checkFlags.file)
		if err != nil {
			return err
		}
		engine := compliance.NewEngine(nil)
		report = engine.Evaluate(doc)
		subject = checkFlags.file
	} else {
		app, err := buildApplication(cfg, nil, logger)
		if err != nil {
			return err
		}
		defer app.close()

		report, err = app.service.CheckCompliance(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		subject = args[0]
	}

	if checkFlags.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(cmd, subject, report)
	}

	if !report.Compliant {
		// Distinguish non-compliance from operational failure in scripts.
		os.Exit(1)
	}
	return nil
}

func readSignDocument(cmd *cobra.Command, path string) (*sign.Sign, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sign document: %w", err)
	}

	var doc sign.Sign
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse sign document: %w", err)
	}
	if !doc.Type.IsValid() {
		return nil, fmt.Errorf("unknown sign type %q", doc.Type)
	}
	return &doc, nil
}

func printReport(cmd *cobra.Command, subject string, report *compliance.Report) {
	out := cmd.OutOrStdout()

	verdict := "NON-COMPLIANT"
	if report.Compliant {
		verdict = "COMPLIANT"
	}
	fmt.Fprintf(out, "%s: %s (score %d/100)\n\n", subject, verdict, report.Score)

	for _, r := range report.Results {
		mark := "PASS"
		if !r.Passed {
			mark = "FAIL"
		}
		fmt.Fprintf(out, "  [%s] %-12s %s: %s\n", mark, r.Category, r.RuleID, r.Message)
		if !r.Passed && r.Suggestion != "" {
			fmt.Fprintf(out, "         suggestion: %s\n", r.Suggestion)
		}
	}

	fmt.Fprintf(out, "\n%d passed, %d required failures, %d warnings\n",
		report.Summary.Passed, report.Summary.FailedRequired, report.Summary.Warnings)
}
