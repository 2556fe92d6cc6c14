package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/WispAyr/signage-designer/pkg/sign"
)

var referenceVersion int

var referenceCmd = &cobra.Command{
	Use:   "reference <site> <type> <sequence>",
	Short: "Build a sign reference",
	Long: `Build a sign reference from a site code, sign type and sequence
number, without touching the store.

References have the form SITE-TYPECODE-SEQ-vVERSION, e.g. KRS-ENT-001-v1.
Unknown sign types map to the generic code GEN.

Examples:
  signage reference krs entrance 1
  signage reference krs terms_conditions 12 --version 3`,
	Args: cobra.ExactArgs(3),
	RunE: runReference,
}

func init() {
	rootCmd.AddCommand(referenceCmd)

	referenceCmd.Flags().IntVar(&referenceVersion, "version", 1, "reference version")
}

func runReference(cmd *cobra.Command, args []string) error {
	sequence, err := strconv.Atoi(args[2])
	if err != nil || sequence < 1 {
		return fmt.Errorf("sequence must be a positive integer, got %q", args[2])
	}
	if referenceVersion < 1 {
		return fmt.Errorf("version must be at least 1, got %d", referenceVersion)
	}

	fmt.Fprintln(cmd.OutOrStdout(), sign.MakeReference(args[0], sign.Type(args[1]), sequence, referenceVersion))
	return nil
}
