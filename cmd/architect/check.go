package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/architect-assistant/internal/validation"
)

var checkCmd = &cobra.Command{
	Use:   "check <script.py>...",
	Short: "Check Blender scripts for forbidden imports and malformed construction statements",
	Long: `Check one or more generated scripts, for example after hand editing. The report is
printed as JSON and the command fails if any script has error-severity violations.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	reports := make(map[string]*validation.Report, len(args))
	failed := 0
	for _, path := range args {
		report, err := validation.CheckFile(path)
		if err != nil {
			return err
		}
		reports[path] = report
		if report.HasErrors() {
			failed++
		}
	}

	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(data)); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d script(s) failed checks", failed, len(args))
	}
	return nil
}
