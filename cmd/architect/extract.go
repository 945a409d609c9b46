package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/architect-assistant/internal/observability"
	"github.com/jonathan/architect-assistant/internal/parsing"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print the building specification a prompt resolves to",
	Long:  "Resolve a building description into a BuildingSpecification and print it as JSON, without generating a script.",
	RunE:  runExtract,
}

var (
	extractPrompt  string
	extractVerbose bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractPrompt, "prompt", "p", "", "Building description")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Show which fields were matched and which were defaulted")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("prompt") {
		return fmt.Errorf("--prompt is required")
	}

	result := parsing.ExtractDetailed(extractPrompt)
	if extractVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintExtraction(&result)
	}

	data, err := json.MarshalIndent(result.Spec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal specification: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
