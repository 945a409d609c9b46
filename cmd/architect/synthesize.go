package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/architect-assistant/internal/schemas"
	"github.com/jonathan/architect-assistant/internal/synthesis"
	"github.com/jonathan/architect-assistant/internal/types"
	schemadocs "github.com/jonathan/architect-assistant/schemas"
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Generate a Blender script from a specification JSON file",
	Long: `Validate a BuildingSpecification JSON file against the building_specification schema
and synthesize its Blender script. This skips prompt extraction entirely.`,
	RunE: runSynthesize,
}

var (
	synthesizeSpec   string
	synthesizeOutput string
)

func init() {
	synthesizeCmd.Flags().StringVarP(&synthesizeSpec, "spec", "s", "", "Path to BuildingSpecification JSON file (required)")
	synthesizeCmd.Flags().StringVarP(&synthesizeOutput, "out", "o", "", `Output directory, or "-" to print the script to stdout`)
	_ = synthesizeCmd.MarkFlagRequired("spec")
	rootCmd.AddCommand(synthesizeCmd)
}

func runSynthesize(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = synthesizeOutput
	}

	data, err := os.ReadFile(synthesizeSpec)
	if err != nil {
		return fmt.Errorf("failed to read specification: %w", err)
	}
	if err := schemas.ValidateDocument(schemadocs.BuildingSpecification, data); err != nil {
		return fmt.Errorf("invalid specification %s: %w", synthesizeSpec, err)
	}

	var spec types.BuildingSpecification
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("failed to parse specification: %w", err)
	}

	artifact, err := synthesis.Synthesize(spec)
	if err != nil {
		return err
	}

	if cfg.OutputDir == stdoutTarget {
		_, err := fmt.Fprint(cmd.OutOrStdout(), artifact.Code)
		return err
	}
	return writeArtifacts(cmd.OutOrStdout(), cfg.OutputDir, []*types.GeneratedArtifact{artifact})
}
