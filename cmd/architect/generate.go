package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/architect-assistant/internal/observability"
	"github.com/jonathan/architect-assistant/internal/pipeline"
	"github.com/jonathan/architect-assistant/internal/types"
)

// stdoutTarget as --out writes the script to standard output
const stdoutTarget = "-"

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Blender scripts from building prompts",
	Long: `Generate a Blender Python script for a single prompt (--prompt) or for every line of
a prompt file (--in). Blank lines and lines starting with # are ignored. Scripts are
written to the output directory under their generated filenames.`,
	RunE: runGenerate,
}

var (
	generatePrompt  string
	generateInput   string
	generateOutput  string
	generateVerbose bool
)

func init() {
	generateCmd.Flags().StringVarP(&generatePrompt, "prompt", "p", "", "Building description (mutually exclusive with --in)")
	generateCmd.Flags().StringVarP(&generateInput, "in", "i", "", "File with one prompt per line (mutually exclusive with --prompt)")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", `Output directory, or "-" to print a single script to stdout`)
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print extraction and artifact details")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	promptSet := cmd.Flags().Changed("prompt")
	if promptSet == (generateInput != "") {
		return fmt.Errorf("exactly one of --prompt or --in must be provided")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = generateOutput
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = generateVerbose
	}

	out := cmd.OutOrStdout()
	opts := pipeline.Options{BatchLimit: cfg.BatchLimit}
	if cfg.Verbose && cfg.OutputDir != stdoutTarget {
		opts.Printer = observability.NewPrinter(out)
	}

	ctx := cmd.Context()

	if promptSet {
		result, err := pipeline.Generate(ctx, generatePrompt, opts)
		if err != nil {
			return fmt.Errorf("failed to generate script: %w", err)
		}
		if cfg.OutputDir == stdoutTarget {
			_, err := io.WriteString(out, result.Artifact.Code)
			return err
		}
		return writeArtifacts(out, cfg.OutputDir, []*types.GeneratedArtifact{result.Artifact})
	}

	if cfg.OutputDir == stdoutTarget {
		return fmt.Errorf("--out - is only supported with --prompt")
	}

	prompts, err := readPrompts(generateInput)
	if err != nil {
		return err
	}
	if len(prompts) == 0 {
		return fmt.Errorf("no prompts found in %s", generateInput)
	}

	results, err := pipeline.GenerateBatch(ctx, prompts, opts)
	if err != nil {
		return fmt.Errorf("failed to generate scripts: %w", err)
	}

	artifacts := make([]*types.GeneratedArtifact, len(results))
	for i, result := range results {
		artifacts[i] = result.Artifact
	}
	return writeArtifacts(out, cfg.OutputDir, artifacts)
}

// readPrompts reads one prompt per non-blank, non-comment line
func readPrompts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file: %w", err)
	}
	defer f.Close()

	var prompts []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prompts = append(prompts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prompt file: %w", err)
	}
	return prompts, nil
}

// writeArtifacts writes each script into dir. Prompts that resolve to the same
// filename get a numeric suffix instead of overwriting each other.
func writeArtifacts(out io.Writer, dir string, artifacts []*types.GeneratedArtifact) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	seen := make(map[string]int)
	for _, artifact := range artifacts {
		name := uniqueName(artifact.Filename, seen)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(artifact.Code), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(out, "wrote %s (%s)\n", path, artifact.Parameters.Summary())
	}
	return nil
}

func uniqueName(name string, seen map[string]int) string {
	seen[name]++
	if n := seen[name]; n > 1 {
		ext := filepath.Ext(name)
		return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n, ext)
	}
	return name
}
