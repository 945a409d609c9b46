// Package pipeline orchestrates prompt-to-script generation for single prompts and batches.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/architect-assistant/internal/metrics"
	"github.com/jonathan/architect-assistant/internal/observability"
	"github.com/jonathan/architect-assistant/internal/parsing"
	"github.com/jonathan/architect-assistant/internal/synthesis"
	"github.com/jonathan/architect-assistant/internal/types"
)

// Pipeline steps reported through ProgressEvent
const (
	StepExtract    = "extract"
	StepSynthesize = "synthesize"
)

// DefaultBatchLimit bounds concurrent generations in a batch when no limit is given
const DefaultBatchLimit = 4

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Index   int    `json:"index"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. During a batch it may be
// called from several goroutines at once.
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for running the pipeline
type Options struct {
	// Printer receives verbose output; nil disables it
	Printer    *observability.Printer
	OnProgress ProgressCallback
	// BatchLimit bounds concurrent generations; zero means DefaultBatchLimit
	BatchLimit int
}

// Result is the outcome of one prompt
type Result struct {
	Prompt     string
	Extraction parsing.Result
	Artifact   *types.GeneratedArtifact
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, step string, index int, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Index:   index,
			Message: message,
			Content: content,
		})
	}
}

// Generate runs extraction and synthesis for a single prompt
func Generate(ctx context.Context, prompt string, opts Options) (*Result, error) {
	return generate(ctx, 0, prompt, &opts)
}

func generate(ctx context.Context, index int, prompt string, opts *Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	extraction := parsing.ExtractDetailed(prompt)
	emitProgress(opts, StepExtract, index, extraction.Spec.Summary(), extraction.Spec)
	if opts.Printer != nil {
		opts.Printer.PrintExtraction(&extraction)
	}

	artifact, err := synthesis.Synthesize(extraction.Spec)
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, fmt.Errorf("prompt %d: %w", index, err)
	}
	recordSuccess(artifact)
	emitProgress(opts, StepSynthesize, index, artifact.Filename, nil)
	if opts.Printer != nil {
		opts.Printer.PrintArtifact(artifact)
	}

	log.Debug().
		Int("index", index).
		Str("filename", artifact.Filename).
		Strs("defaulted", extraction.Defaulted()).
		Dur("duration", time.Since(start)).
		Msg("generation complete")

	return &Result{Prompt: prompt, Extraction: extraction, Artifact: artifact}, nil
}

func recordSuccess(artifact *types.GeneratedArtifact) {
	metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.ScriptBytes.Observe(float64(len(artifact.Code)))

	spec := artifact.Parameters
	metrics.FeaturesTotal.WithLabelValues("facade_material", string(spec.FacadeMaterial)).Inc()
	metrics.FeaturesTotal.WithLabelValues("roof_type", string(spec.RoofType)).Inc()
	metrics.FeaturesTotal.WithLabelValues("entrance_type", string(spec.EntranceType)).Inc()
	metrics.FeaturesTotal.WithLabelValues("window_pattern", string(spec.WindowPattern)).Inc()
	for _, extra := range spec.Extras {
		metrics.FeaturesTotal.WithLabelValues("extras", string(extra)).Inc()
	}
}

// GenerateBatch runs Generate over every prompt with bounded concurrency. Results are
// returned in input order. The first failure cancels the remaining work.
func GenerateBatch(ctx context.Context, prompts []string, opts Options) ([]*Result, error) {
	limit := opts.BatchLimit
	if limit <= 0 {
		limit = DefaultBatchLimit
	}

	results := make([]*Result, len(prompts))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, prompt := range prompts {
		g.Go(func() error {
			result, err := generate(gCtx, i, prompt, &opts)
			if err != nil {
				return err
			}
			// each goroutine owns its own slot
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Int("prompts", len(prompts)).Int("limit", limit).Msg("batch generation complete")
	return results, nil
}
