// Package synthesis turns a building specification into a downloadable Blender script.
package synthesis

import (
	"errors"
	"fmt"

	"github.com/jonathan/architect-assistant/internal/layout"
	"github.com/jonathan/architect-assistant/internal/rendering"
	"github.com/jonathan/architect-assistant/internal/types"
	"github.com/jonathan/architect-assistant/internal/validation"
	"github.com/rs/zerolog/log"
)

// Synthesize validates spec, lays the building out and renders the script. Invalid
// specifications are rejected with *InvariantError and never coerced.
func Synthesize(spec types.BuildingSpecification) (*types.GeneratedArtifact, error) {
	if err := spec.Validate(); err != nil {
		var specErr *types.SpecError
		if errors.As(err, &specErr) {
			return nil, &InvariantError{Field: specErr.Field, Message: specErr.Message, Cause: err}
		}
		return nil, &InvariantError{Message: err.Error(), Cause: err}
	}

	plan, err := layout.Build(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out building: %w", err)
	}

	code, err := rendering.RenderScript(plan, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to render script: %w", err)
	}

	report := validation.CheckScript(code)
	if err := report.Err(); err != nil {
		return nil, fmt.Errorf("generated script failed checks: %w", err)
	}
	if report.Statements != len(plan.Ops) {
		return nil, &validation.Error{Message: fmt.Sprintf("script has %d construction statements, layout has %d operations", report.Statements, len(plan.Ops))}
	}

	artifact := &types.GeneratedArtifact{
		Code:       code,
		Parameters: spec,
		Filename:   rendering.Filename(spec),
	}

	log.Debug().
		Str("filename", artifact.Filename).
		Int("ops", len(plan.Ops)).
		Int("bytes", len(code)).
		Msg("script synthesized")

	return artifact, nil
}
