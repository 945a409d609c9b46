// Package parsing extracts a structured BuildingSpecification from free-form building descriptions.
//
// Each field is resolved by its own matcher over the normalized prompt; matchers never
// compete for tokens and a field without a recognizable mention keeps its default.
package parsing

import (
	"slices"

	"github.com/jonathan/architect-assistant/internal/types"
)

// Match records how one field was resolved
type Match struct {
	Field     string `json:"field"`
	Value     any    `json:"value"`
	Evidence  string `json:"evidence,omitempty"`
	Defaulted bool   `json:"defaulted"`
}

// Result is the specification together with the per-field match report
type Result struct {
	Spec    types.BuildingSpecification `json:"spec"`
	Matches []Match                     `json:"matches"`
}

// Defaulted returns the names of fields that fell back to their default
func (r *Result) Defaulted() []string {
	var fields []string
	for _, m := range r.Matches {
		if m.Defaulted {
			fields = append(fields, m.Field)
		}
	}
	return fields
}

// matcher resolves one field of the specification in place
type matcher func(text string, spec *types.BuildingSpecification) Match

var matchers = []matcher{
	resolveFloorCount,
	resolveFootprint,
	resolveFloorHeight,
	resolveFacade,
	resolveRoof,
	resolveEntrance,
	resolveWindowPattern,
	resolveExtras,
}

// Extract converts a free-form building description into a fully-defaulted specification.
// It never fails: unrecognized or missing input resolves to the documented defaults.
func Extract(prompt string) types.BuildingSpecification {
	return ExtractDetailed(prompt).Spec
}

// ExtractDetailed is Extract plus a report of which text decided each field
func ExtractDetailed(prompt string) Result {
	text := NormalizeText(prompt)
	spec := types.Defaults()

	result := Result{Matches: make([]Match, 0, len(matchers))}
	for _, m := range matchers {
		result.Matches = append(result.Matches, m(text, &spec))
	}
	result.Spec = spec
	return result
}

func resolveFloorCount(text string, spec *types.BuildingSpecification) Match {
	if n, m, ok := matchFloorCount(text); ok {
		spec.FloorCount = n
		return Match{Field: FieldFloorCount, Value: n, Evidence: text[m.Start:m.End]}
	}
	return Match{Field: FieldFloorCount, Value: spec.FloorCount, Defaulted: true}
}

func resolveFootprint(text string, spec *types.BuildingSpecification) Match {
	if fp, m, ok := matchFootprint(text); ok {
		spec.Footprint = fp
		return Match{Field: FieldFootprint, Value: fp, Evidence: text[m.Start:m.End]}
	}
	return Match{Field: FieldFootprint, Value: spec.Footprint, Defaulted: true}
}

func resolveFloorHeight(text string, spec *types.BuildingSpecification) Match {
	if h, m, ok := matchFloorHeight(text); ok {
		spec.FloorHeight = h
		return Match{Field: FieldFloorHeight, Value: h, Evidence: text[m.Start:m.End]}
	}
	return Match{Field: FieldFloorHeight, Value: spec.FloorHeight, Defaulted: true}
}

func resolveFacade(text string, spec *types.BuildingSpecification) Match {
	if m, ok := findVocabulary(text, facadeSynonyms); ok {
		spec.FacadeMaterial = m.Tag
		return Match{Field: FieldFacadeMaterial, Value: m.Tag, Evidence: text[m.Start:m.End]}
	}
	return Match{Field: FieldFacadeMaterial, Value: spec.FacadeMaterial, Defaulted: true}
}

func resolveRoof(text string, spec *types.BuildingSpecification) Match {
	if m, ok := findVocabulary(text, roofSynonyms); ok {
		spec.RoofType = m.Tag
		return Match{Field: FieldRoofType, Value: m.Tag, Evidence: text[m.Start:m.End]}
	}
	return Match{Field: FieldRoofType, Value: spec.RoofType, Defaulted: true}
}

func resolveEntrance(text string, spec *types.BuildingSpecification) Match {
	if m, ok := findVocabulary(text, entranceSynonyms); ok {
		spec.EntranceType = m.Tag
		return Match{Field: FieldEntranceType, Value: m.Tag, Evidence: text[m.Start:m.End]}
	}
	return Match{Field: FieldEntranceType, Value: spec.EntranceType, Defaulted: true}
}

func resolveWindowPattern(text string, spec *types.BuildingSpecification) Match {
	if m, ok := findVocabulary(text, windowSynonyms); ok {
		spec.WindowPattern = m.Tag
		return Match{Field: FieldWindowPattern, Value: m.Tag, Evidence: text[m.Start:m.End]}
	}
	return Match{Field: FieldWindowPattern, Value: spec.WindowPattern, Defaulted: true}
}

func resolveExtras(text string, spec *types.BuildingSpecification) Match {
	found := findAllVocabulary(text, extraSynonyms)
	if len(found) == 0 {
		return Match{Field: FieldExtras, Value: spec.Extras, Defaulted: true}
	}

	extras := make([]types.Extra, 0, len(found))
	evidence := ""
	for i, m := range found {
		extras = append(extras, m.Tag)
		if i > 0 {
			evidence += ", "
		}
		evidence += text[m.Start:m.End]
	}
	slices.Sort(extras)
	spec.Extras = slices.Compact(extras)
	return Match{Field: FieldExtras, Value: spec.Extras, Evidence: evidence}
}
