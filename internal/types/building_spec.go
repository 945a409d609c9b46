// Package types provides type definitions for structured data used throughout the architect assistant.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-playground/validator/v10"
)

// Default values applied by the extractor when a prompt does not mention a field.
// These are part of the public contract: callers rely on them being stable.
const (
	DefaultFloorCount      = 5
	DefaultFootprintWidth  = 20.0
	DefaultFootprintDepth  = 15.0
	DefaultFloorHeight     = 3.5
	DefaultFacadeMaterial  = FacadeConcrete
	DefaultRoofType        = RoofFlatParapet
	DefaultEntranceType    = EntranceDoubleDoor
	DefaultWindowPattern   = WindowGrid
	MaxFloorCount          = 200
	MaxFootprintDimension  = 1000.0
	MaxFloorHeight         = 20.0
	buildingSpecStructName = "BuildingSpecification"
)

// Footprint is the rectangular plan of the building in meters
type Footprint struct {
	Width float64 `json:"width" validate:"gt=0,lte=1000"`
	Depth float64 `json:"depth" validate:"gt=0,lte=1000"`
}

// Longer returns the larger of the two footprint dimensions
func (f Footprint) Longer() float64 {
	return math.Max(f.Width, f.Depth)
}

// Shorter returns the smaller of the two footprint dimensions
func (f Footprint) Shorter() float64 {
	return math.Min(f.Width, f.Depth)
}

// BuildingSpecification is the fully-defaulted structured description of a building.
// It is produced by the extractor and consumed by the synthesizer.
type BuildingSpecification struct {
	FloorCount     int            `json:"floor_count" validate:"gte=1,lte=200"`
	Footprint      Footprint      `json:"footprint"`
	FloorHeight    float64        `json:"floor_height" validate:"gt=0,lte=20"`
	FacadeMaterial FacadeMaterial `json:"facade_material" validate:"required,oneof=glass-curtain-wall stone brick stucco concrete wood metal-panel"`
	RoofType       RoofType       `json:"roof_type" validate:"required,oneof=flat-parapet gabled mansard hipped"`
	EntranceType   EntranceType   `json:"entrance_type" validate:"required,oneof=revolving-door double-door arched recessed canopy"`
	WindowPattern  WindowPattern  `json:"window_pattern" validate:"required,oneof=grid ribbon punched curtain-continuous"`
	Extras         []Extra        `json:"extras" validate:"unique,dive,oneof=balconies cornices setbacks"`
}

// Defaults returns the specification produced for an empty prompt
func Defaults() BuildingSpecification {
	return BuildingSpecification{
		FloorCount:     DefaultFloorCount,
		Footprint:      Footprint{Width: DefaultFootprintWidth, Depth: DefaultFootprintDepth},
		FloorHeight:    DefaultFloorHeight,
		FacadeMaterial: DefaultFacadeMaterial,
		RoofType:       DefaultRoofType,
		EntranceType:   DefaultEntranceType,
		WindowPattern:  DefaultWindowPattern,
		Extras:         []Extra{},
	}
}

// TotalHeight returns the height of the floor stack (floorCount × floorHeight), excluding the roof
func (s *BuildingSpecification) TotalHeight() float64 {
	return float64(s.FloorCount) * s.FloorHeight
}

// HasExtra reports whether the given extra feature is requested
func (s *BuildingSpecification) HasExtra(e Extra) bool {
	return slices.Contains(s.Extras, e)
}

// Summary returns a short human-readable description such as
// "20-floor glass-curtain-wall building, 30x20 m, flat-parapet roof"
func (s *BuildingSpecification) Summary() string {
	return fmt.Sprintf("%d-floor %s building, %gx%g m, %s roof",
		s.FloorCount, s.FacadeMaterial, s.Footprint.Width, s.Footprint.Depth, s.RoofType)
}

// Validate checks every invariant of the specification. A non-nil error means the
// specification was not produced by the extractor (or was tampered with).
func (s *BuildingSpecification) Validate() error {
	numerics := []struct {
		field string
		value float64
	}{
		{"footprint.width", s.Footprint.Width},
		{"footprint.depth", s.Footprint.Depth},
		{"floor_height", s.FloorHeight},
	}
	for _, n := range numerics {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return &SpecError{Field: n.field, Message: "must be finite"}
		}
	}

	if s.Extras == nil {
		return &SpecError{Field: "extras", Message: "must not be nil"}
	}
	if !slices.IsSorted(s.Extras) {
		return &SpecError{Field: "extras", Message: "must be sorted"}
	}

	if err := specValidator.Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return &SpecError{
				Field:   fe.Namespace(),
				Message: fmt.Sprintf("failed %q constraint (value %v)", fe.Tag(), fe.Value()),
			}
		}
		return &SpecError{Field: buildingSpecStructName, Message: err.Error()}
	}
	return nil
}

// SpecError describes a violated specification invariant
type SpecError struct {
	Field   string
	Message string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("invalid building specification: %s: %s", e.Field, e.Message)
}

// specValidator is safe for concurrent use and caches struct metadata
var specValidator = validator.New()
