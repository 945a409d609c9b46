package parsing

import (
	"testing"

	"github.com/jonathan/architect-assistant/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestMatchFloorCount(t *testing.T) {
	tests := []struct {
		text     string
		expected int
		ok       bool
	}{
		{"20 floors", 20, true},
		{"1 floor", 1, true},
		{"3 levels", 3, true},
		{"4 stories", 4, true},
		{"a 9-story tower", 9, true},
		{"10 floors and 20 floors", 10, true},
		{"200 floors", 200, true},
		{"201 floors", 0, false},
		{"05 floors", 0, false},
		{"floors: many", 0, false},
		{"1,200 floors", 0, false},
		{"6,5 floors", 0, false},
		{"10 floors, 3,5 m floor height", 10, true},
		{"3 floor height of 4 meters", 0, false},
		{"a 4 storey-height void", 0, false},
		{"3 floor-to-floor 4 m", 0, false},
		{"3 floors, floor height 4 m", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			n, _, ok := matchFloorCount(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestMatchFootprint(t *testing.T) {
	tests := []struct {
		text     string
		expected types.Footprint
		ok       bool
	}{
		{"30x20 meters", types.Footprint{Width: 30, Depth: 20}, true},
		{"30 x 20", types.Footprint{Width: 30, Depth: 20}, true},
		{"30m x 20m", types.Footprint{Width: 30, Depth: 20}, true},
		{"30 * 20 metres", types.Footprint{Width: 30, Depth: 20}, true},
		{"30x20 yards then 10x8 m", types.Footprint{Width: 10, Depth: 8}, true},
		{"0x20 meters", types.Footprint{}, false},
		{"1001x20", types.Footprint{}, false},
		{"30x20 cm", types.Footprint{}, false},
		{"30,5x20 m", types.Footprint{}, false},
		{"30x20,5 m", types.Footprint{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			fp, _, ok := matchFootprint(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, fp)
		})
	}
}

func TestMatchFloorHeight(t *testing.T) {
	tests := []struct {
		text     string
		expected float64
		ok       bool
	}{
		{"floor height 3 meters", 3, true},
		{"floor height of 3.5 m", 3.5, true},
		{"floor-to-floor height: 4", 4, true},
		{"storey height is 3.8m", 3.8, true},
		{"floor-to-floor 3.3 metres", 3.3, true},
		{"3 m floor height", 3, true},
		{"4m ceilings", 4, true},
		{"3.6 meters per floor", 3.6, true},
		{"floor height 0 m", 0, false},
		{"floor height 25 m", 0, false},
		{"floor height 12 feet", 0, false},
		{"3 meters tall", 0, false},
		{"3,5 m floor height", 0, false},
		{"floor height 3,5 m", 0, false},
		{"10 floors, 3 m floor height", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			h, _, ok := matchFloorHeight(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, h)
		})
	}
}
