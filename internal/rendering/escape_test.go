package rendering

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapePython(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", `""`},
		{"plain", "Wall_F000_S", `"Wall_F000_S"`},
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`},
		{"tab", "a\tb", `"a\tb"`},
		{"control", "a\x00b", `"a\x00b"`},
		{"unicode kept", "façade", `"façade"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapePython(tt.input))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{-0.00001, "0"},
		{20, "20"},
		{100, "100"},
		{3.5, "3.5"},
		{-7.375, "-7.375"},
		{3.5 - 0.3, "3.2"},
		{1.0 / 3, "0.3333"},
		{1.23456, "1.2346"},
		{-12.34567, "-12.3457"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFloat(tt.input))
		})
	}
}

func TestFormatInts(t *testing.T) {
	assert.Equal(t, "3, 2, 1, 0", formatInts([]int{3, 2, 1, 0}))
	assert.Equal(t, "", formatInts(nil))
}
