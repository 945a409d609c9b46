package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/architect-assistant/internal/parsing"
	"github.com/jonathan/architect-assistant/internal/types"
)

func TestExtractCommand(t *testing.T) {
	prompt := "a three storey stucco villa with a hipped roof, arched entrance and balconies"

	output, err := execute(t, "extract", "--prompt", prompt)
	require.NoError(t, err)

	var spec types.BuildingSpecification
	require.NoError(t, json.Unmarshal([]byte(output), &spec))
	assert.Equal(t, parsing.Extract(prompt), spec)
}

func TestExtractCommand_RequiresPrompt(t *testing.T) {
	_, err := execute(t, "extract")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--prompt is required")
}

func TestSynthesizeCommand(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "spec.json")

	spec := types.Defaults()
	spec.FloorCount = 8
	spec.RoofType = types.RoofGabled
	data, err := json.Marshal(spec)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(specPath, data, 0o644))

	output, err := execute(t, "synthesize", "--spec", specPath, "--out", dir)
	require.NoError(t, err, output)
	assert.FileExists(t, filepath.Join(dir, "8-floor-concrete-building.py"))

	output, err = execute(t, "synthesize", "--spec", specPath, "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, output, `roof_form("Roof"`)
}

func TestSynthesizeCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing flag", []string{"synthesize"}, `"spec" not set`},
		{"missing file", []string{"synthesize", "--spec", filepath.Join(dir, "nope.json")}, "failed to read specification"},
		{"schema violation", []string{"synthesize", "--spec", write("bad.json", `{"floor_count": 0}`)}, "validation failed"},
		{"malformed", []string{"synthesize", "--spec", write("broken.json", `{`)}, "invalid specification"},
		{"unsorted extras", []string{"synthesize", "--out", dir, "--spec", write("unsorted.json", `{
			"floor_count": 2,
			"footprint": {"width": 10, "depth": 8},
			"floor_height": 3,
			"facade_material": "brick",
			"roof_type": "gabled",
			"entrance_type": "double-door",
			"window_pattern": "punched",
			"extras": ["setbacks", "balconies"]
		}`)}, "specification invariant violated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVocabularyCommand(t *testing.T) {
	output, err := execute(t, "vocabulary")
	require.NoError(t, err)

	var table parsing.VocabularyTable
	require.NoError(t, json.Unmarshal([]byte(output), &table))
	assert.Equal(t, types.Defaults(), table.Defaults)
}

func TestServeCommand_RejectsInvalidPort(t *testing.T) {
	_, err := execute(t, "serve", "--port", "70000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestConfigFlag_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"batch_limit": -3}`), 0o644))

	_, err := execute(t, "generate", "-p", "house", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "generate", "-p", "a 4 floor brick house with balconies", "--out", dir)
	require.NoError(t, err)
	good := filepath.Join(dir, "4-floor-brick-building.py")

	output, err := execute(t, "check", good)
	require.NoError(t, err, output)
	assert.Contains(t, output, `"violations": []`)

	code, err := os.ReadFile(good)
	require.NoError(t, err)
	bad := filepath.Join(dir, "edited.py")
	require.NoError(t, os.WriteFile(bad, append([]byte("import os\n"), code...), 0o644))

	output, err = execute(t, "check", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 script(s) failed checks")
	assert.Contains(t, output, "forbidden_import")

	_, err = execute(t, "check", filepath.Join(dir, "missing.py"))
	assert.Error(t, err)

	_, err = execute(t, "check")
	assert.Error(t, err)
}
