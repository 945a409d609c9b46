// Package schemas embeds the JSON Schema documents describing the public data contracts.
package schemas

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
)

//go:embed *.schema.json
var files embed.FS

// Schema document names
const (
	BuildingSpecification = "building_specification.schema.json"
	GeneratedArtifact     = "generated_artifact.schema.json"
	GenerateRequest       = "generate_request.schema.json"
)

// Read returns the content of an embedded schema document
func Read(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not found: %w", name, err)
	}
	return string(data), nil
}

// Names lists every embedded schema document in lexical order
func Names() []string {
	names, err := fs.Glob(files, "*.schema.json")
	if err != nil {
		return nil
	}
	slices.Sort(names)
	return names
}
