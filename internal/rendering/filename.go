package rendering

import (
	"regexp"
	"strings"

	"github.com/jonathan/architect-assistant/internal/types"
)

// ScriptExtension is appended to every generated filename
const ScriptExtension = ".py"

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases text and collapses every run of characters outside [a-z0-9] to a
// single hyphen, trimming hyphens at both ends
func Slugify(text string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(text), "-"), "-")
}

// Filename derives the download filename of a building's script,
// e.g. "20-floor-glass-curtain-wall-building.py"
func Filename(spec types.BuildingSpecification) string {
	return Slugify(Title(spec)) + ScriptExtension
}
