// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/architect-assistant/internal/parsing"
	"github.com/jonathan/architect-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxEvidenceLen bounds the quoted prompt fragment shown per field
	maxEvidenceLen = 24
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtraction outputs every resolved field and the prompt text that decided it.
// Defaulted fields are marked so the user can see what the prompt did not mention.
func (p *Printer) PrintExtraction(result *parsing.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	for _, m := range result.Matches {
		sb.WriteString(fmt.Sprintf("%-16s %v", m.Field+":", formatValue(m.Value)))
		if m.Defaulted {
			sb.WriteString("  (default)")
		} else if m.Evidence != "" {
			evidence := m.Evidence
			if len(evidence) > maxEvidenceLen {
				evidence = evidence[:maxEvidenceLen-3] + "..."
			}
			sb.WriteString(fmt.Sprintf("  ← %q", evidence))
		}
		sb.WriteString("\n")
	}

	p.printBox("EXTRACTED SPECIFICATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintArtifact outputs a summary of a generated script
func (p *Printer) PrintArtifact(artifact *types.GeneratedArtifact) {
	if artifact == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", artifact.Filename))
	sb.WriteString(fmt.Sprintf("Building: %s\n", artifact.Parameters.Summary()))
	sb.WriteString(fmt.Sprintf("Height:   %g m\n", artifact.Parameters.TotalHeight()))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes, %d lines", len(artifact.Code), strings.Count(artifact.Code, "\n")))

	p.printBox("GENERATED SCRIPT", sb.String())
}

func formatValue(v any) string {
	switch val := v.(type) {
	case types.Footprint:
		return fmt.Sprintf("%g x %g m", val.Width, val.Depth)
	case []types.Extra:
		if len(val) == 0 {
			return "none"
		}
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = string(e)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
