package rendering

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// EscapePython returns text as a double-quoted Python string literal
func EscapePython(text string) string {
	var result strings.Builder
	result.Grow(len(text) + 2)
	result.WriteByte('"')

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\\`)
		case '"':
			result.WriteString(`\"`)
		case '\n':
			result.WriteString(`\n`)
		case '\r':
			result.WriteString(`\r`)
		case '\t':
			result.WriteString(`\t`)
		default:
			if r < 0x80 && !unicode.IsPrint(r) {
				fmt.Fprintf(&result, `\x%02x`, r)
				continue
			}
			result.WriteRune(r)
		}
	}

	result.WriteByte('"')
	return result.String()
}

// pyLiteral is the template form of EscapePython; it accepts the named string types of the
// layout package as well as plain strings
func pyLiteral(v any) string {
	return EscapePython(fmt.Sprint(v))
}

// FormatFloat renders a number with fixed rounding so identical layouts always produce
// identical scripts: at most four decimals, trailing zeros trimmed, negative zero as "0".
func FormatFloat(v float64) string {
	rounded := math.Round(v*1e4) / 1e4
	s := strconv.FormatFloat(rounded, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func formatInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
