package validation

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
)

// Violation types
const (
	ViolationForbiddenImport  = "forbidden_import"
	ViolationForbiddenCall    = "forbidden_call"
	ViolationMissingMarker    = "missing_construction_marker"
	ViolationUnknownStatement = "unknown_statement"
	ViolationDuplicateName    = "duplicate_name"
	ViolationNonFinite        = "non_finite_number"
	ViolationUnbalanced       = "unbalanced_brackets"
)

// Violation severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ConstructionMarker separates helper definitions from construction statements
const ConstructionMarker = "# Construction"

// AllowedModules are the only modules a script may import
var AllowedModules = []string{"bpy", "math"}

// ConstructionHelpers are the only calls allowed after the construction marker
var ConstructionHelpers = []string{
	"floor_slab", "wall_segment", "window_opening", "roof_form", "entrance_feature", "facade_feature",
}

// forbiddenCalls escape the scene sandbox or touch the filesystem
var forbiddenCalls = []string{
	"exec(", "eval(", "compile(", "open(", "__import__(", "getattr(",
	"os.", "sys.", "subprocess", "bpy.ops.wm.", "bpy.app.handlers",
}

var (
	importPattern    = regexp.MustCompile(`^\s*(?:import\s+([\w.]+)|from\s+([\w.]+)\s+import\b)`)
	statementPattern = regexp.MustCompile(`^([A-Za-z_]\w*)\(\s*"((?:[^"\\]|\\.)*)"`)
	nonFinitePattern = regexp.MustCompile(`(?:^|[\s(,\[])(?:[+-]?Inf|NaN|nan|inf)(?:$|[\s),\]])`)
	stringPattern    = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
)

// Violation represents a single script check failure
type Violation struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Details    string `json:"details"`
	LineNumber *int   `json:"line_number,omitempty"`
	Name       string `json:"name,omitempty"`
}

// Report is the outcome of checking one script
type Report struct {
	Violations []Violation `json:"violations"`
	Statements int         `json:"statements"`
}

// HasErrors reports whether any violation has error severity
func (r *Report) HasErrors() bool {
	return slices.ContainsFunc(r.Violations, func(v Violation) bool { return v.Severity == SeverityError })
}

// Err returns a *ScriptError listing the error-severity violations, or nil
func (r *Report) Err() error {
	var errs []Violation
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			errs = append(errs, v)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ScriptError{Violations: errs}
}

// CheckScript checks the text of a generated script
func CheckScript(code string) *Report {
	report := &Report{Violations: []Violation{}}
	names := make(map[string]int)
	inConstruction := false

	scanner := bufio.NewScanner(strings.NewReader(code))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == ConstructionMarker {
			inConstruction = true
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		checkImports(report, lineNum, line)
		checkForbiddenCalls(report, lineNum, line)

		if inConstruction {
			checkStatement(report, names, lineNum, trimmed)
		}
	}
	if err := scanner.Err(); err != nil {
		report.add(Violation{Type: ViolationUnknownStatement, Severity: SeverityError, Details: fmt.Sprintf("failed to scan script: %v", err)})
	}

	if !inConstruction {
		report.add(Violation{
			Type:     ViolationMissingMarker,
			Severity: SeverityError,
			Details:  fmt.Sprintf("script has no %q section", ConstructionMarker),
		})
	}
	return report
}

// CheckFile checks a script on disk
func CheckFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Message: fmt.Sprintf("failed to read script: %s", path), Cause: err}
	}
	return CheckScript(string(data)), nil
}

func (r *Report) add(v Violation) {
	r.Violations = append(r.Violations, v)
}

func checkImports(report *Report, lineNum int, line string) {
	m := importPattern.FindStringSubmatch(line)
	if m == nil {
		return
	}
	module := m[1]
	if module == "" {
		module = m[2]
	}
	root, _, _ := strings.Cut(module, ".")
	if !slices.Contains(AllowedModules, root) {
		report.add(Violation{
			Type:       ViolationForbiddenImport,
			Severity:   SeverityError,
			Details:    fmt.Sprintf("Line %d imports %s; only %s are allowed", lineNum, module, strings.Join(AllowedModules, ", ")),
			LineNumber: intPtr(lineNum),
		})
	}
}

func checkForbiddenCalls(report *Report, lineNum int, line string) {
	// string literals may legitimately contain anything
	code := stringPattern.ReplaceAllString(line, `""`)
	if idx := strings.Index(code, "#"); idx >= 0 {
		code = code[:idx]
	}
	for _, call := range forbiddenCalls {
		if containsToken(code, call) {
			report.add(Violation{
				Type:       ViolationForbiddenCall,
				Severity:   SeverityError,
				Details:    fmt.Sprintf("Line %d uses forbidden construct: %s", lineNum, strings.TrimSuffix(call, "(")),
				LineNumber: intPtr(lineNum),
			})
			return // one violation per line
		}
	}
}

// containsToken finds needle where it is not the tail of a longer identifier
func containsToken(s, needle string) bool {
	for offset := 0; ; {
		idx := strings.Index(s[offset:], needle)
		if idx < 0 {
			return false
		}
		pos := offset + idx
		if pos == 0 || !isIdentByte(s[pos-1]) {
			return true
		}
		offset = pos + 1
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func checkStatement(report *Report, names map[string]int, lineNum int, statement string) {
	report.Statements++

	m := statementPattern.FindStringSubmatch(statement)
	if m == nil || !slices.Contains(ConstructionHelpers, m[1]) {
		report.add(Violation{
			Type:       ViolationUnknownStatement,
			Severity:   SeverityError,
			Details:    fmt.Sprintf("Line %d is not a call to a construction helper", lineNum),
			LineNumber: intPtr(lineNum),
		})
		return
	}

	name := m[2]
	if first, ok := names[name]; ok {
		report.add(Violation{
			Type:       ViolationDuplicateName,
			Severity:   SeverityError,
			Details:    fmt.Sprintf("Line %d reuses object name %q first defined on line %d", lineNum, name, first),
			LineNumber: intPtr(lineNum),
			Name:       name,
		})
	} else {
		names[name] = lineNum
	}

	code := stringPattern.ReplaceAllString(statement, `""`)
	if nonFinitePattern.MatchString(code) {
		report.add(Violation{
			Type:       ViolationNonFinite,
			Severity:   SeverityError,
			Details:    fmt.Sprintf("Line %d contains a non-finite number", lineNum),
			LineNumber: intPtr(lineNum),
			Name:       name,
		})
	}
	if !balanced(code) {
		report.add(Violation{
			Type:       ViolationUnbalanced,
			Severity:   SeverityError,
			Details:    fmt.Sprintf("Line %d has unbalanced brackets", lineNum),
			LineNumber: intPtr(lineNum),
			Name:       name,
		})
	}
}

// balanced reports whether (), [] nest correctly; string literals must already be blanked
func balanced(code string) bool {
	var stack []byte
	for i := 0; i < len(code); i++ {
		switch c := code[i]; c {
		case '(', '[':
			stack = append(stack, c)
		case ')', ']':
			want := byte('(')
			if c == ']' {
				want = '['
			}
			if len(stack) == 0 || stack[len(stack)-1] != want {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// intPtr returns a pointer to an integer
func intPtr(i int) *int {
	return &i
}
