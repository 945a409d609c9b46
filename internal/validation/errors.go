// Package validation checks generated Blender scripts for the properties every script
// must hold before it is handed to a user.
package validation

import "fmt"

// Error represents a general validation error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ScriptError reports a script with error-severity violations
type ScriptError struct {
	Violations []Violation
}

func (e *ScriptError) Error() string {
	if len(e.Violations) == 0 {
		return "script check failed"
	}
	first := e.Violations[0]
	if first.LineNumber != nil {
		return fmt.Sprintf("script check failed: %d violation(s), first at line %d: %s", len(e.Violations), *first.LineNumber, first.Details)
	}
	return fmt.Sprintf("script check failed: %d violation(s): %s", len(e.Violations), first.Details)
}

// FileReadError represents an error reading a file
type FileReadError struct {
	Message string
	Cause   error
}

func (e *FileReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("file read error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("file read error: %s", e.Message)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}
