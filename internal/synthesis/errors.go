package synthesis

import "fmt"

// InvariantError reports a specification that violates an invariant the extractor
// guarantees. It indicates a programming error or a hand-edited specification, never bad
// user input to the extractor.
type InvariantError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvariantError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("specification invariant violated: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("specification invariant violated: %s", e.Message)
}

func (e *InvariantError) Unwrap() error {
	return e.Cause
}
