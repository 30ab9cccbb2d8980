package filter

import (
	"fmt"
)

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Err        error
	}

	// EvaluationError indicates a filter failed on a particular record
	EvaluationError struct {
		Expression string
		// IRN of the record, when it carries one
		IRN    string
		Reason string
		Err    error
	}
)

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	if e.IRN != "" {
		return fmt.Sprintf("evaluation error for '%s' on record %s: %s", e.Expression, e.IRN, e.Reason)
	}
	return fmt.Sprintf("evaluation error for '%s': %s", e.Expression, e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
