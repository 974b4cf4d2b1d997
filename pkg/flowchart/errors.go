package flowchart

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by TryCompile. Compile never returns them;
// it substitutes the fallback graph instead.
var (
	// ErrNoPayload indicates no strategy could parse JSON out of the text.
	ErrNoPayload = errors.New("no JSON payload found")

	// ErrUnrecognizedShape indicates the payload is neither a canonical
	// {nodes, edges} graph nor a {flowchart} narrative.
	ErrUnrecognizedShape = errors.New("unrecognized flow shape")
)

// Compile stage names, used in errors, logs and span names.
const (
	StageExtract   = "extract"
	StageNormalize = "normalize"
	StageValidate  = "validate"
)

// PanicError captures a panic recovered while compiling.
// It includes the stack trace for debugging.
type PanicError struct {
	// Stage is the compile stage that panicked.
	Stage string
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Stage, e.Value)
}

// StageError wraps a failure with the compile stage it came from.
type StageError struct {
	// Stage is the compile stage that failed.
	Stage string
	// Strategy is the extraction strategy that produced the payload, if any.
	Strategy Strategy
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.Strategy != "" {
		return fmt.Sprintf("%s (via %s): %v", e.Stage, e.Strategy, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StageError) Unwrap() error {
	return e.Err
}
