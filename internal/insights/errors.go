package insights

import "fmt"

// GenerationError represents a failure to produce insights. The pipeline
// treats it as non-fatal: the curriculum degrades rather than aborting.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("insight generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("insight generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
