package curriculum

import "fmt"

// SynthesisError represents a failure to produce a valid curriculum
type SynthesisError struct {
	Message string
	Cause   error
}

func (e *SynthesisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("curriculum synthesis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("curriculum synthesis failed: %s", e.Message)
}

func (e *SynthesisError) Unwrap() error {
	return e.Cause
}
