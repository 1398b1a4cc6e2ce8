package credits

import "fmt"

// UnauthorizedError represents a request whose identity could not be established
type UnauthorizedError struct {
	Message string
	Cause   error
}

func (e *UnauthorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unauthorized: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("unauthorized: %s", e.Message)
}

func (e *UnauthorizedError) Unwrap() error {
	return e.Cause
}

// InsufficientCreditsError represents a user with no remaining generation credits
type InsufficientCreditsError struct {
	Remaining int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: %d remaining", e.Remaining)
}
