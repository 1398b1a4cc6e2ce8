package ingestion

import "fmt"

// SourceError represents a failure to obtain posting text from its source
type SourceError struct {
	Source  string
	Message string
	Cause   error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error for %s: %s", e.Source, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

// ParseError represents posting text that could not be structured
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
