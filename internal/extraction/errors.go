package extraction

import "fmt"

// GatewayError represents a failure to obtain any provider response
type GatewayError struct {
	Message string
	Cause   error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction call failed: %s", e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// ParseError represents a response that is not valid JSON at all
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// SchemaError represents provider output that parsed as JSON but failed
// schema validation. The pipeline treats this as fatal: a partially valid
// profile is never accepted.
type SchemaError struct {
	Cause error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("extracted profile failed schema validation: %v", e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}
