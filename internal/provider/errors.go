package provider

import (
	"errors"
	"fmt"
	"strings"
)

// AuthError indicates missing or rejected credentials. Never retried:
// a missing credential must surface immediately instead of silently
// degrading quality through the rest of the fallback chain.
type AuthError struct {
	Provider ID
	Message  string
	Cause    error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s auth error: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %s auth error: %s", e.Provider, e.Message)
}

func (e *AuthError) Unwrap() error { return e.Cause }

// RateLimitError indicates the provider throttled the call. Retried at most
// once with backoff before falling through to the next provider.
type RateLimitError struct {
	Provider ID
	Cause    error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("provider %s rate limited: %v", e.Provider, e.Cause)
}

func (e *RateLimitError) Unwrap() error { return e.Cause }

// CallError is any other provider failure: timeout, transport error, or a
// malformed response. The gateway advances to the next provider.
type CallError struct {
	Provider ID
	Message  string
	Cause    error
}

func (e *CallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s call failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %s call failed: %s", e.Provider, e.Message)
}

func (e *CallError) Unwrap() error { return e.Cause }

// Failure records why one provider in the chain did not produce a result
type Failure struct {
	Provider ID     `json:"provider"`
	Reason   string `json:"reason"`
}

// ExhaustedError is returned when no provider in the fallback chain
// succeeded. It carries the per-provider failure reasons.
type ExhaustedError struct {
	Capability Capability
	Failures   []Failure
}

func (e *ExhaustedError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("all providers exhausted for %s:", e.Capability))
	for _, f := range e.Failures {
		sb.WriteString(fmt.Sprintf("\n  %s: %s", f.Provider, f.Reason))
	}
	return sb.String()
}

// IsAuth reports whether err is (or wraps) an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsRateLimit reports whether err is (or wraps) a RateLimitError.
func IsRateLimit(err error) bool {
	var re *RateLimitError
	return errors.As(err, &re)
}
