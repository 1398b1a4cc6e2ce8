package provider

import (
	"context"
	"math"
	"strings"
)

// Request is the uniform payload for one provider invocation
type Request struct {
	Capability Capability

	// Prompt and System drive text generation and the structuring half of
	// OCR extraction.
	Prompt string
	System string

	// Schema, when set, asks the provider for structured JSON output
	// matching the named schema content.
	Schema string

	// Document carries the raw bytes for ocr-extract calls.
	Document []byte
	MimeType string

	// DetailLevel is an extraction hint (e.g. "comprehensive") passed
	// through to the provider. It never changes validation strictness.
	DetailLevel string
}

// Result is the uniform output of one provider invocation
type Result struct {
	// Text is the provider's response: structured JSON when Structured is
	// true, otherwise raw recognized text (pure-OCR providers).
	Text       string
	Structured bool

	Provider ID
	Model    string

	// Units consumed by the call: pages for OCR, calls for generation.
	Units float64
}

// Provider is one concrete LLM/OCR backend. Implementations resolve their
// credentials from the environment lazily so that a missing credential
// surfaces on first use, not at construction.
type Provider interface {
	ID() ID
	Supports(capability Capability) bool
	Invoke(ctx context.Context, req Request) (*Result, error)
	Close() error
}

// CleanJSONBlock removes markdown code block wrappers that models sometimes
// emit around JSON despite structured-output instructions.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	// Models occasionally wrap JSON in conversational text. Slice out the
	// outermost object or array.
	start := -1
	closer := ""
	if i := strings.Index(text, "{"); i >= 0 {
		start, closer = i, "}"
	}
	if i := strings.Index(text, "["); i >= 0 && (start == -1 || i < start) {
		start, closer = i, "]"
	}
	if start >= 0 {
		if end := strings.LastIndex(text, closer); end > start {
			return strings.TrimSpace(text[start : end+1])
		}
	}
	return text
}

// estimatePages approximates the page count of a document payload when the
// provider does not report one. 50KB per page is a rough PDF average.
func estimatePages(data []byte) float64 {
	const bytesPerPage = 50 * 1024
	pages := math.Ceil(float64(len(data)) / bytesPerPage)
	if pages < 1 {
		return 1
	}
	return pages
}
