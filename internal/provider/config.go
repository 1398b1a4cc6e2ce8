// Package provider implements a uniform call contract over heterogeneous
// LLM/OCR providers with ordered fallback and per-call cost accounting.
package provider

import (
	"fmt"
	"time"
)

// Capability is a category of external-provider operation
type Capability string

// Capability constants
const (
	CapabilityOCRExtract   Capability = "ocr-extract"
	CapabilityTextGenerate Capability = "text-generate"
)

// IsValid checks whether the string is a known capability.
func (c Capability) IsValid() bool {
	return c == CapabilityOCRExtract || c == CapabilityTextGenerate
}

// ID identifies a provider implementation
type ID string

// Provider identifiers
const (
	IDGemini     ID = "gemini"
	IDOpenAI     ID = "openai"
	IDDocumentAI ID = "documentai"
)

// Settings holds the static configuration for one provider in the chain
type Settings struct {
	ID          ID      `json:"id"`
	Enabled     bool    `json:"enabled"`
	Model       string  `json:"model,omitempty"`
	CostPerUnit float64 `json:"cost_per_unit"` // per page for OCR, per call for generation
}

// Config is the immutable gateway configuration: the ordered fallback chain
// plus call timing knobs. It is constructed once and never mutated; the
// gateway holds no other state across invocations.
type Config struct {
	// Fallback is the ordered list of providers to attempt.
	Fallback []Settings `json:"fallback"`
	// CallTimeout bounds each individual provider attempt.
	CallTimeout time.Duration `json:"call_timeout"`
	// RateLimitBackoff is the wait before the single rate-limit retry.
	RateLimitBackoff time.Duration `json:"rate_limit_backoff"`
}

// DefaultConfig returns the default fallback chain: Gemini first (it covers
// both capabilities), then OpenAI for generation and Document AI for OCR.
func DefaultConfig() Config {
	return Config{
		Fallback: []Settings{
			{ID: IDGemini, Enabled: true, Model: "gemini-2.5-flash", CostPerUnit: 0.001},
			{ID: IDOpenAI, Enabled: true, Model: "gpt-4o-mini", CostPerUnit: 0.002},
			{ID: IDDocumentAI, Enabled: true, CostPerUnit: 0.0015},
		},
		CallTimeout:      90 * time.Second,
		RateLimitBackoff: 2 * time.Second,
	}
}

// Validate checks the configuration invariants: at least one enabled
// provider, no duplicate identifiers, and the declared default (first
// enabled entry) must actually sit first among enabled entries.
func (c Config) Validate() error {
	if len(c.Fallback) == 0 {
		return fmt.Errorf("config error: fallback chain is empty")
	}
	seen := make(map[ID]bool, len(c.Fallback))
	anyEnabled := false
	for i, s := range c.Fallback {
		if s.ID == "" {
			return fmt.Errorf("config error: fallback[%d] has empty provider id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("config error: duplicate provider %q in fallback chain", s.ID)
		}
		seen[s.ID] = true
		if s.Enabled {
			anyEnabled = true
		}
		if s.CostPerUnit < 0 {
			return fmt.Errorf("config error: provider %q has negative cost_per_unit", s.ID)
		}
	}
	if !anyEnabled {
		return fmt.Errorf("config error: no enabled providers in fallback chain")
	}
	return nil
}

// Enabled returns the enabled providers in fallback order.
func (c Config) Enabled() []Settings {
	out := make([]Settings, 0, len(c.Fallback))
	for _, s := range c.Fallback {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}
