package provider

import (
	"context"
	"fmt"
	"time"
)

// CostRecord accounts for one successful provider call
type CostRecord struct {
	Provider   ID         `json:"provider"`
	Capability Capability `json:"capability"`
	Units      float64    `json:"units"`
	Cost       float64    `json:"cost"`
}

// Invocation is the outcome of one gateway call: the winning provider's
// result, the cost of every successful call made along the way, and the
// failures of providers that were attempted before the success.
type Invocation struct {
	Result   *Result
	Costs    []CostRecord
	Failures []Failure
}

// TotalCost sums the cost records.
func (inv *Invocation) TotalCost() float64 {
	total := 0.0
	for _, c := range inv.Costs {
		total += c.Cost
	}
	return total
}

// Gateway iterates the configured provider order for each call. It holds no
// state across invocations besides the immutable configuration.
type Gateway struct {
	config    Config
	providers map[ID]Provider
}

// NewGateway builds a gateway from configuration. Provider credentials are
// resolved from the environment lazily, so construction never fails on a
// missing credential; that surfaces on first use.
func NewGateway(config Config) (*Gateway, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	providers := make(map[ID]Provider, len(config.Fallback))
	for _, s := range config.Fallback {
		p, err := newProvider(s)
		if err != nil {
			return nil, err
		}
		providers[s.ID] = p
	}
	return &Gateway{config: config, providers: providers}, nil
}

// NewGatewayWithProviders builds a gateway over explicit provider
// implementations. Used by tests and by callers wiring custom backends.
func NewGatewayWithProviders(config Config, providers map[ID]Provider) (*Gateway, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	for _, s := range config.Fallback {
		if _, ok := providers[s.ID]; !ok {
			return nil, fmt.Errorf("no implementation supplied for configured provider %q", s.ID)
		}
	}
	return &Gateway{config: config, providers: providers}, nil
}

func newProvider(s Settings) (Provider, error) {
	switch s.ID {
	case IDGemini:
		return NewGeminiProvider(s), nil
	case IDOpenAI:
		return NewOpenAIProvider(s), nil
	case IDDocumentAI:
		return NewDocumentAIProvider(s), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", s.ID)
	}
}

// Invoke attempts the request against each enabled provider in fallback
// order. Disabled providers are skipped, never retried. Rate-limited calls
// are retried once with backoff before falling through; authentication and
// configuration errors abort the chain immediately so a missing credential
// does not silently degrade quality by exhausting every fallback.
func (g *Gateway) Invoke(ctx context.Context, req Request) (*Invocation, error) {
	if !req.Capability.IsValid() {
		return nil, fmt.Errorf("unknown capability %q", req.Capability)
	}

	var failures []Failure
	var costs []CostRecord

	for _, s := range g.config.Enabled() {
		p := g.providers[s.ID]
		if !p.Supports(req.Capability) {
			continue
		}

		result, err := g.attempt(ctx, p, req)
		if err != nil {
			failures = append(failures, Failure{Provider: s.ID, Reason: err.Error()})
			if IsAuth(err) {
				return nil, &ExhaustedError{Capability: req.Capability, Failures: failures}
			}
			continue
		}

		costs = append(costs, CostRecord{
			Provider:   s.ID,
			Capability: req.Capability,
			Units:      result.Units,
			Cost:       result.Units * s.CostPerUnit,
		})

		// Pure-OCR providers return raw text; structure it through a
		// text-generate call so every ocr-extract caller gets the same
		// schema-shaped contract.
		if req.Capability == CapabilityOCRExtract && req.Schema != "" && !result.Structured {
			structured, serr := g.Invoke(ctx, Request{
				Capability:  CapabilityTextGenerate,
				System:      req.System,
				Prompt:      structuringPrompt(req.Prompt, result.Text),
				Schema:      req.Schema,
				DetailLevel: req.DetailLevel,
			})
			if serr != nil {
				failures = append(failures, Failure{Provider: s.ID, Reason: fmt.Sprintf("OCR text could not be structured: %v", serr)})
				continue
			}
			costs = append(costs, structured.Costs...)
			failures = append(failures, structured.Failures...)
			result = structured.Result
		}

		return &Invocation{Result: result, Costs: costs, Failures: failures}, nil
	}

	return nil, &ExhaustedError{Capability: req.Capability, Failures: failures}
}

// attempt runs one provider call with the configured timeout, retrying a
// rate-limited call exactly once after backoff.
func (g *Gateway) attempt(ctx context.Context, p Provider, req Request) (*Result, error) {
	result, err := g.call(ctx, p, req)
	if err == nil || !IsRateLimit(err) {
		return result, err
	}

	select {
	case <-ctx.Done():
		return nil, err
	case <-time.After(g.config.RateLimitBackoff):
	}
	return g.call(ctx, p, req)
}

func (g *Gateway) call(ctx context.Context, p Provider, req Request) (*Result, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.config.CallTimeout)
	defer cancel()
	return p.Invoke(callCtx, req)
}

// Close releases every provider's resources.
func (g *Gateway) Close() error {
	var firstErr error
	for _, p := range g.providers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func structuringPrompt(original, ocrText string) string {
	return fmt.Sprintf("%s\n\nThe document's recognized text follows between triple quotes. Extract from it, do not invent.\n\"\"\"\n%s\n\"\"\"", original, ocrText)
}
