// Package extraction turns uploaded CV documents into validated candidate
// profiles using the provider gateway's OCR capability.
package extraction

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/yvoderooij/preptalk-curriculum/internal/prompts"
	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/schemas"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
	schemafiles "github.com/yvoderooij/preptalk-curriculum/schemas"
)

// DetailLevel hints at how thorough the extraction should be. It shapes the
// prompt only; schema validation stays strict regardless.
const (
	DetailStandard      = "standard"
	DetailComprehensive = "comprehensive"
)

// Invoker is the slice of the provider gateway the extractor depends on.
type Invoker interface {
	Invoke(ctx context.Context, req provider.Request) (*provider.Invocation, error)
}

// Extraction bundles the validated profile with the cost and provenance of
// the calls that produced it.
type Extraction struct {
	Profile  *types.CandidateProfile
	Provider provider.ID
	Costs    []provider.CostRecord
}

// Extractor converts raw document bytes into candidate profiles.
type Extractor struct {
	gateway Invoker
}

// NewExtractor builds an extractor over the given gateway.
func NewExtractor(gateway Invoker) *Extractor {
	return &Extractor{gateway: gateway}
}

// Extract runs OCR extraction on the document and validates the structured
// result against the candidate profile schema. Validation failures are
// returned as *SchemaError and must not be silently repaired.
func (e *Extractor) Extract(ctx context.Context, document []byte, mimeType, detailLevel string) (*Extraction, error) {
	if len(document) == 0 {
		return nil, &GatewayError{Message: "document is empty"}
	}
	if detailLevel == "" {
		detailLevel = DetailStandard
	}

	prompt, system, err := buildExtractionPrompt(detailLevel)
	if err != nil {
		return nil, &GatewayError{Message: "failed to load extraction prompt", Cause: err}
	}

	schemaContent, err := schemafiles.Get(schemafiles.CandidateProfile)
	if err != nil {
		return nil, &GatewayError{Message: "failed to load profile schema", Cause: err}
	}

	inv, err := e.gateway.Invoke(ctx, provider.Request{
		Capability:  provider.CapabilityOCRExtract,
		System:      system,
		Prompt:      prompt,
		Schema:      schemaContent,
		Document:    document,
		MimeType:    mimeType,
		DetailLevel: detailLevel,
	})
	if err != nil {
		return nil, &GatewayError{Message: "all providers failed", Cause: err}
	}

	profile, err := decodeProfile(inv.Result.Text)
	if err != nil {
		return nil, err
	}

	return &Extraction{
		Profile:  profile,
		Provider: inv.Result.Provider,
		Costs:    inv.Costs,
	}, nil
}

// decodeProfile validates raw provider output and unmarshals it. Provider
// confidence metadata is preserved verbatim rather than re-encoded, so that
// downstream consumers see exactly what the provider reported.
func decodeProfile(raw string) (*types.CandidateProfile, error) {
	cleaned := provider.CleanJSONBlock(raw)

	if !gjson.Valid(cleaned) {
		return nil, &ParseError{Message: "provider response is not valid JSON"}
	}

	if err := schemas.Validate(schemafiles.CandidateProfile, cleaned); err != nil {
		if _, ok := err.(*schemas.ValidationError); ok {
			return nil, &SchemaError{Cause: err}
		}
		return nil, &GatewayError{Message: "schema validation could not run", Cause: err}
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal([]byte(cleaned), &profile); err != nil {
		return nil, &ParseError{Message: "failed to decode validated profile", Cause: err}
	}

	if conf := gjson.Get(cleaned, "confidence"); conf.Exists() {
		profile.Confidence = json.RawMessage(conf.Raw)
	}

	return &profile, nil
}

func buildExtractionPrompt(detailLevel string) (prompt, system string, err error) {
	set, err := prompts.Load(prompts.StageExtraction)
	if err != nil {
		return "", "", err
	}
	system, err = set.System()
	if err != nil {
		return "", "", err
	}
	prompt, err = set.Format("extract-profile", map[string]string{"DetailLevel": detailLevel})
	if err != nil {
		return "", "", err
	}
	return prompt, system, nil
}
