// Package curriculum synthesizes personalized interview curricula from job
// requirements and whatever candidate signal is available.
package curriculum

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/yvoderooij/preptalk-curriculum/internal/prompts"
	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/schemas"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
	schemafiles "github.com/yvoderooij/preptalk-curriculum/schemas"
)

// Invoker is the slice of the provider gateway the synthesizer depends on.
type Invoker interface {
	Invoke(ctx context.Context, req provider.Request) (*provider.Invocation, error)
}

// Input carries everything synthesis can draw on. Job is required; the
// candidate fields are optional and their absence produces a generic,
// job-only curriculum.
type Input struct {
	Job      *types.JobRequirements
	Profile  *types.CandidateProfile
	Insights *types.ProfileInsights
	Match    *types.MatchResult
}

// Synthesis bundles the validated curriculum with provider costs.
type Synthesis struct {
	Curriculum *types.Curriculum
	Provider   provider.ID
	Costs      []provider.CostRecord
}

// Synthesizer produces curricula through the provider gateway.
type Synthesizer struct {
	gateway Invoker
	now     func() time.Time
}

// NewSynthesizer builds a synthesizer over the given gateway.
func NewSynthesizer(gateway Invoker) *Synthesizer {
	return &Synthesizer{gateway: gateway, now: time.Now}
}

// Synthesize generates a curriculum for the input. The provider's output is
// schema-validated, round numbering is normalized to a dense 1..N sequence,
// and the structural invariants are re-checked before the curriculum is
// returned. A fresh identity is minted on every call.
func (s *Synthesizer) Synthesize(ctx context.Context, in Input) (*Synthesis, error) {
	if in.Job == nil {
		return nil, &SynthesisError{Message: "job requirements are required"}
	}

	prompt, system, err := buildSynthesisPrompt(in)
	if err != nil {
		return nil, &SynthesisError{Message: "failed to build prompt", Cause: err}
	}

	schemaContent, err := schemafiles.Get(schemafiles.Curriculum)
	if err != nil {
		return nil, &SynthesisError{Message: "failed to load curriculum schema", Cause: err}
	}

	inv, err := s.gateway.Invoke(ctx, provider.Request{
		Capability: provider.CapabilityTextGenerate,
		System:     system,
		Prompt:     prompt,
		Schema:     schemaContent,
	})
	if err != nil {
		return nil, &SynthesisError{Message: "all providers failed", Cause: err}
	}

	cleaned := provider.CleanJSONBlock(inv.Result.Text)
	if err := schemas.Validate(schemafiles.Curriculum, cleaned); err != nil {
		return nil, &SynthesisError{Message: "curriculum failed schema validation", Cause: err}
	}

	var result types.Curriculum
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &SynthesisError{Message: "failed to decode curriculum", Cause: err}
	}

	normalize(&result, in.Job)
	result.ID = uuid.New()
	result.CreatedAt = s.now().UTC()

	if err := result.Validate(); err != nil {
		return nil, &SynthesisError{Message: "curriculum invalid after normalization", Cause: err}
	}

	return &Synthesis{
		Curriculum: &result,
		Provider:   inv.Result.Provider,
		Costs:      inv.Costs,
	}, nil
}

// normalize repairs the mechanical fields providers routinely get wrong.
// Round numbering and totals are renumbered from array order; personas are
// completed with per-type defaults. Semantic content is never altered.
func normalize(c *types.Curriculum, job *types.JobRequirements) {
	for i := range c.Rounds {
		c.Rounds[i].RoundNumber = i + 1
		fillPersona(&c.Rounds[i])
	}
	c.TotalRounds = len(c.Rounds)
	if c.JobID == "" {
		c.JobID = job.JobID
	}
}

func buildSynthesisPrompt(in Input) (prompt, system string, err error) {
	set, err := prompts.Load(prompts.StageCurriculum)
	if err != nil {
		return "", "", err
	}
	system, err = set.System()
	if err != nil {
		return "", "", err
	}

	jobJSON, err := json.MarshalIndent(in.Job, "", "  ")
	if err != nil {
		return "", "", err
	}

	candidateContext, err := buildCandidateContext(in)
	if err != nil {
		return "", "", err
	}

	prompt, err = set.Format("synthesize", map[string]string{
		"Job":              string(jobJSON),
		"CandidateContext": candidateContext,
	})
	if err != nil {
		return "", "", err
	}
	return prompt, system, nil
}

// buildCandidateContext renders the optional personalization block. With no
// candidate signal at all it returns empty and the curriculum stays generic.
func buildCandidateContext(in Input) (string, error) {
	if in.Profile == nil && in.Insights == nil && in.Match == nil {
		return "", nil
	}

	set, err := prompts.Load(prompts.StageCurriculum)
	if err != nil {
		return "", err
	}

	marshal := func(v any) (string, error) {
		if v == nil {
			return "(not available)", nil
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	profileJSON, err := marshal(valueOrNil(in.Profile))
	if err != nil {
		return "", err
	}
	insightsJSON, err := marshal(valueOrNil(in.Insights))
	if err != nil {
		return "", err
	}
	matchJSON, err := marshal(valueOrNil(in.Match))
	if err != nil {
		return "", err
	}

	context, err := set.Format("candidate-context", map[string]string{
		"Profile":  profileJSON,
		"Insights": insightsJSON,
		"Match":    matchJSON,
	})
	if err != nil {
		return "", err
	}

	return context + formatFocusAreas(focusAreas(in.Insights, in.Match)), nil
}

// valueOrNil lifts a typed nil pointer to an untyped nil so marshal can
// detect it.
func valueOrNil[T any](p *T) any {
	if p == nil {
		return nil
	}
	return p
}
