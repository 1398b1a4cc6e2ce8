// Package insights derives interview-preparation analytics from candidate
// profiles. The experience level is computed deterministically; the softer
// judgments (trajectory, readiness, question topics) come from a generation
// provider and are validated before use.
package insights

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yvoderooij/preptalk-curriculum/internal/prompts"
	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/schemas"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
	schemafiles "github.com/yvoderooij/preptalk-curriculum/schemas"
)

// Invoker is the slice of the provider gateway the generator depends on.
type Invoker interface {
	Invoke(ctx context.Context, req provider.Request) (*provider.Invocation, error)
}

// Analysis bundles the validated insights with the cost of producing them.
type Analysis struct {
	Insights *types.ProfileInsights
	Provider provider.ID
	Costs    []provider.CostRecord
}

// Generator produces ProfileInsights from candidate profiles.
type Generator struct {
	gateway Invoker
}

// NewGenerator builds a generator over the given gateway.
func NewGenerator(gateway Invoker) *Generator {
	return &Generator{gateway: gateway}
}

// Analyze derives insights for the profile. The experience level is bucketed
// deterministically from years of experience before the provider call, and
// the provider's output is forced to agree with it: seniority grading must
// be reproducible, not a model opinion.
func (g *Generator) Analyze(ctx context.Context, profile *types.CandidateProfile, targetRoleHint string) (*Analysis, error) {
	if profile == nil {
		return nil, &GenerationError{Message: "profile is required"}
	}

	level := DetermineExperienceLevel(profile.Summary.YearsOfExperience, profile.RoleCount())

	prompt, system, err := buildAnalysisPrompt(profile, level, targetRoleHint)
	if err != nil {
		return nil, &GenerationError{Message: "failed to build prompt", Cause: err}
	}

	schemaContent, err := schemafiles.Get(schemafiles.ProfileInsights)
	if err != nil {
		return nil, &GenerationError{Message: "failed to load insights schema", Cause: err}
	}

	inv, err := g.gateway.Invoke(ctx, provider.Request{
		Capability: provider.CapabilityTextGenerate,
		System:     system,
		Prompt:     prompt,
		Schema:     schemaContent,
	})
	if err != nil {
		return nil, &GenerationError{Message: "all providers failed", Cause: err}
	}

	cleaned := provider.CleanJSONBlock(inv.Result.Text)
	if err := schemas.Validate(schemafiles.ProfileInsights, cleaned); err != nil {
		return nil, &GenerationError{Message: "insights failed schema validation", Cause: err}
	}

	var result types.ProfileInsights
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &GenerationError{Message: "failed to decode insights", Cause: err}
	}

	result.ExperienceLevel = level

	return &Analysis{
		Insights: &result,
		Provider: inv.Result.Provider,
		Costs:    inv.Costs,
	}, nil
}

func buildAnalysisPrompt(profile *types.CandidateProfile, level types.ExperienceLevel, targetRoleHint string) (prompt, system string, err error) {
	set, err := prompts.Load(prompts.StageInsights)
	if err != nil {
		return "", "", err
	}
	system, err = set.System()
	if err != nil {
		return "", "", err
	}

	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", "", err
	}

	targetRole := ""
	if targetRoleHint != "" {
		targetRole = fmt.Sprintf(" The candidate is targeting a %s role; weigh readiness against it.", targetRoleHint)
	}

	prompt, err = set.Format("analyze-profile", map[string]string{
		"ExperienceLevel": level.String(),
		"TargetRole":      targetRole,
		"Profile":         string(profileJSON),
	})
	if err != nil {
		return "", "", err
	}
	return prompt, system, nil
}
