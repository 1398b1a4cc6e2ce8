// Package ingestion turns job posting sources (URLs or local files) into
// structured JobRequirements.
package ingestion

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/yvoderooij/preptalk-curriculum/internal/fetch"
	"github.com/yvoderooij/preptalk-curriculum/internal/prompts"
	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/schemas"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

// Invoker is the slice of the provider gateway ingestion depends on.
type Invoker interface {
	Invoke(ctx context.Context, req provider.Request) (*provider.Invocation, error)
}

// Ingestor converts posting text into job requirements.
type Ingestor struct {
	gateway Invoker
}

// NewIngestor builds an ingestor over the given gateway.
func NewIngestor(gateway Invoker) *Ingestor {
	return &Ingestor{gateway: gateway}
}

// Ingested bundles the job requirements with provider costs.
type Ingested struct {
	Job   *types.JobRequirements
	Costs []provider.CostRecord
}

// FromURL fetches a posting page, extracts its text, and parses it. Pages
// that come back nearly empty are retried through a headless browser before
// parsing, since many job boards render client-side.
func (i *Ingestor) FromURL(ctx context.Context, url string) (*Ingested, error) {
	result, err := fetch.URL(ctx, url, nil)
	if err != nil {
		return nil, &SourceError{Source: url, Message: "failed to fetch posting", Cause: err}
	}

	text, err := fetch.PostingText(result.HTML)
	if err != nil {
		return nil, &SourceError{Source: url, Message: "failed to extract posting text", Cause: err}
	}

	if fetch.ShouldUseBrowser(text) {
		html, berr := fetch.WithBrowser(ctx, url, fetch.DefaultTimeout)
		if berr == nil {
			if rendered, rerr := fetch.PostingText(html); rerr == nil && len(rendered) > len(text) {
				text = rendered
			}
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, &SourceError{Source: url, Message: "posting page contained no text"}
	}

	return i.Parse(ctx, text)
}

// FromFile reads a posting from a local text file and parses it.
func (i *Ingestor) FromFile(ctx context.Context, path string) (*Ingested, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceError{Source: path, Message: "failed to read posting file", Cause: err}
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil, &SourceError{Source: path, Message: "posting file is empty"}
	}
	return i.Parse(ctx, string(content))
}

// Parse extracts structured requirements from raw posting text.
func (i *Ingestor) Parse(ctx context.Context, postingText string) (*Ingested, error) {
	prompt, system, err := buildParsePrompt(postingText)
	if err != nil {
		return nil, &ParseError{Message: "failed to build prompt", Cause: err}
	}

	inv, err := i.gateway.Invoke(ctx, provider.Request{
		Capability: provider.CapabilityTextGenerate,
		System:     system,
		Prompt:     prompt,
		Schema:     jobRequirementsSchema,
	})
	if err != nil {
		return nil, &ParseError{Message: "all providers failed", Cause: err}
	}

	cleaned := provider.CleanJSONBlock(inv.Result.Text)
	if err := schemas.ValidateContent("job_requirements", jobRequirementsSchema, cleaned); err != nil {
		return nil, &ParseError{Message: "job requirements failed validation", Cause: err}
	}

	var job types.JobRequirements
	if err := json.Unmarshal([]byte(cleaned), &job); err != nil {
		return nil, &ParseError{Message: "failed to decode job requirements", Cause: err}
	}

	normalizeJob(&job)
	if job.RoleTitle == "" {
		return nil, &ParseError{Message: "posting yielded no role title"}
	}

	return &Ingested{Job: &job, Costs: inv.Costs}, nil
}

// normalizeJob trims and deduplicates skill lists in place.
func normalizeJob(job *types.JobRequirements) {
	job.RoleTitle = strings.TrimSpace(job.RoleTitle)
	job.Company = strings.TrimSpace(job.Company)
	job.RequiredSkills = dedupeSkills(job.RequiredSkills)
	job.PreferredSkills = dedupeSkills(job.PreferredSkills)
}

func dedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		trimmed := strings.TrimSpace(skill)
		key := strings.ToLower(trimmed)
		if trimmed == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	return out
}

func buildParsePrompt(postingText string) (prompt, system string, err error) {
	set, err := prompts.Load(prompts.StageExtraction)
	if err != nil {
		return "", "", err
	}
	system, err = set.System()
	if err != nil {
		return "", "", err
	}
	prompt, err = set.Format("extract-job", map[string]string{"Posting": postingText})
	if err != nil {
		return "", "", err
	}
	return prompt, system, nil
}

// jobRequirementsSchema is inlined rather than embedded: unlike profiles
// and curricula, job parsing tolerates partial output, so the schema only
// pins the shape and the two fields every posting must yield. Output is
// still validated against it before decoding.
const jobRequirementsSchema = `{
  "type": "object",
  "required": ["role_title", "required_skills"],
  "properties": {
    "company": {"type": "string"},
    "role_title": {"type": "string"},
    "description": {"type": "string"},
    "required_skills": {"type": "array", "items": {"type": "string"}},
    "preferred_skills": {"type": "array", "items": {"type": "string"}},
    "experience_band": {
      "type": "object",
      "properties": {
        "min": {"type": "string"},
        "max": {"type": "string"}
      }
    }
  }
}`
