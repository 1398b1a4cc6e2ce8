package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.CandidateProfile{}
	profile.PersonalInfo.FullName = "Ada Lovelace"
	profile.Summary.Headline = "Backend engineer"
	profile.Summary.YearsOfExperience = 6.5
	profile.Experience = []types.ExperienceEntry{
		{Company: "Analytical Engines Ltd", Role: "Senior Engineer"},
	}
	profile.Skills.Technical = []string{"Go", "PostgreSQL"}

	p.PrintProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED PROFILE")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "6.5 years")
	assert.Contains(t, output, "Senior Engineer @ Analytical Eng")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintInsights(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	insights := &types.ProfileInsights{
		ExperienceLevel: types.LevelSenior,
		CareerProgression: types.CareerProgression{
			Trajectory: types.TrajectoryAscending,
		},
		SkillsAnalysis: types.SkillsAnalysis{Depth: types.DepthTShaped},
		Readiness: types.Readiness{
			OverallScore:     72,
			ImprovementAreas: []string{"distributed systems"},
		},
	}

	p.PrintInsights(insights)
	output := buf.String()

	assert.Contains(t, output, "PROFILE INSIGHTS")
	assert.Contains(t, output, "senior")
	assert.Contains(t, output, "ascending")
	assert.Contains(t, output, "72/100")
	assert.Contains(t, output, "distributed systems")
}

func TestPrintMatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatch(&types.MatchResult{
		OverallMatch: 65,
		SkillsMatch:  48,
		Strengths:    []string{"Go"},
		Gaps:         []string{"Kubernetes"},
	})
	output := buf.String()

	assert.Contains(t, output, "MATCH ANALYSIS")
	assert.Contains(t, output, "65/100")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Kubernetes")
}

func TestPrintCurriculum(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCurriculum(&types.Curriculum{
		Title:       "Backend Prep",
		TotalRounds: 1,
		Rounds: []types.CurriculumRound{
			{
				RoundNumber:     1,
				Type:            types.RoundTechnical,
				DurationMinutes: 60,
				PassingScore:    70,
				Persona:         types.InterviewerPersona{Name: "Lee Park", Role: "Senior Engineer"},
			},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "CURRICULUM")
	assert.Contains(t, output, "Backend Prep")
	assert.Contains(t, output, "technical")
	assert.Contains(t, output, "Lee Park")
}

func TestPrintCosts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCosts([]provider.CostRecord{
		{Provider: provider.IDGemini, Capability: provider.CapabilityOCRExtract, Units: 2, Cost: 0.02},
		{Provider: provider.IDOpenAI, Capability: provider.CapabilityTextGenerate, Units: 1, Cost: 0.002},
	})
	output := buf.String()

	assert.Contains(t, output, "PROVIDER COSTS")
	assert.Contains(t, output, "gemini")
	assert.Contains(t, output, "$0.0220")
}

func TestPrintCosts_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCosts(nil)
	assert.Empty(t, buf.String())
}
