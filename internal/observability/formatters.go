// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the extracted profile.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:       %s\n", profile.PersonalInfo.FullName))
	if profile.Summary.Headline != "" {
		sb.WriteString(fmt.Sprintf("Headline:   %s\n", profile.Summary.Headline))
	}
	sb.WriteString(fmt.Sprintf("Experience: %.1f years, %d roles\n", profile.Summary.YearsOfExperience, profile.RoleCount()))

	if len(profile.Experience) > 0 {
		sb.WriteString("\nRecent roles:\n")
		count := min(len(profile.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			entry := profile.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s @ %s\n", entry.Role, entry.Company))
		}
		if len(profile.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Experience)-maxItemsToShow))
		}
	}

	if len(profile.Skills.Technical) > 0 {
		skills := strings.Join(profile.Skills.Technical, ", ")
		if len(skills) > 45 {
			skills = skills[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nSkills: %s\n", skills))
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInsights outputs a summary of the derived insights.
func (p *Printer) PrintInsights(insights *types.ProfileInsights) {
	if insights == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Level:      %s\n", insights.ExperienceLevel))
	sb.WriteString(fmt.Sprintf("Trajectory: %s\n", insights.CareerProgression.Trajectory))
	sb.WriteString(fmt.Sprintf("Depth:      %s\n", insights.SkillsAnalysis.Depth))
	sb.WriteString(fmt.Sprintf("Readiness:  %.0f/100\n", insights.Readiness.OverallScore))

	if len(insights.Readiness.ImprovementAreas) > 0 {
		sb.WriteString("\nImprovement areas:\n")
		count := min(len(insights.Readiness.ImprovementAreas), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", insights.Readiness.ImprovementAreas[i]))
		}
	}

	p.printBox("PROFILE INSIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs a summary of the match computation.
func (p *Printer) PrintMatch(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall: %.0f/100  Skills: %.0f\n", result.OverallMatch, result.SkillsMatch))

	if len(result.Strengths) > 0 {
		strengths := strings.Join(result.Strengths, ", ")
		if len(strengths) > 45 {
			strengths = strengths[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Strengths: %s\n", strengths))
	}
	if len(result.Gaps) > 0 {
		gaps := strings.Join(result.Gaps, ", ")
		if len(gaps) > 45 {
			gaps = gaps[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Gaps: %s\n", gaps))
	}

	p.printBox("MATCH ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCurriculum outputs the round structure of a synthesized curriculum.
func (p *Printer) PrintCurriculum(c *types.Curriculum) {
	if c == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:  %s\n", c.Title))
	sb.WriteString(fmt.Sprintf("Rounds: %d\n\n", c.TotalRounds))

	for _, round := range c.Rounds {
		sb.WriteString(fmt.Sprintf("%d. %s (%d min, pass %d)\n",
			round.RoundNumber, round.Type, round.DurationMinutes, round.PassingScore))
		sb.WriteString(fmt.Sprintf("   Interviewer: %s, %s\n", round.Persona.Name, round.Persona.Role))
	}

	p.printBox("CURRICULUM", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCosts outputs the provider cost records of a run.
func (p *Printer) PrintCosts(costs []provider.CostRecord) {
	if len(costs) == 0 {
		return
	}

	var sb strings.Builder
	total := 0.0
	for _, c := range costs {
		sb.WriteString(fmt.Sprintf("%-12s %-14s %6.1f units  $%.4f\n", c.Provider, c.Capability, c.Units, c.Cost))
		total += c.Cost
	}
	sb.WriteString(fmt.Sprintf("\nTotal: $%.4f", total))

	p.printBox("PROVIDER COSTS", sb.String())
}
