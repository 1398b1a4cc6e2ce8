// Package match scores candidate profiles against job requirements. The
// computation is pure and total: any profile/insights/job combination yields
// a result without provider calls or I/O.
package match

import (
	"strings"

	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

// Component weights of the overall 0-100 score. Required-skill coverage
// dominates; preferred skills and experience fit refine it.
const (
	requiredWeight   = 60.0
	preferredWeight  = 20.0
	experienceWeight = 20.0
)

// StrongSkillMentions is the number of work-history mentions at which a
// candidate skill outside the job's requirements counts as a strength.
const StrongSkillMentions = 2

// Compute scores the candidate against the job. Profile and insights may be
// nil (a job-only run); missing inputs score zero on the components that
// need them rather than failing.
func Compute(profile *types.CandidateProfile, insights *types.ProfileInsights, job *types.JobRequirements) *types.MatchResult {
	result := &types.MatchResult{
		Gaps:      []string{},
		Strengths: []string{},
	}
	if job == nil {
		return result
	}

	var candidate map[string]bool
	if profile != nil {
		candidate = normalizeSet(profile.Skills.All())
	}

	requiredHits := 0
	for _, skill := range job.RequiredSkills {
		if candidate[normalizeSkill(skill)] {
			requiredHits++
			result.Strengths = append(result.Strengths, skill)
		} else {
			result.Gaps = append(result.Gaps, skill)
		}
	}

	preferredHits := 0
	for _, skill := range job.PreferredSkills {
		if candidate[normalizeSkill(skill)] {
			preferredHits++
			result.Strengths = append(result.Strengths, skill)
		}
	}

	if profile != nil {
		result.Strengths = append(result.Strengths, strongOutsideSkills(profile, job)...)
	}

	// SkillsMatch is required-skill coverage alone. With no required skills
	// there is nothing to measure coverage against, so it stays zero instead
	// of a vacuous 100; preferred matches only ever raise OverallMatch.
	requiredFraction := 0.0
	if len(job.RequiredSkills) > 0 {
		requiredFraction = float64(requiredHits) / float64(len(job.RequiredSkills))
	}
	result.SkillsMatch = requiredFraction * requiredWeight

	preferredFraction := 0.0
	if len(job.PreferredSkills) > 0 {
		preferredFraction = float64(preferredHits) / float64(len(job.PreferredSkills))
	}

	experienceFit := 0.0
	if insights != nil {
		experienceFit = bandFit(job.ExperienceBand, insights.ExperienceLevel)
	}

	result.OverallMatch = clamp(
		result.SkillsMatch+preferredFraction*preferredWeight+experienceFit*experienceWeight, 0, 100)

	return result
}

// strongOutsideSkills returns candidate skills absent from the job's
// requirement lists that the work history mentions at least
// StrongSkillMentions times.
func strongOutsideSkills(profile *types.CandidateProfile, job *types.JobRequirements) []string {
	requirements := normalizeSet(append(append([]string{}, job.RequiredSkills...), job.PreferredSkills...))

	var strong []string
	for _, skill := range profile.Skills.All() {
		if requirements[normalizeSkill(skill)] {
			continue
		}
		if mentionCount(skill, profile.Experience) >= StrongSkillMentions {
			strong = append(strong, skill)
		}
	}
	return strong
}

// mentionCount counts case-insensitive occurrences of the skill across the
// profile's responsibility lines.
func mentionCount(skill string, entries []types.ExperienceEntry) int {
	needle := strings.ToLower(strings.TrimSpace(skill))
	if needle == "" {
		return 0
	}
	count := 0
	for _, entry := range entries {
		for _, line := range entry.Responsibilities {
			if strings.Contains(strings.ToLower(line), needle) {
				count++
			}
		}
	}
	return count
}

// bandFit scores experience-band proximity: 1.0 inside the band, 0.5 one
// seniority step outside, 0 beyond that.
func bandFit(band types.ExperienceBand, level types.ExperienceLevel) float64 {
	if !level.IsValid() {
		return 0
	}
	switch band.Distance(level) {
	case 0:
		return 1.0
	case 1:
		return 0.5
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
