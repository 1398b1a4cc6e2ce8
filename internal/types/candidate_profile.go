// Package types provides type definitions for structured data used throughout the curriculum generation system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
)

// CandidateProfile represents the validated structured view of one candidate document.
// It is created once by the document extractor and never mutated afterwards.
type CandidateProfile struct {
	PersonalInfo PersonalInfo      `json:"personal_info"`
	Summary      ProfileSummary    `json:"summary"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []EducationEntry  `json:"education"`
	Skills       SkillSet          `json:"skills"`

	// Confidence holds the provider's confidence metadata verbatim.
	// It is carried for downstream display and filtering, never interpreted here.
	Confidence json.RawMessage `json:"confidence,omitempty"`
}

// PersonalInfo holds the candidate's identity and contact fields
type PersonalInfo struct {
	FullName string   `json:"full_name"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	Links    []string `json:"links,omitempty"`
}

// ProfileSummary holds the candidate's headline and experience summary
type ProfileSummary struct {
	Headline          string  `json:"headline,omitempty"`
	TargetRole        string  `json:"target_role,omitempty"`
	YearsOfExperience float64 `json:"years_of_experience"`
}

// ExperienceEntry represents one position in the candidate's work history,
// ordered most recent first as extracted from the document.
type ExperienceEntry struct {
	Company          string   `json:"company"`
	Role             string   `json:"role"`
	Industry         string   `json:"industry,omitempty"`
	StartDate        string   `json:"start_date,omitempty"` // YYYY-MM
	EndDate          string   `json:"end_date,omitempty"`   // YYYY-MM, empty when current
	Current          bool     `json:"current,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// EducationEntry represents one education record
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartYear   int    `json:"start_year,omitempty"`
	EndYear     int    `json:"end_year,omitempty"`
}

// SkillSet splits extracted skills into technical and soft categories
type SkillSet struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// All returns the combined technical and soft skills in declaration order.
func (s SkillSet) All() []string {
	out := make([]string, 0, len(s.Technical)+len(s.Soft))
	out = append(out, s.Technical...)
	out = append(out, s.Soft...)
	return out
}

// Contains reports whether the skill set holds the given skill, case-insensitively.
func (s SkillSet) Contains(skill string) bool {
	needle := strings.ToLower(strings.TrimSpace(skill))
	for _, have := range s.All() {
		if strings.ToLower(strings.TrimSpace(have)) == needle {
			return true
		}
	}
	return false
}

// RoleCount returns the number of experience entries on the profile.
func (p *CandidateProfile) RoleCount() int {
	return len(p.Experience)
}
