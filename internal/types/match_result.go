package types

// MatchResult scores a candidate profile against job requirements.
// It is a pure function output with no persisted identity of its own;
// the orchestrator consumes it immediately during synthesis.
type MatchResult struct {
	// OverallMatch is a 0-100 composite of skills coverage and experience fit.
	OverallMatch float64 `json:"overall_match"`
	// SkillsMatch is the non-negative skills coverage score. It can exceed
	// the required-skill fraction when preferred skills add bonus weight.
	SkillsMatch float64 `json:"skills_match"`
	// Gaps lists required skills absent from the candidate, in requirement order.
	Gaps []string `json:"gaps"`
	// Strengths lists matched required/preferred skills plus notably strong
	// candidate skills outside the requirements.
	Strengths []string `json:"strengths"`
}
