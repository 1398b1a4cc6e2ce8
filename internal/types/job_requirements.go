package types

// JobRequirements represents the hiring requirements for a position.
// It is sourced externally (a stored job record or an ingested posting)
// and treated as read-only input by every pipeline stage.
type JobRequirements struct {
	JobID           string         `json:"job_id,omitempty"`
	Company         string         `json:"company,omitempty"`
	RoleTitle       string         `json:"role_title"`
	Description     string         `json:"description,omitempty"`
	RequiredSkills  []string       `json:"required_skills"`
	PreferredSkills []string       `json:"preferred_skills,omitempty"`
	ExperienceBand  ExperienceBand `json:"experience_band"`
}

// ExperienceBand is the inclusive seniority range the position targets
type ExperienceBand struct {
	Min ExperienceLevel `json:"min,omitempty"`
	Max ExperienceLevel `json:"max,omitempty"`
}

// Contains reports whether the level falls inside the band.
// An unset bound is treated as open on that side.
func (b ExperienceBand) Contains(level ExperienceLevel) bool {
	r := level.Rank()
	if r < 0 {
		return false
	}
	if b.Min.IsValid() && r < b.Min.Rank() {
		return false
	}
	if b.Max.IsValid() && r > b.Max.Rank() {
		return false
	}
	return true
}

// Distance returns how many seniority steps the level sits outside the band.
// Levels inside the band return 0.
func (b ExperienceBand) Distance(level ExperienceLevel) int {
	r := level.Rank()
	if r < 0 {
		return 0
	}
	if b.Min.IsValid() && r < b.Min.Rank() {
		return b.Min.Rank() - r
	}
	if b.Max.IsValid() && r > b.Max.Rank() {
		return r - b.Max.Rank()
	}
	return 0
}
