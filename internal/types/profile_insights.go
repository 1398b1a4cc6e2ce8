package types

// ExperienceLevel classifies a candidate's overall seniority
type ExperienceLevel string

// Experience level constants, ordered from least to most senior
const (
	LevelEntry     ExperienceLevel = "entry"
	LevelJunior    ExperienceLevel = "junior"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelLead      ExperienceLevel = "lead"
	LevelPrincipal ExperienceLevel = "principal"
	LevelExecutive ExperienceLevel = "executive"
)

// levelRanks maps each level to its position in the seniority ordering
var levelRanks = map[ExperienceLevel]int{
	LevelEntry:     0,
	LevelJunior:    1,
	LevelMid:       2,
	LevelSenior:    3,
	LevelLead:      4,
	LevelPrincipal: 5,
	LevelExecutive: 6,
}

// IsValid checks whether the string is a known experience level.
func (l ExperienceLevel) IsValid() bool {
	_, ok := levelRanks[l]
	return ok
}

// Rank returns the level's position in the seniority ordering, or -1 when unknown.
func (l ExperienceLevel) Rank() int {
	if r, ok := levelRanks[l]; ok {
		return r
	}
	return -1
}

func (l ExperienceLevel) String() string {
	return string(l)
}

// Trajectory classifies the direction of a candidate's career progression
type Trajectory string

// Trajectory constants
const (
	TrajectoryAscending     Trajectory = "ascending"
	TrajectorySteady        Trajectory = "steady"
	TrajectoryTransitioning Trajectory = "transitioning"
)

// IsValid checks whether the string is a known trajectory.
func (t Trajectory) IsValid() bool {
	switch t {
	case TrajectoryAscending, TrajectorySteady, TrajectoryTransitioning:
		return true
	default:
		return false
	}
}

// SkillDepth classifies the shape of a candidate's skill coverage
type SkillDepth string

// Skill depth constants
const (
	DepthSpecialist SkillDepth = "specialist"
	DepthGeneralist SkillDepth = "generalist"
	DepthTShaped    SkillDepth = "t_shaped"
)

// IsValid checks whether the string is a known skill depth.
func (d SkillDepth) IsValid() bool {
	switch d {
	case DepthSpecialist, DepthGeneralist, DepthTShaped:
		return true
	default:
		return false
	}
}

// ProfileInsights is a derived, read-only view over a CandidateProfile.
// It is always derivable from the profile plus an optional target-role hint
// and is never mutated once produced.
type ProfileInsights struct {
	ExperienceLevel   ExperienceLevel   `json:"experience_level"`
	CareerProgression CareerProgression `json:"career_progression"`
	SkillsAnalysis    SkillsAnalysis    `json:"skills_analysis"`
	Readiness         Readiness         `json:"readiness"`
	QuestionTopics    []string          `json:"question_topics,omitempty"`
}

// CareerProgression holds derived career-path metrics
type CareerProgression struct {
	Linear             bool       `json:"linear"`
	IndustryChanges    int        `json:"industry_changes"`
	AverageTenureYears float64    `json:"average_tenure_years"`
	Trajectory         Trajectory `json:"trajectory"`
}

// SkillsAnalysis holds the derived view of the candidate's skill coverage
type SkillsAnalysis struct {
	PrimaryDomains   []string   `json:"primary_domains,omitempty"`
	SecondaryDomains []string   `json:"secondary_domains,omitempty"`
	Depth            SkillDepth `json:"depth"`
	EmergingSkills   []string   `json:"emerging_skills,omitempty"`
	Gaps             []string   `json:"gaps,omitempty"`
}

// Readiness summarizes how prepared the candidate appears for the target role.
// OverallScore is on a 0-100 scale.
type Readiness struct {
	OverallScore     float64  `json:"overall_score"`
	Strengths        []string `json:"strengths,omitempty"`
	ImprovementAreas []string `json:"improvement_areas,omitempty"`
	RecommendedPrep  []string `json:"recommended_prep,omitempty"`
}
