package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RoundType classifies one interview stage within a curriculum
type RoundType string

// Round type constants
const (
	RoundRecruiterScreen RoundType = "recruiter_screen"
	RoundHiringManager   RoundType = "hiring_manager"
	RoundTechnical       RoundType = "technical"
	RoundSystemDesign    RoundType = "system_design"
	RoundBehavioral      RoundType = "behavioral"
	RoundOnsite          RoundType = "onsite"
)

// IsValid checks whether the string is a known round type.
func (r RoundType) IsValid() bool {
	switch r {
	case RoundRecruiterScreen, RoundHiringManager, RoundTechnical,
		RoundSystemDesign, RoundBehavioral, RoundOnsite:
		return true
	default:
		return false
	}
}

func (r RoundType) String() string {
	return string(r)
}

// TopicDepth indicates how deeply a round should cover a topic
type TopicDepth string

// Topic depth constants
const (
	TopicSurface  TopicDepth = "surface"
	TopicModerate TopicDepth = "moderate"
	TopicDeep     TopicDepth = "deep"
)

// Curriculum is a personalized, multi-round interview preparation plan.
// It is created once per generation request; regeneration produces a new
// Curriculum with a new identity rather than mutating rounds in place.
type Curriculum struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	JobID       string            `json:"job_id,omitempty"`
	Title       string            `json:"title"`
	Overview    string            `json:"overview"`
	TotalRounds int               `json:"total_rounds"`
	Rounds      []CurriculumRound `json:"rounds"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CurriculumRound is one discrete interview stage with its own persona,
// topics, scripts, and evaluation criteria.
type CurriculumRound struct {
	RoundNumber        int                `json:"round_number"`
	Type               RoundType          `json:"type"`
	DurationMinutes    int                `json:"duration_minutes"`
	Persona            InterviewerPersona `json:"persona"`
	Topics             []RoundTopic       `json:"topics"`
	EvaluationCriteria []string           `json:"evaluation_criteria,omitempty"`
	OpeningScript      string             `json:"opening_script,omitempty"`
	ClosingScript      string             `json:"closing_script,omitempty"`
	PassingScore       int                `json:"passing_score"` // 0-100
	PrepGuide          []string           `json:"prep_guide,omitempty"`
}

// InterviewerPersona describes the simulated interviewer for a round
type InterviewerPersona struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Style      string `json:"style,omitempty"`
	Background string `json:"background,omitempty"`
}

// RoundTopic is one topic a round covers, with its depth and time budget
type RoundTopic struct {
	Name                  string     `json:"name"`
	Depth                 TopicDepth `json:"depth"`
	TimeAllocationMinutes int        `json:"time_allocation_minutes"`
	QuestionCount         int        `json:"question_count"`
}

// Validate enforces the curriculum's structural invariants: round numbers
// form a dense 1..N sequence matching array order, TotalRounds equals the
// round count, and every round carries a known type.
func (c *Curriculum) Validate() error {
	if len(c.Rounds) == 0 {
		return fmt.Errorf("curriculum must have at least one round")
	}
	if c.TotalRounds != len(c.Rounds) {
		return fmt.Errorf("total_rounds %d does not match round count %d", c.TotalRounds, len(c.Rounds))
	}
	for i, round := range c.Rounds {
		if round.RoundNumber != i+1 {
			return fmt.Errorf("round at index %d has round_number %d, want %d", i, round.RoundNumber, i+1)
		}
		if !round.Type.IsValid() {
			return fmt.Errorf("round %d has unknown type %q", round.RoundNumber, round.Type)
		}
		if round.PassingScore < 0 || round.PassingScore > 100 {
			return fmt.Errorf("round %d passing_score %d out of range [0,100]", round.RoundNumber, round.PassingScore)
		}
	}
	return nil
}
