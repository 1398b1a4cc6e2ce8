package types

import (
	"testing"

	"github.com/google/uuid"
)

func validRound(n int) CurriculumRound {
	return CurriculumRound{
		RoundNumber:     n,
		Type:            RoundTechnical,
		DurationMinutes: 60,
		Persona:         InterviewerPersona{Name: "Sam", Role: "Senior Engineer"},
		Topics:          []RoundTopic{{Name: "algorithms", Depth: TopicModerate, TimeAllocationMinutes: 30, QuestionCount: 3}},
		PassingScore:    70,
	}
}

func TestCurriculum_Validate(t *testing.T) {
	c := &Curriculum{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Title:       "Backend Engineer at Acme",
		TotalRounds: 2,
		Rounds:      []CurriculumRound{validRound(1), validRound(2)},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestCurriculum_Validate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Curriculum)
	}{
		{"no rounds", func(c *Curriculum) { c.Rounds = nil; c.TotalRounds = 0 }},
		{"total mismatch", func(c *Curriculum) { c.TotalRounds = 3 }},
		{"sparse numbering", func(c *Curriculum) { c.Rounds[1].RoundNumber = 5 }},
		{"unknown type", func(c *Curriculum) { c.Rounds[0].Type = "pair_programming" }},
		{"passing score out of range", func(c *Curriculum) { c.Rounds[0].PassingScore = 140 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Curriculum{
				TotalRounds: 2,
				Rounds:      []CurriculumRound{validRound(1), validRound(2)},
			}
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestRoundType_IsValid(t *testing.T) {
	for _, rt := range []RoundType{RoundRecruiterScreen, RoundHiringManager, RoundTechnical, RoundSystemDesign, RoundBehavioral, RoundOnsite} {
		if !rt.IsValid() {
			t.Errorf("%s should be valid", rt)
		}
	}
	if RoundType("coffee_chat").IsValid() {
		t.Error("coffee_chat should not be valid")
	}
}
