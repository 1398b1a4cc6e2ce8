package curriculum

import "github.com/yvoderooij/preptalk-curriculum/internal/types"

// defaultPersonas supplies an interviewer when the provider leaves a round's
// persona underspecified. Names are deliberately generic stand-ins.
var defaultPersonas = map[types.RoundType]types.InterviewerPersona{
	types.RoundRecruiterScreen: {
		Name:  "Taylor Brooks",
		Role:  "Technical Recruiter",
		Style: "warm and structured",
	},
	types.RoundHiringManager: {
		Name:  "Morgan Reyes",
		Role:  "Engineering Manager",
		Style: "direct, outcome-focused",
	},
	types.RoundTechnical: {
		Name:  "Jordan Kim",
		Role:  "Senior Engineer",
		Style: "collaborative problem solving",
	},
	types.RoundSystemDesign: {
		Name:  "Alex Novak",
		Role:  "Staff Engineer",
		Style: "probing on trade-offs",
	},
	types.RoundBehavioral: {
		Name:  "Casey Tran",
		Role:  "Engineering Manager",
		Style: "situational, follows up on specifics",
	},
	types.RoundOnsite: {
		Name:  "Riley Adeyemi",
		Role:  "Panel Lead",
		Style: "mixed technical and behavioral",
	},
}

// fillPersona completes a round's persona with defaults for its type.
// Provider-supplied fields win; only blanks are filled.
func fillPersona(round *types.CurriculumRound) {
	fallback, ok := defaultPersonas[round.Type]
	if !ok {
		fallback = types.InterviewerPersona{Name: "Sam Whitfield", Role: "Interviewer"}
	}
	if round.Persona.Name == "" {
		round.Persona.Name = fallback.Name
	}
	if round.Persona.Role == "" {
		round.Persona.Role = fallback.Role
	}
	if round.Persona.Style == "" {
		round.Persona.Style = fallback.Style
	}
}
