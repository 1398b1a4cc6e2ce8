package types

import "testing"

func TestExperienceLevel_Rank_Ordering(t *testing.T) {
	ordered := []ExperienceLevel{
		LevelEntry, LevelJunior, LevelMid, LevelSenior,
		LevelLead, LevelPrincipal, LevelExecutive,
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("expected %s to rank below %s", ordered[i-1], ordered[i])
		}
	}
}

func TestExperienceLevel_IsValid(t *testing.T) {
	tests := []struct {
		level ExperienceLevel
		valid bool
	}{
		{LevelEntry, true},
		{LevelExecutive, true},
		{ExperienceLevel("staff"), false},
		{ExperienceLevel(""), false},
	}
	for _, tt := range tests {
		if got := tt.level.IsValid(); got != tt.valid {
			t.Errorf("IsValid(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}

func TestExperienceLevel_Rank_Unknown(t *testing.T) {
	if got := ExperienceLevel("staff").Rank(); got != -1 {
		t.Errorf("Rank() = %d, want -1 for unknown level", got)
	}
}

func TestTrajectory_IsValid(t *testing.T) {
	if !TrajectoryAscending.IsValid() {
		t.Error("ascending should be valid")
	}
	if Trajectory("sideways").IsValid() {
		t.Error("sideways should not be valid")
	}
}
