package insights

import (
	"testing"
	"time"

	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

func TestDetermineExperienceLevel(t *testing.T) {
	tests := []struct {
		name      string
		years     float64
		roleCount int
		expected  types.ExperienceLevel
	}{
		{"no experience at all", 0, 0, types.LevelEntry},
		{"zero years but has a role", 0, 1, types.LevelJunior},
		{"one year", 1, 1, types.LevelJunior},
		{"just under two years", 1.9, 1, types.LevelJunior},
		{"two years exactly", 2, 1, types.LevelMid},
		{"just under five years", 4.9, 2, types.LevelMid},
		{"five years exactly", 5.0, 2, types.LevelSenior},
		{"seven years", 7, 3, types.LevelSenior},
		{"eight years exactly", 8, 3, types.LevelLead},
		{"eleven years", 11, 4, types.LevelLead},
		{"twelve years exactly", 12, 4, types.LevelPrincipal},
		{"fourteen years", 14.5, 5, types.LevelPrincipal},
		{"fifteen years exactly", 15, 5, types.LevelExecutive},
		{"thirty years", 30, 8, types.LevelExecutive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineExperienceLevel(tt.years, tt.roleCount)
			if got != tt.expected {
				t.Errorf("DetermineExperienceLevel(%v, %d) = %s, want %s", tt.years, tt.roleCount, got, tt.expected)
			}
		})
	}
}

func TestDetermineExperienceLevel_Monotonic(t *testing.T) {
	previous := types.LevelEntry
	for years := 0.0; years <= 40; years += 0.5 {
		level := DetermineExperienceLevel(years, 1)
		if level.Rank() < previous.Rank() {
			t.Fatalf("level decreased from %s to %s at %.1f years", previous, level, years)
		}
		previous = level
	}
}

func TestAverageTenureYears(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	entries := []types.ExperienceEntry{
		{Company: "A", Role: "Engineer", StartDate: "2020-01", EndDate: "2022-01"},
		{Company: "B", Role: "Senior Engineer", StartDate: "2022-01", EndDate: "2026-01"},
	}
	got := AverageTenureYears(entries, now)
	if got < 2.9 || got > 3.1 {
		t.Errorf("expected roughly 3 years average tenure, got %v", got)
	}
}

func TestAverageTenureYears_CurrentRole(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	entries := []types.ExperienceEntry{
		{Company: "A", Role: "Engineer", StartDate: "2024-01", Current: true},
	}
	got := AverageTenureYears(entries, now)
	if got < 1.9 || got > 2.1 {
		t.Errorf("expected roughly 2 years for a current role started 2024-01, got %v", got)
	}
}

func TestAverageTenureYears_NoParseableDates(t *testing.T) {
	entries := []types.ExperienceEntry{
		{Company: "A", Role: "Engineer"},
		{Company: "B", Role: "Engineer", StartDate: "not-a-date"},
	}
	if got := AverageTenureYears(entries, time.Now()); got != 0 {
		t.Errorf("expected 0 when no entry has a parseable start date, got %v", got)
	}
}

func TestIndustryChanges(t *testing.T) {
	tests := []struct {
		name     string
		entries  []types.ExperienceEntry
		expected int
	}{
		{
			name:     "no entries",
			entries:  nil,
			expected: 0,
		},
		{
			name: "same industry throughout",
			entries: []types.ExperienceEntry{
				{Industry: "Fintech"}, {Industry: "fintech"},
			},
			expected: 0,
		},
		{
			name: "one change",
			entries: []types.ExperienceEntry{
				{Industry: "Fintech"}, {Industry: "Healthcare"},
			},
			expected: 1,
		},
		{
			name: "missing industries ignored",
			entries: []types.ExperienceEntry{
				{Industry: "Fintech"}, {Industry: ""}, {Industry: "Healthcare"},
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IndustryChanges(tt.entries); got != tt.expected {
				t.Errorf("IndustryChanges() = %d, want %d", got, tt.expected)
			}
		})
	}
}
