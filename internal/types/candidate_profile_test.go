package types

import "testing"

func TestSkillSet_All_PreservesOrder(t *testing.T) {
	s := SkillSet{
		Technical: []string{"Go", "PostgreSQL"},
		Soft:      []string{"Communication"},
	}
	all := s.All()
	want := []string{"Go", "PostgreSQL", "Communication"}
	if len(all) != len(want) {
		t.Fatalf("All() returned %d skills, want %d", len(all), len(want))
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, all[i], want[i])
		}
	}
}

func TestSkillSet_Contains(t *testing.T) {
	s := SkillSet{Technical: []string{"Go"}, Soft: []string{"Mentoring"}}

	tests := []struct {
		skill string
		want  bool
	}{
		{"go", true},
		{"GO", true},
		{" mentoring ", true},
		{"Rust", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.skill); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.skill, got, tt.want)
		}
	}
}
