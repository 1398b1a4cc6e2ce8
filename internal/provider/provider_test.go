package provider

import "testing"

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain object untouched",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "fenced json block",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "fence without language tag",
			input:    "```\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "prose around object",
			input:    "Here is the result:\n{\"a\": 1}\nHope that helps!",
			expected: `{"a": 1}`,
		},
		{
			name:     "array payload",
			input:    "```json\n[1, 2, 3]\n```",
			expected: `[1, 2, 3]`,
		},
		{
			name:     "no json at all",
			input:    "sorry, no data",
			expected: "sorry, no data",
		},
		{
			name:     "nested braces kept intact",
			input:    "```json\n{\"a\": {\"b\": 2}}\n```",
			expected: `{"a": {"b": 2}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanJSONBlock(tt.input)
			if got != tt.expected {
				t.Errorf("CleanJSONBlock(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEstimatePages(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		expected float64
	}{
		{"empty document", 0, 1},
		{"small document", 10 * 1024, 1},
		{"exactly one page", 50 * 1024, 1},
		{"two pages", 100 * 1024, 2},
		{"rounds up partial page", 60 * 1024, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimatePages(make([]byte, tt.size))
			if got != tt.expected {
				t.Errorf("estimatePages(%d bytes) = %v, want %v", tt.size, got, tt.expected)
			}
		})
	}
}
