package curriculum

import (
	"fmt"
	"strings"

	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

// focusAreas derives the study emphasis passed to the synthesis prompt from
// match gaps, insight-recommended prep, and question topics, deduplicated in
// that priority order. Gaps come first: rounds should drill what the
// candidate is missing before rehearsing what they already know.
func focusAreas(insights *types.ProfileInsights, matchResult *types.MatchResult) []string {
	var areas []string
	seen := make(map[string]bool)

	add := func(items []string) {
		for _, item := range items {
			key := strings.ToLower(strings.TrimSpace(item))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			areas = append(areas, item)
		}
	}

	if matchResult != nil {
		add(matchResult.Gaps)
	}
	if insights != nil {
		add(insights.Readiness.RecommendedPrep)
		add(insights.QuestionTopics)
		add(insights.SkillsAnalysis.Gaps)
	}
	return areas
}

// formatFocusAreas renders focus areas as a prompt fragment, empty when
// there is nothing to emphasize.
func formatFocusAreas(areas []string) string {
	if len(areas) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n\nPrioritize these focus areas when allocating topics and depth:\n")
	for i, area := range areas {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, area))
	}
	return sb.String()
}
