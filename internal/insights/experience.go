package insights

import (
	"strconv"
	"strings"
	"time"

	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

// DetermineExperienceLevel buckets a candidate into a seniority level from
// total years of experience. Buckets are half-open and checked in ascending
// order, so boundary values land in the higher bucket (5.0 years is senior,
// 4.9 is mid). A candidate with zero years and zero roles is entry level.
func DetermineExperienceLevel(years float64, roleCount int) types.ExperienceLevel {
	if years <= 0 && roleCount == 0 {
		return types.LevelEntry
	}
	switch {
	case years < 2:
		return types.LevelJunior
	case years < 5:
		return types.LevelMid
	case years < 8:
		return types.LevelSenior
	case years < 12:
		return types.LevelLead
	case years < 15:
		return types.LevelPrincipal
	default:
		return types.LevelExecutive
	}
}

// AverageTenureYears computes the mean duration of the profile's experience
// entries. Entries without a parseable start date are skipped; a current
// role is measured up to now.
func AverageTenureYears(entries []types.ExperienceEntry, now time.Time) float64 {
	total := 0.0
	counted := 0
	for _, entry := range entries {
		start, ok := parseYearMonth(entry.StartDate)
		if !ok {
			continue
		}
		end := now
		if !entry.Current {
			if parsed, ok := parseYearMonth(entry.EndDate); ok {
				end = parsed
			}
		}
		if end.Before(start) {
			continue
		}
		total += end.Sub(start).Hours() / (24 * 365.25)
		counted++
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}

// IndustryChanges counts transitions between distinct industries across the
// experience entries, in the order they appear. Entries with no industry are
// ignored.
func IndustryChanges(entries []types.ExperienceEntry) int {
	changes := 0
	previous := ""
	for _, entry := range entries {
		industry := strings.ToLower(strings.TrimSpace(entry.Industry))
		if industry == "" {
			continue
		}
		if previous != "" && industry != previous {
			changes++
		}
		previous = industry
	}
	return changes
}

// parseYearMonth accepts "YYYY" or "YYYY-MM" date strings.
func parseYearMonth(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	parts := strings.SplitN(s, "-", 2)
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1900 {
		return time.Time{}, false
	}
	month := time.January
	if len(parts) == 2 {
		m, err := strconv.Atoi(parts[1])
		if err != nil || m < 1 || m > 12 {
			return time.Time{}, false
		}
		month = time.Month(m)
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}
