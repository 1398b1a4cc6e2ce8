package match

import "strings"

// skillAliases maps common skill name variants to a canonical form so that
// "Golang" on a CV matches a "Go" requirement. All keys and values are
// lowercase.
var skillAliases = map[string]string{
	"golang":                "go",
	"js":                    "javascript",
	"ts":                    "typescript",
	"postgres":              "postgresql",
	"k8s":                   "kubernetes",
	"gcp":                   "google cloud",
	"google cloud platform": "google cloud",
	"amazon web services":   "aws",
	"ml":                    "machine learning",
	"react.js":              "react",
	"reactjs":               "react",
	"node":                  "node.js",
	"nodejs":                "node.js",
	"ci/cd":                 "continuous integration",
	"tf":                    "terraform",
}

// normalizeSkill lowercases, trims and canonicalizes a skill name.
func normalizeSkill(skill string) string {
	s := strings.ToLower(strings.TrimSpace(skill))
	if canonical, ok := skillAliases[s]; ok {
		return canonical
	}
	return s
}

// normalizeSet builds a lookup set of canonical skill names.
func normalizeSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		if normalized := normalizeSkill(s); normalized != "" {
			set[normalized] = true
		}
	}
	return set
}
