// Package prompts holds the pipeline's LLM prompt templates, one embedded
// JSON file per stage. Each file maps prompt keys to template text, and
// every stage carries a "system" key with its system instruction.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var stageFiles embed.FS

// Stage names, matching the embedded file names.
const (
	StageExtraction = "extraction"
	StageInsights   = "insights"
	StageCurriculum = "curriculum"
)

// SystemKey names the system instruction present in every stage file.
const SystemKey = "system"

// placeholderPattern matches {{.Name}} substitution points in templates.
var placeholderPattern = regexp.MustCompile(`\{\{\.([A-Za-z]+)\}\}`)

// Set is one stage's parsed prompt templates.
type Set struct {
	stage   string
	entries map[string]string
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*Set)
)

// Load returns the stage's prompt set, parsing the embedded file on first
// use.
func Load(stage string) (*Set, error) {
	cacheMu.RLock()
	if set, ok := cache[stage]; ok {
		cacheMu.RUnlock()
		return set, nil
	}
	cacheMu.RUnlock()

	data, err := stageFiles.ReadFile(stage + ".json")
	if err != nil {
		return nil, fmt.Errorf("no prompt file for stage %q: %w", stage, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse prompts for stage %q: %w", stage, err)
	}
	if _, ok := entries[SystemKey]; !ok {
		return nil, fmt.Errorf("stage %q prompts are missing the %q key", stage, SystemKey)
	}

	set := &Set{stage: stage, entries: entries}
	cacheMu.Lock()
	cache[stage] = set
	cacheMu.Unlock()
	return set, nil
}

// Get returns the raw template for a key.
func (s *Set) Get(key string) (string, error) {
	template, ok := s.entries[key]
	if !ok {
		return "", fmt.Errorf("prompt %s/%s not found", s.stage, key)
	}
	return template, nil
}

// System returns the stage's system instruction.
func (s *Set) System() (string, error) {
	return s.Get(SystemKey)
}

// Format renders the template for a key, substituting every {{.Name}}
// placeholder from data. A placeholder without a value is an error so that
// half-rendered prompts never reach a provider.
func (s *Set) Format(key string, data map[string]string) (string, error) {
	template, err := s.Get(key)
	if err != nil {
		return "", err
	}

	result := template
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		value, ok := data[m[1]]
		if !ok {
			return "", fmt.Errorf("prompt %s/%s: no value for placeholder %s", s.stage, key, m[0])
		}
		result = strings.ReplaceAll(result, m[0], value)
	}
	return result, nil
}

// Keys returns the set's prompt keys, sorted.
func (s *Set) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ClearCache drops all parsed sets. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]*Set)
	cacheMu.Unlock()
}
