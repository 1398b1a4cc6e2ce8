// Package schemas ships the JSON Schema definitions for every structured
// artifact the pipeline exchanges with LLM/OCR providers. The schemas are
// embedded so validation works regardless of working directory.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Well-known schema names
const (
	CandidateProfile = "candidate_profile"
	ProfileInsights  = "profile_insights"
	Curriculum       = "curriculum"
)

// Get returns the raw schema content for a schema name (without the
// .schema.json suffix).
func Get(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return "", fmt.Errorf("schema %q not found: %w", name, err)
	}
	return string(data), nil
}

// MustGet returns the schema content, panicking if the schema does not exist.
// Use for schemas referenced at initialization time.
func MustGet(name string) string {
	content, err := Get(name)
	if err != nil {
		panic(err)
	}
	return content
}

// Names lists the embedded schema names.
func Names() []string {
	entries, err := schemaFiles.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		names = append(names, name[:len(name)-len(".schema.json")])
	}
	return names
}
