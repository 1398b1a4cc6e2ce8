package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{
		"job_url": "https://example.com/jobs/42",
		"detail_level": "comprehensive",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/jobs/42", cfg.JobURL)
	assert.Equal(t, "comprehensive", cfg.DetailLevel)
	assert.True(t, cfg.Verbose)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "{ not json }")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_MutuallyExclusiveJobSources(t *testing.T) {
	jobFile := writeConfig(t, "posting text")

	cfg := &Config{Job: jobFile, JobURL: "https://example.com/job"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")

	cfg = &Config{JobID: "job-1", JobURL: "https://example.com/job"}
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job_id")
}

func TestValidate_BadDetailLevel(t *testing.T) {
	cfg := &Config{DetailLevel: "extreme"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "detail_level")
}

func TestValidate_MissingCVFile(t *testing.T) {
	cfg := &Config{CV: filepath.Join(t.TempDir(), "missing.pdf")}
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadProviderChain(t *testing.T) {
	cfg := &Config{Providers: &provider.Config{}}
	assert.Error(t, cfg.Validate())
}

func TestProviderConfig_Default(t *testing.T) {
	cfg := &Config{}
	pc := cfg.ProviderConfig()
	assert.NotEmpty(t, pc.Fallback)
}

func TestMerge(t *testing.T) {
	base := Config{JobURL: "https://example.com/a", Verbose: false}
	defaults := Config{JobURL: "https://example.com/b", TargetRole: "Staff Engineer", Verbose: true}

	merged := base.Merge(defaults)
	assert.Equal(t, "https://example.com/a", merged.JobURL, "explicit values win")
	assert.Equal(t, "Staff Engineer", merged.TargetRole, "empty values take defaults")
	assert.True(t, merged.Verbose)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("PREPTALK_TOKEN", "env-token")

	cfg := FromEnv()
	assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "env-token", cfg.Token)
}
