// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags. Environment variables fill the secrets.
type Config struct {
	// Inputs
	CV     string `json:"cv,omitempty" validate:"omitempty,file"`           // Path to the CV document
	Job    string `json:"job,omitempty" validate:"omitempty,file"`          // Path to a job posting text file
	JobURL string `json:"job_url,omitempty" validate:"omitempty,url"`       // URL to fetch the job posting from
	JobID  string `json:"job_id,omitempty"`                                 // Identifier of a stored job record
	Token  string `json:"token,omitempty"`                                  // Bearer token identifying the user

	// Behavior
	DetailLevel string `json:"detail_level,omitempty" validate:"omitempty,oneof=standard comprehensive"`
	TargetRole  string `json:"target_role,omitempty"` // Role hint for insight generation
	Verbose     bool   `json:"verbose,omitempty"`     // Print detailed progress information
	DryRun      bool   `json:"dry_run,omitempty"`     // Use the in-memory store instead of Postgres

	// Providers overrides the default fallback chain when present.
	Providers *provider.Config `json:"providers,omitempty"`

	// Secrets, normally from the environment
	DatabaseURL string `json:"database_url,omitempty"`
	JWTSecret   string `json:"-"`
}

var validate = validator.New()

func init() {
	// Report violations by JSON field name so messages match the config file.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg.applyEnv()
	return &cfg, nil
}

// FromEnv returns a configuration populated from environment variables only.
func FromEnv() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	return cfg
}

// applyEnv fills unset secrets from the environment.
func (c *Config) applyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.JWTSecret == "" {
		c.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if c.Token == "" {
		c.Token = os.Getenv("PREPTALK_TOKEN")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}
	if c.JobID != "" && (c.Job != "" || c.JobURL != "") {
		return fmt.Errorf("config error: 'job_id' excludes 'job' and 'job_url'")
	}

	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("config error: field %s failed %q validation", first.Field(), first.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Providers != nil {
		if err := c.Providers.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	return nil
}

// ProviderConfig returns the configured fallback chain, or the default.
func (c *Config) ProviderConfig() provider.Config {
	if c.Providers != nil {
		return *c.Providers
	}
	return provider.DefaultConfig()
}

// Merge returns a new Config with empty fields filled from defaults.
// Used to apply config file values as defaults for CLI flags.
func (c *Config) Merge(defaults Config) Config {
	result := *c

	if result.CV == "" {
		result.CV = defaults.CV
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.JobID == "" {
		result.JobID = defaults.JobID
	}
	if result.Token == "" {
		result.Token = defaults.Token
	}
	if result.DetailLevel == "" {
		result.DetailLevel = defaults.DetailLevel
	}
	if result.TargetRole == "" {
		result.TargetRole = defaults.TargetRole
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.Providers == nil {
		result.Providers = defaults.Providers
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	if !result.DryRun {
		result.DryRun = defaults.DryRun
	}

	return result
}
