package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yvoderooij/preptalk-curriculum/internal/match"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a candidate profile against job requirements",
	Long:  "Computes skills coverage, gaps, strengths, and experience fit from a profile JSON and a job requirements JSON. Runs entirely offline.",
	RunE:  runMatch,
}

var (
	matchProfile  string
	matchJob      string
	matchInsights string
	matchOut      string
)

func init() {
	matchCmd.Flags().StringVarP(&matchProfile, "profile", "p", "", "Path to the candidate profile JSON (required)")
	matchCmd.Flags().StringVarP(&matchJob, "job", "j", "", "Path to the job requirements JSON (required)")
	matchCmd.Flags().StringVar(&matchInsights, "insights", "", "Path to the profile insights JSON (optional, improves experience fit)")
	matchCmd.Flags().StringVarP(&matchOut, "out", "o", "", "Output file for the match JSON (defaults to stdout)")

	_ = matchCmd.MarkFlagRequired("profile")
	_ = matchCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	profile, err := readProfile(matchProfile)
	if err != nil {
		return err
	}

	jobData, err := os.ReadFile(matchJob)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	var job types.JobRequirements
	if err := json.Unmarshal(jobData, &job); err != nil {
		return fmt.Errorf("failed to parse job JSON: %w", err)
	}

	var profileInsights *types.ProfileInsights
	if matchInsights != "" {
		data, err := os.ReadFile(matchInsights)
		if err != nil {
			return fmt.Errorf("failed to read insights file: %w", err)
		}
		profileInsights = &types.ProfileInsights{}
		if err := json.Unmarshal(data, profileInsights); err != nil {
			return fmt.Errorf("failed to parse insights JSON: %w", err)
		}
	}

	result := match.Compute(profile, profileInsights, &job)
	return writeJSON(matchOut, result)
}
