package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yvoderooij/preptalk-curriculum/internal/insights"
	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze-profile",
	Short: "Derive insights from an extracted candidate profile",
	Long:  "Derives experience level, career progression, and readiness insights from a candidate profile JSON file produced by the extract command.",
	RunE:  runAnalyze,
}

var (
	analyzeProfile    string
	analyzeTargetRole string
	analyzeOut        string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeProfile, "profile", "p", "", "Path to the candidate profile JSON (required)")
	analyzeCmd.Flags().StringVar(&analyzeTargetRole, "target-role", "", "Role hint for the analysis")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Output file for the insights JSON (defaults to stdout)")

	_ = analyzeCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	profile, err := readProfile(analyzeProfile)
	if err != nil {
		return err
	}

	gateway, err := provider.NewGateway(provider.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to build provider gateway: %w", err)
	}

	analysis, err := insights.NewGenerator(gateway).Analyze(ctx, profile, analyzeTargetRole)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Analyzed profile via %s ($%.4f)\n", analysis.Provider, costTotal(analysis.Costs))
	return writeJSON(analyzeOut, analysis.Insights)
}

func readProfile(path string) (*types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	var profile types.CandidateProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return &profile, nil
}
