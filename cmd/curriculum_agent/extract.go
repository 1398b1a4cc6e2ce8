package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yvoderooij/preptalk-curriculum/internal/extraction"
	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
)

var extractCmd = &cobra.Command{
	Use:   "extract-profile",
	Short: "Extract a structured candidate profile from a CV document",
	Long:  "Runs OCR extraction on a CV document and validates the result against the candidate profile schema. Fails rather than emitting a partially valid profile.",
	RunE:  runExtract,
}

var (
	extractCV          string
	extractDetailLevel string
	extractOut         string
)

func init() {
	extractCmd.Flags().StringVar(&extractCV, "cv", "", "Path to the CV document (required)")
	extractCmd.Flags().StringVar(&extractDetailLevel, "detail-level", extraction.DetailStandard, "Extraction detail level: standard or comprehensive")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Output file for the profile JSON (defaults to stdout)")

	_ = extractCmd.MarkFlagRequired("cv")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	data, err := os.ReadFile(extractCV)
	if err != nil {
		return fmt.Errorf("failed to read CV file: %w", err)
	}

	gateway, err := provider.NewGateway(provider.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to build provider gateway: %w", err)
	}

	ext, err := extraction.NewExtractor(gateway).Extract(ctx, data, mimeTypeFor(extractCV), extractDetailLevel)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Extracted profile via %s ($%.4f)\n", ext.Provider, costTotal(ext.Costs))
	return writeJSON(extractOut, ext.Profile)
}

func costTotal(costs []provider.CostRecord) float64 {
	total := 0.0
	for _, c := range costs {
		total += c.Cost
	}
	return total
}
