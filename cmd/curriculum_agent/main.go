// Package main provides the entry point for the PrepTalk curriculum agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "curriculum_agent",
	Short: "PrepTalk curriculum generation agent",
	Long:  "Generates personalized, multi-round interview preparation curricula from a job posting and an optional candidate CV, with fallback across model providers.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
