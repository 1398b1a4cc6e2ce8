package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yvoderooij/preptalk-curriculum/internal/config"
	"github.com/yvoderooij/preptalk-curriculum/internal/ingestion"
	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Ingest a job posting from a text file or URL",
	Long:  "Fetches and parses a job posting into structured requirements. With --save the record is stored under its job_id for later --job-id runs.",
	RunE:  runIngestJob,
}

var (
	ingestFile string
	ingestURL  string
	ingestOut  string
	ingestSave bool
)

func init() {
	ingestJobCmd.Flags().StringVarP(&ingestFile, "text-file", "t", "", "Path to text file containing the job posting")
	ingestJobCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the job posting from")
	ingestJobCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "Output file for the requirements JSON (defaults to stdout)")
	ingestJobCmd.Flags().BoolVar(&ingestSave, "save", false, "Store the parsed job record in the database")

	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if ingestFile == "" && ingestURL == "" {
		return fmt.Errorf("either --text-file or --url must be provided")
	}
	if ingestFile != "" && ingestURL != "" {
		return fmt.Errorf("--text-file and --url are mutually exclusive; provide only one")
	}

	gateway, err := provider.NewGateway(provider.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to build provider gateway: %w", err)
	}
	ingestor := ingestion.NewIngestor(gateway)

	var ingested *ingestion.Ingested
	if ingestFile != "" {
		ingested, err = ingestor.FromFile(ctx, ingestFile)
	} else {
		ingested, err = ingestor.FromURL(ctx, ingestURL)
	}
	if err != nil {
		return err
	}

	if ingestSave {
		if ingested.Job.JobID == "" {
			ingested.Job.JobID = uuid.NewString()
		}
		cfg := config.FromEnv()
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveJob(ctx, ingested.Job); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved job record %s\n", ingested.Job.JobID)
	}

	return writeJSON(ingestOut, ingested.Job)
}
