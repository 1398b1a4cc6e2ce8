package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yvoderooij/preptalk-curriculum/internal/config"
	"github.com/yvoderooij/preptalk-curriculum/internal/ingestion"
	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/store"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

// mimeTypeFor maps a CV file extension to the MIME type sent to OCR
// providers. Unknown extensions are treated as plain text.
func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return "text/plain"
	}
}

// openStore connects to Postgres, or returns the in-memory store for dry runs.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.DryRun {
		return store.NewMemory(), nil
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required (set it in the environment or pass --dry-run)")
	}
	return store.Connect(ctx, cfg.DatabaseURL)
}

// resolveJob turns whichever job source the config carries into requirements.
func resolveJob(ctx context.Context, cfg *config.Config, gateway *provider.Gateway, st store.Store) (*types.JobRequirements, []provider.CostRecord, error) {
	switch {
	case cfg.JobID != "":
		job, err := st.GetJob(ctx, cfg.JobID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load job %s: %w", cfg.JobID, err)
		}
		return job, nil, nil
	case cfg.Job != "":
		ingested, err := ingestion.NewIngestor(gateway).FromFile(ctx, cfg.Job)
		if err != nil {
			return nil, nil, err
		}
		return ingested.Job, ingested.Costs, nil
	case cfg.JobURL != "":
		ingested, err := ingestion.NewIngestor(gateway).FromURL(ctx, cfg.JobURL)
		if err != nil {
			return nil, nil, err
		}
		return ingested.Job, ingested.Costs, nil
	default:
		return nil, nil, fmt.Errorf("one of --job, --job-url, or --job-id is required")
	}
}

// readCV loads the CV document when a path is configured.
func readCV(cfg *config.Config) (data []byte, mimeType string, err error) {
	if cfg.CV == "" {
		return nil, "", nil
	}
	data, err = os.ReadFile(cfg.CV)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read CV file: %w", err)
	}
	return data, mimeTypeFor(cfg.CV), nil
}

// writeJSON pretty-prints v to a file, or to stdout when path is empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
