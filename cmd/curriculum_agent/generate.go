package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yvoderooij/preptalk-curriculum/internal/config"
	"github.com/yvoderooij/preptalk-curriculum/internal/credits"
	"github.com/yvoderooij/preptalk-curriculum/internal/pipeline"
	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a curriculum from a job posting and an optional CV",
	Long: `Runs the full generation pipeline: job ingestion -> profile extraction -> insight analysis and match scoring -> curriculum synthesis -> persistence.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerate,
}

var (
	genConfigPath  string
	genCV          string
	genJob         string
	genJobURL      string
	genJobID       string
	genToken       string
	genDetailLevel string
	genTargetRole  string
	genVerbose     bool
	genDryRun      bool
	genDatabaseURL string
)

func init() {
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCmd.Flags().StringVar(&genCV, "cv", "", "Path to the candidate CV document (optional)")
	generateCmd.Flags().StringVarP(&genJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url and --job-id)")
	generateCmd.Flags().StringVar(&genJobURL, "job-url", "", "URL to fetch the job posting from")
	generateCmd.Flags().StringVar(&genJobID, "job-id", "", "Identifier of a stored job record")
	generateCmd.Flags().StringVar(&genToken, "token", "", "Bearer token identifying the user (defaults to PREPTALK_TOKEN env var)")
	generateCmd.Flags().StringVar(&genDetailLevel, "detail-level", "", "Extraction detail level: standard or comprehensive")
	generateCmd.Flags().StringVar(&genTargetRole, "target-role", "", "Role hint for insight generation")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed progress information")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Use the in-memory store instead of Postgres")
	generateCmd.Flags().StringVar(&genDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadGenerateConfig(cmd)
	if err != nil {
		return err
	}

	gateway, err := provider.NewGateway(cfg.ProviderConfig())
	if err != nil {
		return fmt.Errorf("failed to build provider gateway: %w", err)
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	creditSvc := credits.NewService(cfg.JWTSecret, st)
	userID, err := creditSvc.ResolveUser(cfg.Token)
	if err != nil {
		return err
	}
	if mem, ok := st.(*store.Memory); ok {
		// Dry runs have no seeded users; grant the one credit the run needs.
		mem.SetCredits(userID, 1)
	}

	job, ingestCosts, err := resolveJob(ctx, cfg, gateway, st)
	if err != nil {
		return err
	}

	cvData, cvMime, err := readCV(cfg)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(gateway, creditSvc, st)
	result, err := runner.Run(ctx, pipeline.RunOptions{
		UserID:      userID,
		Job:         job,
		CVDocument:  cvData,
		CVMimeType:  cvMime,
		DetailLevel: cfg.DetailLevel,
		TargetRole:  cfg.TargetRole,
		Verbose:     cfg.Verbose,
	})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
	total := 0.0
	for _, c := range append(ingestCosts, result.Costs...) {
		total += c.Cost
	}
	fmt.Printf("Curriculum %s generated (%d rounds, $%.4f in provider costs).\n",
		result.Curriculum.ID, result.Curriculum.TotalRounds, total)
	return nil
}

func loadGenerateConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg config.Config
	if genConfigPath != "" {
		loaded, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	} else {
		cfg = *config.FromEnv()
	}

	// CLI flags override config file values when explicitly set.
	if cmd.Flags().Changed("cv") {
		cfg.CV = genCV
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = genJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = genJobURL
	}
	if cmd.Flags().Changed("job-id") {
		cfg.JobID = genJobID
	}
	if cmd.Flags().Changed("token") {
		cfg.Token = genToken
	}
	if cmd.Flags().Changed("detail-level") {
		cfg.DetailLevel = genDetailLevel
	}
	if cmd.Flags().Changed("target-role") {
		cfg.TargetRole = genTargetRole
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = genVerbose
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = genDryRun
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = genDatabaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Job == "" && cfg.JobURL == "" && cfg.JobID == "" {
		return nil, fmt.Errorf("one of --job, --job-url, or --job-id is required (via flag or config)")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("a user token is required (--token flag or PREPTALK_TOKEN env var)")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return &cfg, nil
}
