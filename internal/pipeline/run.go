// Package pipeline orchestrates a curriculum generation run from raw inputs
// to a persisted curriculum.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yvoderooij/preptalk-curriculum/internal/credits"
	"github.com/yvoderooij/preptalk-curriculum/internal/curriculum"
	"github.com/yvoderooij/preptalk-curriculum/internal/extraction"
	"github.com/yvoderooij/preptalk-curriculum/internal/insights"
	"github.com/yvoderooij/preptalk-curriculum/internal/match"
	"github.com/yvoderooij/preptalk-curriculum/internal/observability"
	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/store"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

// Run states, in the order a successful run passes through them. The run
// record linearizes the parallel analysis stage as insighting then matching.
const (
	StateInit         = "init"
	StateExtracting   = "extracting"
	StateExtracted    = "extracted"
	StateInsighting   = "insighting"
	StateMatching     = "matching"
	StateSynthesizing = "synthesizing"
	StatePersisted    = "persisted"
	StateFailed       = "failed"
)

// Artifact names under which stage outputs are saved
const (
	ArtifactProfile    = "candidate_profile"
	ArtifactInsights   = "profile_insights"
	ArtifactMatch      = "match_result"
	ArtifactCurriculum = "curriculum"
)

// ProgressEvent reports one pipeline milestone to the caller.
type ProgressEvent struct {
	Stage   string
	Message string
	RunID   uuid.UUID
	Content any
}

// ProgressCallback receives progress events as the run advances.
type ProgressCallback func(event ProgressEvent)

// RunOptions carries the inputs for one generation run.
type RunOptions struct {
	UserID uuid.UUID
	Job    *types.JobRequirements

	// CVDocument is optional. When absent the candidate stages are skipped
	// and synthesis produces a generic, job-only curriculum.
	CVDocument []byte
	CVMimeType string

	DetailLevel string
	TargetRole  string

	Verbose    bool
	Out        io.Writer
	OnProgress ProgressCallback
}

// Result bundles everything a completed run produced.
type Result struct {
	RunID      uuid.UUID
	Curriculum *types.Curriculum
	Profile    *types.CandidateProfile
	Insights   *types.ProfileInsights
	Match      *types.MatchResult
	Costs      []provider.CostRecord
	Warnings   []string
}

// Narrow views of the stage services, taken so runs can be driven against
// fakes in tests.
type extractor interface {
	Extract(ctx context.Context, document []byte, mimeType, detailLevel string) (*extraction.Extraction, error)
}

type analyzer interface {
	Analyze(ctx context.Context, profile *types.CandidateProfile, targetRoleHint string) (*insights.Analysis, error)
}

type synthesizer interface {
	Synthesize(ctx context.Context, in curriculum.Input) (*curriculum.Synthesis, error)
}

type debitor interface {
	Debit(ctx context.Context, userID uuid.UUID) error
}

// Runner wires the stage services to a store and executes runs.
type Runner struct {
	extractor extractor
	analyzer  analyzer
	synth     synthesizer
	credits   debitor
	store     store.Store
}

// NewRunner builds a runner whose stages all invoke providers through the
// given gateway.
func NewRunner(gateway *provider.Gateway, creditSvc *credits.Service, st store.Store) *Runner {
	return &Runner{
		extractor: extraction.NewExtractor(gateway),
		analyzer:  insights.NewGenerator(gateway),
		synth:     curriculum.NewSynthesizer(gateway),
		credits:   creditSvc,
		store:     st,
	}
}

// Run executes one generation run. Exactly one credit is debited up front
// and is not refunded if the run fails afterwards. Extraction, synthesis,
// and curriculum persistence failures are fatal; a failed insight analysis
// degrades to a job-grounded curriculum and is reported as a warning.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Job == nil {
		return nil, fmt.Errorf("job requirements are required")
	}
	if opts.UserID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	printer := observability.NewPrinter(out)
	result := &Result{}

	fmt.Fprintf(out, "Step 1/6: Debiting generation credit...\n")
	if err := r.credits.Debit(ctx, opts.UserID); err != nil {
		return nil, &StageError{Stage: StageAuthorize, Cause: err}
	}

	runID, err := r.store.CreateRun(ctx, opts.UserID, opts.Job.JobID, StateInit)
	if err != nil {
		return nil, &StageError{Stage: StagePersistence, Cause: err}
	}
	result.RunID = runID
	emitProgress(&opts, StageAuthorize, "Credit debited, run created", runID, nil)

	if len(opts.CVDocument) > 0 {
		fmt.Fprintf(out, "Step 2/6: Extracting candidate profile...\n")
		_ = r.store.UpdateRunState(ctx, runID, StateExtracting)

		ext, err := r.extractor.Extract(ctx, opts.CVDocument, opts.CVMimeType, opts.DetailLevel)
		if err != nil {
			_ = r.store.CompleteRun(ctx, runID, StateFailed)
			return nil, &StageError{Stage: StageExtraction, Cause: err}
		}
		result.Profile = ext.Profile
		result.Costs = append(result.Costs, ext.Costs...)
		_ = r.store.SaveArtifact(ctx, runID, ArtifactProfile, ext.Profile)
		_ = r.store.UpdateRunState(ctx, runID, StateExtracted)
		emitProgress(&opts, StageExtraction, "Candidate profile extracted", runID, ext.Profile)
		if opts.Verbose {
			printer.PrintProfile(ext.Profile)
		}
	} else {
		fmt.Fprintf(out, "Step 2/6: No CV provided, generating job-only curriculum...\n")
	}

	if result.Profile != nil {
		fmt.Fprintf(out, "Step 3/6: Analyzing profile and computing match...\n")
		_ = r.store.UpdateRunState(ctx, runID, StateInsighting)

		var mu sync.Mutex
		g, gCtx := errgroup.WithContext(ctx)

		g.Go(func() error {
			fmt.Fprintf(out, "%sGenerating profile insights...\n", prefixInsights)
			analysis, err := r.analyzer.Analyze(gCtx, result.Profile, opts.TargetRole)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("insight generation failed, continuing without insights: %v", err))
				return nil
			}
			result.Insights = analysis.Insights
			result.Costs = append(result.Costs, analysis.Costs...)
			return nil
		})

		g.Go(func() error {
			fmt.Fprintf(out, "%sScoring candidate against requirements...\n", prefixMatch)
			// Band fit uses the deterministically bucketed level so matching
			// does not wait on the analysis call.
			level := insights.DetermineExperienceLevel(
				result.Profile.Summary.YearsOfExperience, result.Profile.RoleCount())
			m := match.Compute(result.Profile, &types.ProfileInsights{ExperienceLevel: level}, opts.Job)
			mu.Lock()
			result.Match = m
			mu.Unlock()
			return nil
		})

		_ = g.Wait()
		_ = r.store.UpdateRunState(ctx, runID, StateMatching)

		if result.Insights != nil {
			_ = r.store.SaveArtifact(ctx, runID, ArtifactInsights, result.Insights)
			emitProgress(&opts, StageInsights, "Profile insights generated", runID, result.Insights)
			if opts.Verbose {
				printer.PrintInsights(result.Insights)
			}
		}
		if result.Match != nil {
			_ = r.store.SaveArtifact(ctx, runID, ArtifactMatch, result.Match)
			emitProgress(&opts, StageMatching, "Match computed", runID, result.Match)
			if opts.Verbose {
				printer.PrintMatch(result.Match)
			}
		}
	}

	fmt.Fprintf(out, "Step 4/6: Synthesizing curriculum...\n")
	_ = r.store.UpdateRunState(ctx, runID, StateSynthesizing)
	syn, err := r.synth.Synthesize(ctx, curriculum.Input{
		Job:      opts.Job,
		Profile:  result.Profile,
		Insights: result.Insights,
		Match:    result.Match,
	})
	if err != nil {
		_ = r.store.CompleteRun(ctx, runID, StateFailed)
		return nil, &StageError{Stage: StageSynthesis, Cause: err}
	}
	syn.Curriculum.UserID = opts.UserID
	result.Curriculum = syn.Curriculum
	result.Costs = append(result.Costs, syn.Costs...)
	emitProgress(&opts, StageSynthesis, "Curriculum synthesized", runID, syn.Curriculum)

	fmt.Fprintf(out, "Step 5/6: Persisting curriculum...\n")
	if err := r.store.SaveCurriculum(ctx, runID, syn.Curriculum); err != nil {
		_ = r.store.CompleteRun(ctx, runID, StateFailed)
		return nil, &StageError{Stage: StagePersistence, Cause: err}
	}
	_ = r.store.SaveArtifact(ctx, runID, ArtifactCurriculum, syn.Curriculum)
	if err := r.store.SaveCosts(ctx, runID, result.Costs); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("cost records could not be saved: %v", err))
	}
	_ = r.store.CompleteRun(ctx, runID, StatePersisted)

	fmt.Fprintf(out, "Step 6/6: Done. Curriculum %s persisted.\n", syn.Curriculum.ID)
	if opts.Verbose {
		printer.PrintCurriculum(syn.Curriculum)
		printer.PrintCosts(result.Costs)
	}
	emitProgress(&opts, StagePersistence, "Run persisted", runID, nil)
	return result, nil
}

const (
	prefixInsights = "[insights] "
	prefixMatch    = "[match] "
)

func emitProgress(opts *RunOptions, stage, message string, runID uuid.UUID, content any) {
	if opts.OnProgress == nil {
		return
	}
	opts.OnProgress(ProgressEvent{Stage: stage, Message: message, RunID: runID, Content: content})
}
