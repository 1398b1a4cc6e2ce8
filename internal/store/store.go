// Package store persists generation runs, their artifacts, and the
// curricula they produce.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

// Sentinel errors shared by all implementations
var (
	ErrNotFound            = errors.New("record not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// Run represents one curriculum generation run
type Run struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	JobID       string     `json:"job_id,omitempty"`
	State       string     `json:"state"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Store is the persistence contract the pipeline writes through. The
// curriculum and its run bookkeeping are committed in one place at the end
// of a successful run; intermediate artifacts are saved as stages finish so
// failed runs remain inspectable.
type Store interface {
	// CreateRun opens a new generation run in the given initial state.
	CreateRun(ctx context.Context, userID uuid.UUID, jobID, state string) (uuid.UUID, error)
	// UpdateRunState records a state transition.
	UpdateRunState(ctx context.Context, runID uuid.UUID, state string) error
	// CompleteRun records the terminal state and completion time.
	CompleteRun(ctx context.Context, runID uuid.UUID, state string) error
	// GetRun returns a run, or ErrNotFound.
	GetRun(ctx context.Context, runID uuid.UUID) (*Run, error)

	// SaveArtifact stores one stage's JSON output, replacing any previous
	// artifact for the same stage.
	SaveArtifact(ctx context.Context, runID uuid.UUID, stage string, content any) error
	// GetArtifact returns a stage's raw JSON artifact, or ErrNotFound.
	GetArtifact(ctx context.Context, runID uuid.UUID, stage string) ([]byte, error)

	// SaveCosts appends the provider cost records accumulated by a run.
	SaveCosts(ctx context.Context, runID uuid.UUID, costs []provider.CostRecord) error

	// SaveCurriculum persists a completed curriculum.
	SaveCurriculum(ctx context.Context, runID uuid.UUID, c *types.Curriculum) error
	// GetCurriculum returns a curriculum by ID, or ErrNotFound.
	GetCurriculum(ctx context.Context, id uuid.UUID) (*types.Curriculum, error)
	// ListCurricula returns a user's curricula, newest first.
	ListCurricula(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Curriculum, error)

	// SaveJob stores a job record keyed by its JobID.
	SaveJob(ctx context.Context, job *types.JobRequirements) error
	// GetJob returns a stored job record, or ErrNotFound.
	GetJob(ctx context.Context, jobID string) (*types.JobRequirements, error)

	// GetCredits returns the user's remaining credit balance, or ErrNotFound.
	GetCredits(ctx context.Context, userID uuid.UUID) (int, error)
	// DebitCredit atomically deducts one credit, returning
	// ErrInsufficientCredits when the balance is zero.
	DebitCredit(ctx context.Context, userID uuid.UUID) error

	Close()
}
