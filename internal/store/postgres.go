package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

// Postgres implements Store over a pgx connection pool
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// CreateRun creates a new generation run record and returns its ID
func (p *Postgres) CreateRun(ctx context.Context, userID uuid.UUID, jobID, state string) (uuid.UUID, error) {
	var id uuid.UUID
	err := p.pool.QueryRow(ctx,
		`INSERT INTO generation_runs (user_id, job_id, state)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		userID, jobID, state,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// UpdateRunState records a state transition on a run
func (p *Postgres) UpdateRunState(ctx context.Context, runID uuid.UUID, state string) error {
	result, err := p.pool.Exec(ctx,
		`UPDATE generation_runs SET state = $1 WHERE id = $2`,
		state, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run state: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteRun marks a run as finished in the given terminal state
func (p *Postgres) CompleteRun(ctx context.Context, runID uuid.UUID, state string) error {
	result, err := p.pool.Exec(ctx,
		`UPDATE generation_runs SET state = $1, completed_at = NOW() WHERE id = $2`,
		state, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetRun retrieves a generation run by ID
func (p *Postgres) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := p.pool.QueryRow(ctx,
		`SELECT id, user_id, COALESCE(job_id, ''), state, created_at, completed_at
		 FROM generation_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.UserID, &run.JobID, &run.State, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// SaveArtifact stores one stage's JSON output for a run
func (p *Postgres) SaveArtifact(ctx context.Context, runID uuid.UUID, stage string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO run_artifacts (run_id, stage, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, stage) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, stage, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", stage, err)
	}
	return nil
}

// GetArtifact retrieves a JSON artifact by run ID and stage
func (p *Postgres) GetArtifact(ctx context.Context, runID uuid.UUID, stage string) ([]byte, error) {
	var content []byte
	err := p.pool.QueryRow(ctx,
		`SELECT content FROM run_artifacts WHERE run_id = $1 AND stage = $2`,
		runID, stage,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", stage, err)
	}
	return content, nil
}

// SaveCosts appends provider cost records for a run
func (p *Postgres) SaveCosts(ctx context.Context, runID uuid.UUID, costs []provider.CostRecord) error {
	for _, c := range costs {
		_, err := p.pool.Exec(ctx,
			`INSERT INTO run_costs (run_id, provider, capability, units, cost)
			 VALUES ($1, $2, $3, $4, $5)`,
			runID, string(c.Provider), string(c.Capability), c.Units, c.Cost,
		)
		if err != nil {
			return fmt.Errorf("failed to save cost record: %w", err)
		}
	}
	return nil
}

// SaveCurriculum persists a completed curriculum for a run
func (p *Postgres) SaveCurriculum(ctx context.Context, runID uuid.UUID, c *types.Curriculum) error {
	content, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal curriculum: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO curricula (id, run_id, user_id, job_id, title, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, runID, c.UserID, c.JobID, c.Title, content, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save curriculum: %w", err)
	}
	return nil
}

// GetCurriculum retrieves a curriculum by ID
func (p *Postgres) GetCurriculum(ctx context.Context, id uuid.UUID) (*types.Curriculum, error) {
	var content []byte
	err := p.pool.QueryRow(ctx,
		`SELECT content FROM curricula WHERE id = $1`,
		id,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get curriculum: %w", err)
	}

	var c types.Curriculum
	if err := json.Unmarshal(content, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal curriculum: %w", err)
	}
	return &c, nil
}

// ListCurricula retrieves a user's curricula, newest first
func (p *Postgres) ListCurricula(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Curriculum, error) {
	if limit == 0 {
		limit = 50
	}

	rows, err := p.pool.Query(ctx,
		`SELECT content FROM curricula WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list curricula: %w", err)
	}
	defer rows.Close()

	var curricula []*types.Curriculum
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan curriculum: %w", err)
		}
		var c types.Curriculum
		if err := json.Unmarshal(content, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal curriculum: %w", err)
		}
		curricula = append(curricula, &c)
	}
	return curricula, nil
}

// SaveJob stores a job record keyed by its JobID, replacing any previous
// record with the same key
func (p *Postgres) SaveJob(ctx context.Context, job *types.JobRequirements) error {
	if job.JobID == "" {
		return fmt.Errorf("job has no job_id")
	}
	content, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO jobs (job_id, role_title, company, content, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (job_id) DO UPDATE SET
		   role_title = EXCLUDED.role_title,
		   company = EXCLUDED.company,
		   content = EXCLUDED.content,
		   updated_at = NOW()`,
		job.JobID, job.RoleTitle, job.Company, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// GetJob retrieves a stored job record
func (p *Postgres) GetJob(ctx context.Context, jobID string) (*types.JobRequirements, error) {
	var content []byte
	err := p.pool.QueryRow(ctx,
		`SELECT content FROM jobs WHERE job_id = $1`,
		jobID,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	var job types.JobRequirements
	if err := json.Unmarshal(content, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

// GetCredits returns the user's remaining credit balance
func (p *Postgres) GetCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	var credits int
	err := p.pool.QueryRow(ctx,
		`SELECT credits FROM users WHERE id = $1`,
		userID,
	).Scan(&credits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to get credits: %w", err)
	}
	return credits, nil
}

// DebitCredit atomically deducts one credit. The WHERE clause guards the
// balance so two concurrent runs cannot both spend the last credit.
func (p *Postgres) DebitCredit(ctx context.Context, userID uuid.UUID) error {
	result, err := p.pool.Exec(ctx,
		`UPDATE users SET credits = credits - 1 WHERE id = $1 AND credits > 0`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to debit credit: %w", err)
	}
	if result.RowsAffected() == 0 {
		// Distinguish a missing user from an empty balance.
		if _, err := p.GetCredits(ctx, userID); err != nil {
			return err
		}
		return ErrInsufficientCredits
	}
	return nil
}
