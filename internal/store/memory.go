package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

// Memory is an in-process Store used by tests and dry runs. Content is
// round-tripped through JSON so callers see the same serialization behavior
// as the database-backed store.
type Memory struct {
	mu         sync.Mutex
	runs       map[uuid.UUID]*Run
	artifacts  map[uuid.UUID]map[string][]byte
	costs      map[uuid.UUID][]provider.CostRecord
	curricula  map[uuid.UUID]*types.Curriculum
	jobs       map[string][]byte
	runOwner   map[uuid.UUID]uuid.UUID
	credits    map[uuid.UUID]int
	hasCredits map[uuid.UUID]bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		runs:       make(map[uuid.UUID]*Run),
		artifacts:  make(map[uuid.UUID]map[string][]byte),
		costs:      make(map[uuid.UUID][]provider.CostRecord),
		curricula:  make(map[uuid.UUID]*types.Curriculum),
		jobs:       make(map[string][]byte),
		runOwner:   make(map[uuid.UUID]uuid.UUID),
		credits:    make(map[uuid.UUID]int),
		hasCredits: make(map[uuid.UUID]bool),
	}
}

// SetCredits seeds a user's credit balance.
func (m *Memory) SetCredits(userID uuid.UUID, credits int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credits[userID] = credits
	m.hasCredits[userID] = true
}

// CreateRun opens a new generation run
func (m *Memory) CreateRun(_ context.Context, userID uuid.UUID, jobID, state string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.runs[id] = &Run{
		ID:        id,
		UserID:    userID,
		JobID:     jobID,
		State:     state,
		CreatedAt: time.Now().UTC(),
	}
	m.runOwner[id] = userID
	return id, nil
}

// UpdateRunState records a state transition
func (m *Memory) UpdateRunState(_ context.Context, runID uuid.UUID, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[runID]
	if !ok {
		return ErrNotFound
	}
	run.State = state
	return nil
}

// CompleteRun marks a run finished
func (m *Memory) CompleteRun(_ context.Context, runID uuid.UUID, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[runID]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	run.State = state
	run.CompletedAt = &now
	return nil
}

// GetRun returns a copy of the run record
func (m *Memory) GetRun(_ context.Context, runID uuid.UUID) (*Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[runID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *run
	return &copied, nil
}

// SaveArtifact stores one stage's JSON output
func (m *Memory) SaveArtifact(_ context.Context, runID uuid.UUID, stage string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.artifacts[runID] == nil {
		m.artifacts[runID] = make(map[string][]byte)
	}
	m.artifacts[runID][stage] = jsonBytes
	return nil
}

// GetArtifact retrieves a stage's JSON artifact
func (m *Memory) GetArtifact(_ context.Context, runID uuid.UUID, stage string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, ok := m.artifacts[runID][stage]
	if !ok {
		return nil, ErrNotFound
	}
	return content, nil
}

// SaveCosts appends cost records for a run
func (m *Memory) SaveCosts(_ context.Context, runID uuid.UUID, costs []provider.CostRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.costs[runID] = append(m.costs[runID], costs...)
	return nil
}

// Costs returns the cost records accumulated for a run.
func (m *Memory) Costs(runID uuid.UUID) []provider.CostRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]provider.CostRecord(nil), m.costs[runID]...)
}

// SaveCurriculum persists a completed curriculum
func (m *Memory) SaveCurriculum(_ context.Context, _ uuid.UUID, c *types.Curriculum) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal curriculum: %w", err)
	}
	var copied types.Curriculum
	if err := json.Unmarshal(data, &copied); err != nil {
		return fmt.Errorf("failed to unmarshal curriculum: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.curricula[c.ID] = &copied
	return nil
}

// GetCurriculum retrieves a curriculum by ID
func (m *Memory) GetCurriculum(_ context.Context, id uuid.UUID) (*types.Curriculum, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.curricula[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

// ListCurricula retrieves a user's curricula, newest first
func (m *Memory) ListCurricula(_ context.Context, userID uuid.UUID, limit int) ([]*types.Curriculum, error) {
	if limit == 0 {
		limit = 50
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*types.Curriculum
	for _, c := range m.curricula {
		if c.UserID == userID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SaveJob stores a job record keyed by its JobID
func (m *Memory) SaveJob(_ context.Context, job *types.JobRequirements) error {
	if job.JobID == "" {
		return fmt.Errorf("job has no job_id")
	}
	jsonBytes, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.JobID] = jsonBytes
	return nil
}

// GetJob retrieves a stored job record
func (m *Memory) GetJob(_ context.Context, jobID string) (*types.JobRequirements, error) {
	m.mu.Lock()
	content, ok := m.jobs[jobID]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	var job types.JobRequirements
	if err := json.Unmarshal(content, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

// GetCredits returns the user's credit balance
func (m *Memory) GetCredits(_ context.Context, userID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasCredits[userID] {
		return 0, ErrNotFound
	}
	return m.credits[userID], nil
}

// DebitCredit deducts one credit under the store lock
func (m *Memory) DebitCredit(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasCredits[userID] {
		return ErrNotFound
	}
	if m.credits[userID] <= 0 {
		return ErrInsufficientCredits
	}
	m.credits[userID]--
	return nil
}

// Close is a no-op for the in-memory store
func (m *Memory) Close() {}
