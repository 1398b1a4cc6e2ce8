package pipeline

import "fmt"

// Stage identifiers used to attribute fatal pipeline failures
const (
	StageAuthorize   = "authorize"
	StageExtraction  = "extraction"
	StageInsights    = "insights"
	StageMatching    = "matching"
	StageSynthesis   = "synthesis"
	StagePersistence = "persistence"
)

// StageError attributes a fatal run failure to the stage that produced it.
// The cause keeps its own type so callers can inspect it with errors.As.
type StageError struct {
	Stage string
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s failed: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}
