package pipeline

import "github.com/oukeidos/litra/internal/engine"

// Status is the overall outcome of a translation session.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailure Status = "failure"
)

// Result summarizes one translation session.
type Result struct {
	Status    Status
	SessionID string

	// OutputPath is where the translated book was written; may differ from
	// the configured path when a collision was avoided.
	OutputPath string

	Paragraphs int
	UnitsTotal int
	UnitsDone  int

	// Warnings collects the recoverable incidents the engine reported:
	// batch mismatches and failed state refreshes.
	Warnings []engine.Event

	Stats engine.Stats
}
