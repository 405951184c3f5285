package types

import (
	"time"
)

// RunResult is the envelope every artifact-producing command fills in:
// what ran, what it produced, and how long it took. It is what the run
// archive persists and what --json output serializes.
type RunResult struct {
	ID        string        `json:"id"`
	Command   string        `json:"command"`
	Status    string        `json:"status"`
	Artifacts []string      `json:"artifacts"`
	Metadata  RunMetadata   `json:"metadata"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
}

// RunMetadata carries the inputs and knobs of a run.
type RunMetadata struct {
	CatalogFile string         `json:"catalog_file,omitempty"` // empty = embedded default
	BodyCount   int            `json:"body_count"`
	Parameters  map[string]any `json:"parameters,omitempty"`
	Version     string         `json:"version"`
}

// SimulationResult summarizes an N-body run: conservation diagnostics
// plus where the snapshot stream went.
type SimulationResult struct {
	Years           float64 `json:"years"`
	StepDays        float64 `json:"step_days"`
	Steps           int     `json:"steps"`
	Snapshots       int     `json:"snapshots"`
	SnapshotFile    string  `json:"snapshot_file"`
	InitialEnergy   float64 `json:"initial_energy"`
	FinalEnergy     float64 `json:"final_energy"`
	EnergyDrift     float64 `json:"energy_drift"` // relative
	AngularMomentum float64 `json:"angular_momentum"`
}

// StatusOK and StatusFailed are the terminal run states.
const (
	StatusOK     = "completed"
	StatusFailed = "failed"
)
