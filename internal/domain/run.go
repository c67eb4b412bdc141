package domain

import "time"

// RunState is the state of the pipeline run sequencer.
type RunState string

const (
	RunIdle    RunState = "idle"
	RunRunning RunState = "running"
)

// StepState is the visual state of a single pipeline step.
type StepState string

const (
	StepPending StepState = "pending"
	StepActive  StepState = "active"
)

// Step is one animated stage of a simulated pipeline run.
type Step struct {
	Name        string
	State       StepState
	Pulsing     bool
	ActivatedAt time.Time
}

// PipelineRun is the ephemeral record of a foreground run. It is never persisted.
type PipelineRun struct {
	ID         string
	InProgress bool
	StepIndex  int
	StartedAt  time.Time
}
