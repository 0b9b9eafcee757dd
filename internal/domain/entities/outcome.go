package entities

import "fmt"

// OutcomeKind tags a ProcessOutcome
type OutcomeKind int

const (
	Succeeded OutcomeKind = iota
	FailedWithCode
	FailedWithSpawnError
)

// ProcessOutcome is the authoritative result of an orchestrated run
type ProcessOutcome struct {
	Kind   OutcomeKind
	Name   string // process that decided the outcome
	Code   int
	Signal string
	Err    error
}

// Success reports whether the outcome is Succeeded
func (o ProcessOutcome) Success() bool {
	return o.Kind == Succeeded
}

// Error converts a failed outcome into an error; nil on success
func (o ProcessOutcome) Error() error {
	if o.Success() {
		return nil
	}
	return &ProcessError{Outcome: o}
}

// ProcessError reports a failed run
type ProcessError struct {
	Outcome ProcessOutcome
}

func (e *ProcessError) Error() string {
	name := e.Outcome.Name
	if name == "" {
		name = "process"
	}
	if e.Outcome.Kind == FailedWithSpawnError {
		return fmt.Sprintf("%s failed: %v", name, e.Outcome.Err)
	}
	signal := e.Outcome.Signal
	if signal == "" {
		signal = "none"
	}
	return fmt.Sprintf("%s exited with code %d and signal %s", name, e.Outcome.Code, signal)
}

func (e *ProcessError) Unwrap() error {
	return e.Outcome.Err
}

// RunState tracks the orchestrator's progress through a run
type RunState int

const (
	NotStarted RunState = iota
	Running
	RunSucceeded
	RunFailed
	AlreadyResolved
)

func (s RunState) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case RunSucceeded:
		return "succeeded"
	case RunFailed:
		return "failed"
	case AlreadyResolved:
		return "already-resolved"
	default:
		return "unknown"
	}
}
