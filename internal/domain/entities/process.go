package entities

import (
	"fmt"
	"io"
)

// ProcessSpec describes a child process to launch
type ProcessSpec struct {
	Name   string // label used in logs, e.g. "zlint" or "git diff"
	Path   string
	Args   []string
	Dir    string   // empty means the current working directory
	Env    []string // nil means inherit the parent environment
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CommandLine renders the spec for logging
func (s ProcessSpec) CommandLine() string {
	line := s.Path
	for _, a := range s.Args {
		line += " " + a
	}
	return line
}

// ProcessEventKind distinguishes the signals a child process can deliver
type ProcessEventKind int

const (
	// ProcessExited is delivered once the process has terminated
	ProcessExited ProcessEventKind = iota
	// ProcessErrored is delivered when the process could not be spawned,
	// killed or waited on
	ProcessErrored
)

// ProcessEvent is one completion or error signal from a child process.
// A process may deliver an error and later an exit for the same handle.
type ProcessEvent struct {
	Kind   ProcessEventKind
	Code   int    // exit code, -1 when terminated by a signal
	Signal string // delivering signal, empty when none
	Err    error
}

// ExitEvent builds a ProcessExited event
func ExitEvent(code int, signal string) ProcessEvent {
	return ProcessEvent{Kind: ProcessExited, Code: code, Signal: signal}
}

// ErrorEvent builds a ProcessErrored event
func ErrorEvent(err error) ProcessEvent {
	return ProcessEvent{Kind: ProcessErrored, Err: err}
}

// Outcome maps the event to the outcome it would decide
func (e ProcessEvent) Outcome() ProcessOutcome {
	if e.Kind == ProcessErrored {
		return ProcessOutcome{Kind: FailedWithSpawnError, Err: e.Err}
	}
	if e.Code == 0 && e.Signal == "" {
		return ProcessOutcome{Kind: Succeeded}
	}
	return ProcessOutcome{Kind: FailedWithCode, Code: e.Code, Signal: e.Signal}
}

// String describes the event for logs
func (e ProcessEvent) String() string {
	if e.Kind == ProcessErrored {
		return fmt.Sprintf("error: %v", e.Err)
	}
	return fmt.Sprintf("exit code %d signal %q", e.Code, e.Signal)
}
