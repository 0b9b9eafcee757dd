package gateways

import (
	"context"

	"github.com/DonIsaac/zlint-action/internal/domain/entities"
)

// Process is a handle on a started (or failed-to-start) child process
type Process interface {
	// Events delivers the process's error and exit signals and is closed
	// after the last one. More than one event may arrive.
	Events() <-chan entities.ProcessEvent

	// Kill terminates the process. Killing a finished or never-started
	// process is not an error.
	Kill() error
}

// ProcessLauncher starts child processes. Spawn failures are delivered as
// an error event on the returned handle rather than returned.
type ProcessLauncher interface {
	Start(ctx context.Context, spec entities.ProcessSpec) Process

	// StartPipeline starts source and sink with source's stdout feeding
	// sink's stdin. The Stdout of source and Stdin of sink are ignored.
	StartPipeline(ctx context.Context, source, sink entities.ProcessSpec) (Process, Process)
}
