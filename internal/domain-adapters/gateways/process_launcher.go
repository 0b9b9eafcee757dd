package gateways

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/DonIsaac/zlint-action/internal/domain/entities"
	"github.com/DonIsaac/zlint-action/internal/domain/interfaces/gateways"
)

// ProcessLauncher starts child processes with os/exec
type ProcessLauncher struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewProcessLauncher creates a launcher whose children inherit the parent's
// standard streams unless a spec overrides them
func NewProcessLauncher() *ProcessLauncher {
	return &ProcessLauncher{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Start launches spec. A spawn failure is delivered on the handle's events.
func (l *ProcessLauncher) Start(ctx context.Context, spec entities.ProcessSpec) gateways.Process {
	return startProcess(l.command(ctx, spec))
}

// StartPipeline launches source and sink with source's stdout connected to
// sink's stdin through an OS pipe
func (l *ProcessLauncher) StartPipeline(ctx context.Context, source, sink entities.ProcessSpec) (gateways.Process, gateways.Process) {
	r, w, err := os.Pipe()
	if err != nil {
		err = fmt.Errorf("failed to create pipe: %w", err)
		return failedProcess(err), failedProcess(err)
	}

	srcCmd := l.command(ctx, source)
	srcCmd.Stdout = w
	sinkCmd := l.command(ctx, sink)
	sinkCmd.Stdin = r

	// The parent's copies of the pipe ends are closed once each child holds
	// its own, so the sink sees EOF when the source exits or never starts.
	src := startProcess(srcCmd)
	_ = w.Close()
	snk := startProcess(sinkCmd)
	_ = r.Close()

	return src, snk
}

func (l *ProcessLauncher) command(ctx context.Context, spec entities.ProcessSpec) *exec.Cmd {
	//nolint:gosec // G204: running the configured linter and git is the point
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env

	cmd.Stdin = l.stdin
	if spec.Stdin != nil {
		cmd.Stdin = spec.Stdin
	}
	cmd.Stdout = l.stdout
	if spec.Stdout != nil {
		cmd.Stdout = spec.Stdout
	}
	cmd.Stderr = l.stderr
	if spec.Stderr != nil {
		cmd.Stderr = spec.Stderr
	}
	return cmd
}

// execProcess adapts an exec.Cmd to the Process event contract
type execProcess struct {
	cmd    *exec.Cmd
	events chan entities.ProcessEvent
}

func startProcess(cmd *exec.Cmd) *execProcess {
	p := &execProcess{
		cmd: cmd,
		// Buffered for the most events a handle can deliver, so the
		// waiting goroutine never blocks on an abandoned handle
		events: make(chan entities.ProcessEvent, 2),
	}

	if err := cmd.Start(); err != nil {
		p.events <- entities.ErrorEvent(fmt.Errorf("failed to start %s: %w", cmd.Path, err))
		close(p.events)
		return p
	}

	go p.wait()
	return p
}

func failedProcess(err error) *execProcess {
	p := &execProcess{events: make(chan entities.ProcessEvent, 1)}
	p.events <- entities.ErrorEvent(err)
	close(p.events)
	return p
}

func (p *execProcess) wait() {
	defer close(p.events)
	p.events <- eventFromWait(p.cmd.Wait())
}

// Events returns the process's event stream
func (p *execProcess) Events() <-chan entities.ProcessEvent {
	return p.events
}

// Kill terminates a running process
func (p *execProcess) Kill() error {
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to kill %s: %w", p.cmd.Path, err)
	}
	return nil
}

func eventFromWait(err error) entities.ProcessEvent {
	if err == nil {
		return entities.ExitEvent(0, "")
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		signal := ""
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			signal = signalName(ws.Signal())
		}
		return entities.ExitEvent(exitErr.ExitCode(), signal)
	}

	// Wait can fail after a successful start, e.g. while copying output
	return entities.ErrorEvent(err)
}
