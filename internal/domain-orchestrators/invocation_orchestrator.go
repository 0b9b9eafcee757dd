package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/DonIsaac/zlint-action/internal/domain/entities"
	"github.com/DonIsaac/zlint-action/internal/domain/interfaces"
	"github.com/DonIsaac/zlint-action/internal/domain/interfaces/gateways"
)

// ErrIndeterminateBaseRef is returned when diff mode cannot tell which
// branch the pull request targets
var ErrIndeterminateBaseRef = errors.New("could not determine the pull request's base ref")

// ErrAlreadyRun is returned when Run is called on a used orchestrator
var ErrAlreadyRun = errors.New("orchestrator has already run")

const linterName = "ZLint"

// FetchError reports a failed `git fetch` of the base ref
type FetchError struct {
	Ref     string
	Outcome entities.ProcessOutcome
}

func (e *FetchError) Error() string {
	if e.Outcome.Kind == entities.FailedWithSpawnError {
		return fmt.Sprintf("failed to fetch base ref '%s': %v", e.Ref, e.Outcome.Err)
	}
	return fmt.Sprintf("failed to fetch base ref '%s': git fetch exited with code %d", e.Ref, e.Outcome.Code)
}

func (e *FetchError) Unwrap() error {
	return e.Outcome.Error()
}

// outcomeLatch records the first outcome offered to it and refuses the rest
type outcomeLatch struct {
	decided atomic.Bool
	outcome entities.ProcessOutcome
}

func (l *outcomeLatch) settle(o entities.ProcessOutcome) bool {
	if !l.decided.CompareAndSwap(false, true) {
		return false
	}
	l.outcome = o
	return true
}

// InvocationOrchestrator runs the linter over the whole tree, or over the
// files a pull request changed, and reduces the child processes' signals
// to one outcome
type InvocationOrchestrator struct {
	launcher gateways.ProcessLauncher
	event    entities.EventContext
	logger   interfaces.Logger
	gitPath  string
	workDir  string
	state    entities.RunState
}

// InvocationOrchestratorConfig holds configuration for the orchestrator
type InvocationOrchestratorConfig struct {
	GitPath    string // defaults to "git" looked up on PATH
	WorkingDir string // defaults to the current working directory
}

// NewInvocationOrchestrator creates a new invocation orchestrator
func NewInvocationOrchestrator(
	launcher gateways.ProcessLauncher,
	event entities.EventContext,
	logger interfaces.Logger,
	config InvocationOrchestratorConfig,
) *InvocationOrchestrator {
	gitPath := config.GitPath
	if gitPath == "" {
		gitPath = "git"
	}

	return &InvocationOrchestrator{
		launcher: launcher,
		event:    event,
		logger:   logger,
		gitPath:  gitPath,
		workDir:  config.WorkingDir,
		state:    entities.NotStarted,
	}
}

// State returns where the orchestrator is in its run
func (o *InvocationOrchestrator) State() entities.RunState {
	return o.state
}

// Run lints according to cfg and blocks until the run is decided. The
// returned error is nil exactly when the linter exited with code 0.
func (o *InvocationOrchestrator) Run(ctx context.Context, cfg entities.Configuration) error {
	if o.state != entities.NotStarted {
		return ErrAlreadyRun
	}
	o.logger.Debug("ZLint binary: " + cfg.BinaryPath())

	if cfg.DiffOnly() {
		if o.event.IsPullRequest() {
			return o.runDiff(ctx, cfg)
		}
		o.logger.Info("diff-only is set but the run was not triggered by a pull request, linting all files",
			interfaces.F("event", o.event.Name))
	}
	return o.runFull(ctx, cfg)
}

func (o *InvocationOrchestrator) runFull(ctx context.Context, cfg entities.Configuration) error {
	spec := o.linterSpec(cfg, "--format", "github")
	o.logger.Info("Running: " + spec.CommandLine())

	o.state = entities.Running
	outcome := o.await(spec.Name, o.launcher.Start(ctx, spec))
	return o.finish(outcome)
}

func (o *InvocationOrchestrator) runDiff(ctx context.Context, cfg entities.Configuration) error {
	base := o.event.BaseRef
	if base == "" {
		o.state = entities.RunFailed
		return ErrIndeterminateBaseRef
	}

	if err := o.fetchBaseRef(ctx, base); err != nil {
		o.state = entities.RunFailed
		return err
	}

	source := entities.ProcessSpec{
		Name: "git diff",
		Path: o.gitPath,
		Args: []string{"diff", base + "...HEAD", "--name-only"},
		Dir:  o.workDir,
	}
	sink := o.linterSpec(cfg, "--format", "github", "--stdin")
	o.logger.Info("Running: " + source.CommandLine() + " | " + sink.CommandLine())

	o.state = entities.Running
	src, snk := o.launcher.StartPipeline(ctx, source, sink)
	outcome := o.awaitPipeline(source.Name, src, sink.Name, snk)
	return o.finish(outcome)
}

// fetchBaseRef runs `git fetch origin <base>:<base>`
func (o *InvocationOrchestrator) fetchBaseRef(ctx context.Context, base string) error {
	spec := entities.ProcessSpec{
		Name: "git fetch",
		Path: o.gitPath,
		Args: []string{"fetch", "origin", base + ":" + base},
		Dir:  o.workDir,
	}
	o.logger.Info("Fetching base ref " + base)

	outcome := o.await(spec.Name, o.launcher.Start(ctx, spec))
	if !outcome.Success() {
		return &FetchError{Ref: base, Outcome: outcome}
	}
	return nil
}

// await decides on the first event from p and logs any that follow
func (o *InvocationOrchestrator) await(name string, p gateways.Process) entities.ProcessOutcome {
	var latch outcomeLatch
	for ev := range p.Events() {
		o.settle(&latch, name, ev)
	}
	return o.resolved(&latch, name)
}

// awaitPipeline waits on both ends of a pipeline. Only the sink decides the
// outcome, except that a source error kills the sink and wins. Sink events
// are held back until the source is done so that the order is stable.
func (o *InvocationOrchestrator) awaitPipeline(srcName string, src gateways.Process, sinkName string, sink gateways.Process) entities.ProcessOutcome {
	var (
		latch      outcomeLatch
		held       []entities.ProcessEvent
		srcEvents  = src.Events()
		sinkEvents = sink.Events()
	)

	for srcEvents != nil || sinkEvents != nil {
		select {
		case ev, ok := <-srcEvents:
			if !ok {
				srcEvents = nil
				for _, h := range held {
					o.settle(&latch, sinkName, h)
				}
				held = nil
				continue
			}
			if ev.Kind == entities.ProcessErrored {
				if o.settle(&latch, srcName, ev) {
					if err := sink.Kill(); err != nil {
						o.logger.Warn("Failed to stop ZLint", interfaces.F("error", err))
					}
				}
				continue
			}
			if !ev.Outcome().Success() {
				o.logger.Warn(fmt.Sprintf("%s exited with code %d, the file list may be incomplete", srcName, ev.Code))
			}

		case ev, ok := <-sinkEvents:
			if !ok {
				sinkEvents = nil
				continue
			}
			if srcEvents != nil {
				held = append(held, ev)
				continue
			}
			o.settle(&latch, sinkName, ev)
		}
	}

	return o.resolved(&latch, sinkName)
}

// settle offers ev to the latch. Events arriving after the decision are
// only logged.
func (o *InvocationOrchestrator) settle(latch *outcomeLatch, name string, ev entities.ProcessEvent) bool {
	outcome := ev.Outcome()
	outcome.Name = name
	if latch.settle(outcome) {
		return true
	}

	state := interfaces.F("state", entities.AlreadyResolved.String())
	event := interfaces.F("event", ev.String())
	if err := outcome.Error(); err != nil {
		o.logger.Error(err.Error(), state, event)
	} else {
		o.logger.Debug(name+" exited after the run was resolved", state, event)
	}
	return false
}

func (o *InvocationOrchestrator) resolved(latch *outcomeLatch, name string) entities.ProcessOutcome {
	if !latch.decided.Load() {
		return entities.ProcessOutcome{
			Kind: entities.FailedWithSpawnError,
			Name: name,
			Err:  errors.New("process ended without reporting an exit status"),
		}
	}
	return latch.outcome
}

func (o *InvocationOrchestrator) finish(outcome entities.ProcessOutcome) error {
	if outcome.Success() {
		o.state = entities.RunSucceeded
		o.logger.Info("ZLint finished without errors")
		return nil
	}
	o.state = entities.RunFailed
	return outcome.Error()
}

func (o *InvocationOrchestrator) linterSpec(cfg entities.Configuration, args ...string) entities.ProcessSpec {
	return entities.ProcessSpec{
		Name: linterName,
		Path: cfg.BinaryPath(),
		Args: args,
		Dir:  o.workDir,
	}
}
