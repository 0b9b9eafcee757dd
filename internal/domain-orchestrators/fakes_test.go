package orchestrators

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/DonIsaac/zlint-action/internal/domain/entities"
	"github.com/DonIsaac/zlint-action/internal/domain/interfaces"
	"github.com/DonIsaac/zlint-action/internal/domain/interfaces/gateways"
	"github.com/stretchr/testify/require"
)

// fakeProcess replays a fixed list of events and then closes its channel
type fakeProcess struct {
	events chan entities.ProcessEvent
	mu     sync.Mutex
	killed bool
}

func newFakeProcess(events ...entities.ProcessEvent) *fakeProcess {
	ch := make(chan entities.ProcessEvent, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return &fakeProcess{events: ch}
}

func (p *fakeProcess) Events() <-chan entities.ProcessEvent {
	return p.events
}

func (p *fakeProcess) Kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.killed = true
	return nil
}

func (p *fakeProcess) wasKilled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.killed
}

// fakeLauncher hands out scripted processes keyed by spec name
type fakeLauncher struct {
	processes map[string]*fakeProcess
	started   []entities.ProcessSpec
}

func newFakeLauncher() *fakeLauncher {
	return &fakeLauncher{processes: map[string]*fakeProcess{}}
}

func (l *fakeLauncher) script(name string, events ...entities.ProcessEvent) *fakeProcess {
	p := newFakeProcess(events...)
	l.processes[name] = p
	return p
}

func (l *fakeLauncher) Start(_ context.Context, spec entities.ProcessSpec) gateways.Process {
	l.started = append(l.started, spec)
	if p, ok := l.processes[spec.Name]; ok {
		return p
	}
	return newFakeProcess(entities.ErrorEvent(fmt.Errorf("no process scripted for %s", spec.Name)))
}

func (l *fakeLauncher) StartPipeline(ctx context.Context, source, sink entities.ProcessSpec) (gateways.Process, gateways.Process) {
	return l.Start(ctx, source), l.Start(ctx, sink)
}

func (l *fakeLauncher) names() []string {
	names := make([]string, 0, len(l.started))
	for _, s := range l.started {
		names = append(names, s.Name)
	}
	return names
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

// recordingLogger keeps every message and tracks group balance
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
	groups  []string
	open    int
}

var _ interfaces.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) add(level, msg string, fields []interfaces.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kv := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		kv[f.Key] = f.Value
	}
	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: kv})
}

func (l *recordingLogger) Debug(msg string, f ...interfaces.Field) { l.add("debug", msg, f) }
func (l *recordingLogger) Info(msg string, f ...interfaces.Field) { l.add("info", msg, f) }
func (l *recordingLogger) Warn(msg string, f ...interfaces.Field) { l.add("warn", msg, f) }
func (l *recordingLogger) Error(msg string, f ...interfaces.Field) { l.add("error", msg, f) }

func (l *recordingLogger) StartGroup(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.groups = append(l.groups, name)
	l.open++
}

func (l *recordingLogger) EndGroup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.open--
}

func (l *recordingLogger) at(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var msgs []string
	for _, e := range l.entries {
		if e.level == level {
			msgs = append(msgs, e.msg)
		}
	}
	return msgs
}

// fieldsOf returns the fields of the first entry logged with msg
func (l *recordingLogger) fieldsOf(msg string) map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.msg == msg {
			return e.fields
		}
	}
	return nil
}

// testConfiguration builds a Configuration around a real file
func testConfiguration(t *testing.T, diffOnly bool) entities.Configuration {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zlint")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755)) //nolint:gosec // G306: test binary must be executable
	cfg, err := entities.NewConfiguration(path, diffOnly)
	require.NoError(t, err)
	return cfg
}
