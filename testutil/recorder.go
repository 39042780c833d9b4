package testutil

import (
	"context"
	"sync"
)

// Recorder collects the order in which recorded actions run.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

// RecordedAction appends its name to the recorder and returns err.
// It satisfies lifecycle.StartupAction.
type RecordedAction struct {
	rec  *Recorder
	name string
	err  error
}

// Action returns an action named name that fails with err.
func (r *Recorder) Action(name string, err error) *RecordedAction {
	return &RecordedAction{rec: r, name: name, err: err}
}

// Name returns the action name.
func (a *RecordedAction) Name() string { return a.name }

// OnStartup records the call.
func (a *RecordedAction) OnStartup(ctx context.Context) error {
	a.rec.mu.Lock()
	a.rec.calls = append(a.rec.calls, a.name)
	a.rec.mu.Unlock()
	return a.err
}

// Calls returns the recorded names in call order.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}
