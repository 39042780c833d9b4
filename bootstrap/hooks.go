package bootstrap

import (
	"context"
	"fmt"

	"github.com/kbukum/hostkit/lifecycle"
)

// Hook is a callback run at a fixed point of the host lifecycle.
type Hook func(ctx context.Context) error

// OnStart registers hooks that run once every component started, which
// includes all startup actions and the HTTP server.
func (a *App[C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnReady registers hooks that run after the ready check.
func (a *App[C]) OnReady(hooks ...Hook) {
	a.onReady = append(a.onReady, hooks...)
}

// OnStop registers hooks that run on shutdown before components stop.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// OnStartup registers hook as a named startup action. Unlike OnStart it runs
// before any component registered after the runner, so a failure keeps the
// server from listening.
func (a *App[C]) OnStartup(name string, hook Hook) *lifecycle.Runner {
	return a.AddStartupAction(lifecycle.Named(name, lifecycle.StartupActionFunc(hook)))
}

func runHooks(ctx context.Context, phase string, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("%s hook %d: %w", phase, i, err)
		}
	}
	return nil
}
