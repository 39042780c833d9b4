package bootstrap

import (
	"github.com/kbukum/hostkit/lifecycle"
	"github.com/kbukum/hostkit/logger"
)

// AddLifecycleActions registers the startup action runner as a component and
// returns it so registrations chain. Calling it again returns the same runner;
// options, including those from WithLifecycle, only apply on the first call.
//
// Components start in registration order, so call it before registering the
// HTTP server: the server then only starts once every action succeeded.
func (a *App[C]) AddLifecycleActions(opts ...lifecycle.Option) *lifecycle.Runner {
	if a.runner != nil {
		return a.runner
	}

	all := []lifecycle.Option{lifecycle.WithLogger(a.Logger)}
	all = append(all, a.lifecycleOpts...)
	opts = append(all, opts...)
	runner := lifecycle.NewRunner(a.Container, opts...)
	if err := a.Components.Register(runner); err != nil {
		a.Logger.Error("Failed to register startup actions", logger.ErrorFields("register", err))
	}
	a.runner = runner
	return runner
}

// AddStartupAction appends actions to the runner, registering it on first use.
func (a *App[C]) AddStartupAction(actions ...lifecycle.StartupAction) *lifecycle.Runner {
	return a.AddLifecycleActions().Add(actions...)
}

// AddScopedStartupAction appends an action built from the run scope on each
// start, registering the runner on first use.
func (a *App[C]) AddScopedStartupAction(name string, factory lifecycle.Factory) *lifecycle.Runner {
	return a.AddLifecycleActions().AddScoped(name, factory)
}

// Lifecycle returns the registered runner, or nil before AddLifecycleActions.
func (a *App[C]) Lifecycle() *lifecycle.Runner {
	return a.runner
}
