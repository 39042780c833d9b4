// Package lifecycle runs ordered startup actions before a host starts
// serving requests.
//
// A Runner is a component.Component. Register it ahead of the HTTP server so
// that every action has completed before the first request is accepted:
//
//	runner := lifecycle.NewRunner(container,
//	    lifecycle.WithActions(migrate, seed),
//	)
//	runner.AddScoped("warm-cache", func(r di.Resolver) (lifecycle.StartupAction, error) {
//	    repo, err := di.Resolve[*Repo](r, "repo")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return &warmCache{repo: repo}, nil
//	})
//	registry.Register(runner)
//	registry.Register(httpServer)
//
// Each Start opens a fresh di.Scope, resolves the actions from it, runs them
// one at a time in registration order and closes the scope however the run
// ends. The first failing action aborts the run and its error is returned,
// wrapped as a STARTUP_FAILED AppError. Stop does nothing.
package lifecycle
