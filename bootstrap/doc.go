// Package bootstrap runs a host: typed configuration, logger setup, the
// component registry, dependency injection, startup actions and graceful
// shutdown.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	app.AddLifecycleActions(lifecycle.WithConfig(cfg.Lifecycle)).
//	    AddScoped("warm-cache", newWarmCache).
//	    Add(routes.NewReportingAction(srv, nil))
//	app.RegisterComponent(server.NewComponent(srv))
//	return app.Run(ctx)
//
// Components start in registration order and stop in reverse. A failing
// startup action stops the sequence and is returned from Run before the
// server starts.
package bootstrap
