package commands

import (
	"github.com/kbukum/hostkit/bootstrap"
	"github.com/kbukum/hostkit/cmd/hostd/internal/catalog"
	"github.com/kbukum/hostkit/lifecycle"
	"github.com/kbukum/hostkit/logger"
	"github.com/kbukum/hostkit/routes"
	"github.com/kbukum/hostkit/server"
)

// Host is a fully wired hostd instance.
type Host struct {
	App    *bootstrap.App[*Config]
	Server *server.Server
	Store  *catalog.Store
	Routes routes.Provider
}

// NewHost builds the app, mounts the foos API and the admin router and
// registers, in order: the startup action runner, then the HTTP server.
func NewHost(cfg *Config, opts ...bootstrap.Option) (*Host, error) {
	app, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, err
	}

	srvCfg := cfg.Server
	srvCfg.Tracing = srvCfg.Tracing || cfg.Telemetry.Enabled
	srv := server.New(srvCfg, app.Logger)
	srv.ApplyDefaults(app.Name, app.Version, app.Components.HealthAll)

	store := catalog.NewStore()
	catalog.NewFoosController(store).Register(srv.GinEngine())

	admin := catalog.NewAdminRouter(store)
	srv.Handle("/admin/", admin)

	if err := app.Container.RegisterSingleton(catalog.StoreKey, store); err != nil {
		return nil, err
	}

	h := &Host{
		App:    app,
		Server: srv,
		Store:  store,
		Routes: routes.Combine(srv, routes.NewChiProvider(admin)),
	}

	runner := app.AddLifecycleActions(lifecycle.WithConfig(cfg.Lifecycle)).
		AddScoped("seed-foos", catalog.SeedFactory(cfg.Catalog.Seed...))
	if cfg.Lifecycle.ReportRoutes {
		runner.Add(routes.NewReportingAction(h.Routes, app.Logger.WithComponent("routes")))
	}

	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return nil, err
	}

	app.Logger.Debug("Host wired", logger.Fields(
		logger.FieldCount, runner.Len(),
		"actions", runner.Names(),
	))
	return h, nil
}

// Report renders the route report without starting the host.
func (h *Host) Report() string {
	return routes.Render(routes.Lines(h.Routes.Descriptors()))
}
