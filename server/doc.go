// Package server runs Gin behind an h2c handler and lists the engine's
// routes as routes.Descriptors, so the route report reads straight from it:
//
//	srv := server.New(cfg.Server, log)
//	srv.ApplyDefaults(cfg.Name, cfg.Version, registry.HealthAll)
//	srv.GinEngine().GET("/foos", foos.Index)
//	runner.Add(routes.NewReportingAction(srv, log))
//
// Handlers mounted with Handle share the port and the middleware in
// server/middleware but are not part of the report.
package server
