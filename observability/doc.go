// Package observability exports startup spans and metrics over OTLP/HTTP.
//
//	shutdown, err := observability.Setup(ctx, observability.Service{Name: "hostd"}, cfg)
//	defer shutdown(ctx)
//
// Without Setup the global OpenTelemetry providers are no-ops, so StartSpan
// and StartupMetrics are safe to call unconditionally.
package observability
