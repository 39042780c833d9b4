package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/hostkit/bootstrap"
	"github.com/kbukum/hostkit/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the startup actions, then serve HTTP",
	Long: `Run every startup action in registration order, then start the HTTP
server. A failing action stops startup and hostd exits with an error; the
server never binds its port.

Examples:
  # Serve with the default config search path
  hostd serve

  # Bound startup to 30 seconds
  HOSTD_LIFECYCLE_TIMEOUT=30s hostd serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	host, err := NewHost(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := initTelemetry(ctx, host.App, cfg); err != nil {
		return err
	}

	return host.App.Run(ctx)
}

// initTelemetry installs the OTLP providers and flushes them after the
// components stop.
func initTelemetry(ctx context.Context, app *bootstrap.App[*Config], cfg *Config) error {
	svc := observability.Service{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	}
	shutdown, err := observability.Setup(ctx, svc, cfg.Telemetry)
	if err != nil {
		return err
	}
	app.OnStop(bootstrap.Hook(shutdown))
	return nil
}
