package observability

import (
	"context"
	"errors"

	"github.com/kbukum/hostkit/logger"
)

// ShutdownFunc flushes and stops the providers installed by Setup.
type ShutdownFunc func(context.Context) error

// Setup installs the tracer and meter providers described by cfg. When cfg
// is disabled nothing is installed and the returned ShutdownFunc does nothing.
func Setup(ctx context.Context, svc Service, cfg Config) (ShutdownFunc, error) {
	log := logger.WithComponent("telemetry")
	if !cfg.Enabled {
		log.Debug("Telemetry disabled")
		return func(context.Context) error { return nil }, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tp, err := InitTracer(ctx, svc, cfg)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, svc, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	log.Info("Telemetry enabled", logger.Fields(
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
		"export_interval", cfg.ExportInterval.String(),
	))
	return func(ctx context.Context) error {
		return errors.Join(mp.Shutdown(ctx), tp.Shutdown(ctx))
	}, nil
}
