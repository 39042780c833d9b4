package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Outcome values recorded in the status attribute.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// InitMeter installs a periodically exporting OTLP meter provider as the
// process global.
func InitMeter(ctx context.Context, svc Service, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("metric exporter: %w", err)
	}
	res, err := svc.resource()
	if err != nil {
		return nil, err
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.ExportInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.ExportInterval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns a meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// StartupMetrics counts and times startup actions.
type StartupMetrics struct {
	total    metric.Int64Counter
	duration metric.Float64Histogram
}

func NewStartupMetrics(meter metric.Meter) (*StartupMetrics, error) {
	total, err := meter.Int64Counter("startup.action.total",
		metric.WithDescription("Startup actions executed"),
	)
	if err != nil {
		return nil, fmt.Errorf("startup.action.total: %w", err)
	}
	duration, err := meter.Float64Histogram("startup.action.duration",
		metric.WithDescription("Startup action duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("startup.action.duration: %w", err)
	}
	return &StartupMetrics{total: total, duration: duration}, nil
}

// RecordAction records one executed action. A nil receiver is a no-op.
func (m *StartupMetrics) RecordAction(ctx context.Context, action, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.total.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrAction, action),
		attribute.String(AttrStatus, status),
	))
	m.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String(AttrAction, action)))
}
