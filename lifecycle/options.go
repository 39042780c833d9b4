package lifecycle

import (
	"time"

	"github.com/kbukum/hostkit/logger"
	"github.com/kbukum/hostkit/observability"
)

// Option configures a Runner during creation.
type Option func(*Runner)

// WithActions appends actions in the given order.
func WithActions(actions ...StartupAction) Option {
	return func(r *Runner) {
		for _, a := range actions {
			r.entries = append(r.entries, entry{name: ActionName(a), action: a})
		}
	}
}

// WithLogger sets the logger used for per-action records.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) {
		r.log = l.WithComponent(componentName)
	}
}

// WithTimeout bounds each Start. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithConfig applies the enabled flag and timeout from cfg.
func WithConfig(cfg Config) Option {
	return func(r *Runner) {
		r.disabled = !cfg.Enabled
		r.timeout = cfg.Timeout
	}
}

// WithMetrics sets the instruments recorded for each action. By default they
// are created on the global meter provider.
func WithMetrics(m *observability.StartupMetrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}
