package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/hostkit/logger"
)

const defaultStopTimeout = 10 * time.Second

type slot struct {
	component Component
	started   bool
}

// Registry starts components in registration order and stops them in
// reverse. Register a component after everything it needs.
type Registry struct {
	mu          sync.RWMutex
	slots       []*slot
	byName      map[string]*slot
	stopTimeout time.Duration
	log         *logger.Logger
}

// RegistryOption configures NewRegistry.
type RegistryOption func(*Registry)

// WithLogger sets the logger for lifecycle records.
func WithLogger(l *logger.Logger) RegistryOption {
	return func(r *Registry) { r.log = l.WithComponent("components") }
}

// WithStopTimeout bounds each component's Stop.
func WithStopTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.stopTimeout = d
		}
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byName:      make(map[string]*slot),
		stopTimeout: defaultStopTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.WithComponent("components")
	}
	return r
}

// Register appends c. Names must be unique.
func (r *Registry) Register(c Component) error {
	if c == nil {
		return errors.New("component: nil component")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("component %s already registered", name)
	}
	s := &slot{component: c}
	r.slots = append(r.slots, s)
	r.byName[name] = s

	r.log.Debug("Component registered", logger.Fields(logger.FieldComponent, name, "position", len(r.slots)))
	return nil
}

// StartAll starts every component in order. On failure the components
// already started are stopped in reverse and the error is returned; the
// remaining components never start.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("Starting components", logger.Fields(logger.FieldCount, len(r.slots)))
	for _, s := range r.slots {
		d := Describe(s.component)
		fields := logger.Fields(logger.FieldComponent, s.component.Name(), "type", d.Type)
		if d.Details != "" {
			fields["details"] = d.Details
		}

		start := time.Now()
		if err := s.component.Start(ctx); err != nil {
			r.log.Error("Component start failed", logger.MergeWithError(fields, err))
			r.rollback()
			return fmt.Errorf("failed to start %s: %w", s.component.Name(), err)
		}
		s.started = true
		fields[logger.FieldDuration] = time.Since(start).Milliseconds()
		r.log.Debug("Component started", fields)
	}
	return nil
}

// rollback runs with r.mu held.
func (r *Registry) rollback() {
	if err := r.stopStarted(context.Background()); err != nil {
		r.log.Warn("Rollback finished with errors", logger.ErrorFields("rollback", err))
	}
}

// StopAll stops started components in reverse order and joins their errors.
// Components that were never started, or were rolled back, are skipped.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("Stopping components")
	return r.stopStarted(ctx)
}

func (r *Registry) stopStarted(ctx context.Context) error {
	var errs []error
	for i := len(r.slots) - 1; i >= 0; i-- {
		s := r.slots[i]
		if !s.started {
			continue
		}
		name := s.component.Name()
		stopCtx, cancel := context.WithTimeout(ctx, r.stopTimeout)
		err := s.component.Stop(stopCtx)
		cancel()
		s.started = false

		if err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
			r.log.Error("Component stop failed", logger.MergeWithError(logger.Fields(logger.FieldComponent, name), err))
			continue
		}
		r.log.Debug("Component stopped", logger.Fields(logger.FieldComponent, name))
	}
	return errors.Join(errs...)
}

// HealthAll reports every component in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.component.Health(ctx)
	}
	return out
}

// Get returns the component registered as name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.byName[name]; ok {
		return s.component
	}
	return nil
}

// All returns the components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Component, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.component
	}
	return out
}
