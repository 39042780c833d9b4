package lifecycle

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/hostkit/component"
	"github.com/kbukum/hostkit/di"
	apperrors "github.com/kbukum/hostkit/errors"
	"github.com/kbukum/hostkit/logger"
	"github.com/kbukum/hostkit/observability"
)

const componentName = "startup-actions"

type runState int

const (
	statePending runState = iota
	stateSucceeded
	stateFailed
	stateDisabled
)

// entry is one registered action: either a ready instance or a factory
// resolved from the run scope.
type entry struct {
	name    string
	action  StartupAction
	factory Factory
}

func (e entry) resolve(r di.Resolver) (StartupAction, error) {
	if e.factory == nil {
		return e.action, nil
	}
	action, err := e.factory(r)
	if err != nil {
		return nil, apperrors.ScopeResolution(e.name, err)
	}
	if action == nil {
		return nil, apperrors.ScopeResolution(e.name, fmt.Errorf("factory returned a nil action"))
	}
	return action, nil
}

// Runner executes startup actions sequentially when started.
type Runner struct {
	container di.Container
	entries   []entry
	log       *logger.Logger
	timeout   time.Duration
	metrics   *observability.StartupMetrics
	disabled  bool

	mu      sync.RWMutex
	started bool
	state   runState
	lastErr error
	runID   string
}

var (
	_ component.Component   = (*Runner)(nil)
	_ component.Describable = (*Runner)(nil)
)

// NewRunner creates a runner whose scopes come from container. A nil
// container gets an empty one.
func NewRunner(container di.Container, opts ...Option) *Runner {
	if container == nil {
		container = di.NewContainer()
	}
	r := &Runner{
		container: container,
		log:       logger.WithComponent(componentName),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		m, err := observability.NewStartupMetrics(observability.Meter(componentName))
		if err != nil {
			r.log.Warn("startup metrics unavailable", logger.ErrorFields("create_metrics", err))
		}
		r.metrics = m
	}
	return r
}

// Add appends actions to the sequence. Actions added after Start are ignored.
func (r *Runner) Add(actions ...StartupAction) *Runner {
	for _, a := range actions {
		r.append(entry{name: ActionName(a), action: a})
	}
	return r
}

// AddScoped appends an action built by factory from each run's scope.
func (r *Runner) AddScoped(name string, factory Factory) *Runner {
	r.append(entry{name: name, factory: factory})
	return r
}

func (r *Runner) append(e entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		r.log.Warn("runner already started, action ignored", logger.Fields(logger.FieldAction, e.name))
		return
	}
	r.entries = append(r.entries, e)
}

// Len returns the number of registered actions.
func (r *Runner) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Names returns the registered action names in execution order.
func (r *Runner) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// Name implements component.Component.
func (r *Runner) Name() string { return componentName }

// Start runs every action in registration order inside a fresh scope. It
// returns the first failure; later actions do not run.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	r.started = true
	entries := make([]entry, len(r.entries))
	copy(entries, r.entries)
	r.mu.Unlock()

	if r.disabled {
		r.log.Info("startup actions disabled", logger.Fields(logger.FieldCount, len(entries)))
		r.finish("", stateDisabled, nil)
		return nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	runID := uuid.NewString()
	ctx = logger.ContextWithRunID(ctx, runID)
	ctx, span := observability.StartSpan(ctx, observability.SpanStartupRun, trace.WithAttributes(
		attribute.String(observability.AttrRunID, runID),
		attribute.Int("startup.count", len(entries)),
	))
	defer span.End()

	log := r.log.WithContext(ctx)
	log.Info("running startup actions", logger.Fields(logger.FieldCount, len(entries)))

	start := time.Now()
	err := r.run(ctx, entries, log)
	if err != nil {
		observability.SetSpanError(ctx, err)
		r.finish(runID, stateFailed, err)
		return err
	}

	log.Info("startup actions completed", logger.DurationFields("run", time.Since(start)))
	r.finish(runID, stateSucceeded, nil)
	return nil
}

func (r *Runner) run(ctx context.Context, entries []entry, log *logger.Logger) (err error) {
	scope := r.container.NewScope()
	defer func() {
		if cerr := scope.Close(); cerr != nil {
			log.Warn("closing startup scope failed", logger.ErrorFields("close_scope", cerr))
			if err == nil {
				err = fmt.Errorf("closing startup scope: %w", cerr)
			}
		}
	}()

	actions := make([]StartupAction, len(entries))
	for i, e := range entries {
		a, rerr := e.resolve(scope)
		if rerr != nil {
			log.Error("resolving startup action failed", logger.MergeWithError(
				logger.Fields(logger.FieldAction, e.name), rerr))
			return rerr
		}
		actions[i] = a
	}

	for i, a := range actions {
		if err := r.invoke(ctx, i, entries[i].name, a, log); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) invoke(ctx context.Context, index int, name string, action StartupAction, log *logger.Logger) error {
	actx, span := observability.StartSpan(ctx, observability.SpanStartupAction, trace.WithAttributes(
		attribute.String(observability.AttrAction, name),
		attribute.Int(observability.AttrIndex, index),
	))
	defer span.End()

	fields := logger.Fields(logger.FieldAction, name, "index", index)
	log.Debug("startup action started", fields)

	start := time.Now()
	err := action.OnStartup(actx)
	elapsed := time.Since(start)
	fields[logger.FieldDuration] = elapsed.Milliseconds()

	if err != nil {
		observability.SetSpanError(actx, err)
		r.metrics.RecordAction(ctx, name, observability.StatusError, elapsed)
		log.Error("startup action failed", logger.MergeWithError(fields, err))
		if r.timeout > 0 && stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = apperrors.Timeout(componentName).WithCause(err)
		}
		return apperrors.StartupFailed(name, err)
	}

	r.metrics.RecordAction(ctx, name, observability.StatusOK, elapsed)
	log.Info("startup action completed", fields)
	return nil
}

func (r *Runner) finish(runID string, state runState, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runID = runID
	r.state = state
	r.lastErr = err
}

// Stop implements component.Component. Startup actions have nothing to undo,
// so it always returns nil.
func (r *Runner) Stop(ctx context.Context) error {
	return nil
}

// Health reports the outcome of the last run. A runner that has not run yet
// is healthy.
func (r *Runner) Health(ctx context.Context) component.Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h := component.Health{Name: componentName, Status: component.StatusHealthy}
	switch r.state {
	case statePending:
		h.Message = "pending"
	case stateSucceeded:
		h.Message = fmt.Sprintf("%d actions completed", len(r.entries))
	case stateDisabled:
		h.Message = "disabled"
	case stateFailed:
		h.Status = component.StatusUnhealthy
		h.Message = r.lastErr.Error()
	}
	return h
}

// Describe implements component.Describable.
func (r *Runner) Describe() component.Description {
	return component.Description{
		Name:    "Startup Actions",
		Type:    "lifecycle",
		Details: fmt.Sprintf("%d actions", r.Len()),
	}
}

// RunID returns the id of the last run, or "" before the first run.
func (r *Runner) RunID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.runID
}
