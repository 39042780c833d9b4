package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kbukum/hostkit/component"
	"github.com/kbukum/hostkit/di"
	"github.com/kbukum/hostkit/lifecycle"
	"github.com/kbukum/hostkit/logger"
)

// App owns the components of one host process and drives them through
// start, serve and stop. C is the host's config type.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.AddLifecycleActions().Add(migrate, warmCache)
//	app.RegisterComponent(server.NewComponent(srv))
//	err = app.Run(ctx)
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Container  di.Container
	Components *component.Registry
	Logger     *logger.Logger

	gracefulTimeout time.Duration
	lifecycleOpts   []lifecycle.Option
	runner          *lifecycle.Runner

	onConfigure []func(ctx context.Context, app *App[C]) error
	onStart     []Hook
	onReady     []Hook
	onStop      []Hook
}

const defaultGracefulTimeout = 15 * time.Second

var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// NewApp defaults and validates cfg. Without WithLogger the global logger is
// initialized from cfg's logging section.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	svc := cfg.GetServiceConfig()
	s := collect(opts)

	if s.container == nil {
		s.container = di.NewContainer()
	}
	if s.log == nil {
		logger.Init(svc.Logging)
		s.log = logger.GetGlobalLogger()
	}
	return &App[C]{
		Name:            svc.Name,
		Version:         svc.Version,
		Cfg:             cfg,
		Container:       s.container,
		Components:      component.NewRegistry(component.WithLogger(s.log)),
		Logger:          s.log,
		gracefulTimeout: s.gracefulTimeout,
		lifecycleOpts:   s.lifecycle,
	}, nil
}

// RegisterComponent appends c to the start order.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// OnConfigure runs fn after the components and OnStart hooks, for wiring
// that needs started infrastructure.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// ReadyCheck fails when any component reports something other than healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var bad []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status == component.StatusHealthy {
			continue
		}
		s := h.Name + "=" + string(h.Status)
		if h.Message != "" {
			s += " (" + h.Message + ")"
		}
		bad = append(bad, s)
	}
	if len(bad) > 0 {
		return fmt.Errorf("unhealthy components: %s", strings.Join(bad, ", "))
	}
	return nil
}

// Run starts the host and serves until ctx ends or SIGINT/SIGTERM arrives.
// A startup action failure is returned before anything serves.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}
	a.Logger.Info("Application ready")
	a.WaitForSignal(ctx)
	return a.stop()
}

// RunTask starts the host like Run, runs task and stops. A signal cancels
// the task's context. The task's error wins over a shutdown error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := signal.NotifyContext(ctx, shutdownSignals...)
	taskErr := task(taskCtx)
	cancel()

	if stopErr := a.stop(); taskErr == nil {
		return stopErr
	}
	return taskErr
}

// startup is shared by Run and RunTask.
func (a *App[C]) startup(ctx context.Context) error {
	began := time.Now()
	a.Logger.Info("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	if err := runHooks(ctx, "onStart", a.onStart); err != nil {
		return err
	}
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return fmt.Errorf("configuration failed: %w", err)
		}
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}
	if err := runHooks(ctx, "onReady", a.onReady); err != nil {
		return err
	}

	a.Logger.Info("Application started", logger.Fields(
		"components", len(a.Components.All()),
		logger.FieldDuration, time.Since(began).Milliseconds(),
	))
	return nil
}

// WaitForSignal returns the signal received, or nil when ctx ended first.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, shutdownSignals...)
	defer signal.Stop(ch)

	select {
	case sig := <-ch:
		a.Logger.Info("Received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		return nil
	}
}

// Shutdown stops the host for callers that drive startup themselves.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop runs OnStop hooks, stops components in reverse and closes the
// container, all within the graceful timeout. Every failure is reported.
func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()
	a.Logger.Info("Shutting down", logger.Fields("timeout", a.gracefulTimeout.String()))

	var errs []error
	if err := runHooks(ctx, "onStop", a.onStop); err != nil {
		errs = append(errs, err)
	}
	if err := a.Components.StopAll(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.Container.Close(); err != nil {
		errs = append(errs, fmt.Errorf("container close: %w", err))
	}

	err := errors.Join(errs...)
	if err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		return err
	}
	a.Logger.Info("Shutdown complete")
	return nil
}
