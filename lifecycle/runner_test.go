package lifecycle

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/kbukum/hostkit/component"
	"github.com/kbukum/hostkit/di"
	apperrors "github.com/kbukum/hostkit/errors"
	"github.com/kbukum/hostkit/logger"
	"github.com/kbukum/hostkit/testutil"
)

// unitOfWork is a scoped resource that records when it is closed.
type unitOfWork struct {
	id     int
	closed bool
}

func (u *unitOfWork) Close() error {
	u.closed = true
	return nil
}

func newTestRunner(c di.Container, opts ...Option) *Runner {
	return NewRunner(c, append([]Option{WithLogger(logger.NewNop())}, opts...)...)
}

// scopedContainer registers a scoped unitOfWork and returns every instance built.
func scopedContainer(t *testing.T) (di.Container, *[]*unitOfWork) {
	t.Helper()
	var built []*unitOfWork
	c := di.NewContainer()
	if err := c.RegisterScoped("uow", func() *unitOfWork {
		u := &unitOfWork{id: len(built) + 1}
		built = append(built, u)
		return u
	}); err != nil {
		t.Fatalf("RegisterScoped failed: %v", err)
	}
	return c, &built
}

func uowAction(body func(ctx context.Context, u *unitOfWork) error) Factory {
	return func(r di.Resolver) (StartupAction, error) {
		u, err := di.Resolve[*unitOfWork](r, "uow")
		if err != nil {
			return nil, err
		}
		return StartupActionFunc(func(ctx context.Context) error {
			return body(ctx, u)
		}), nil
	}
}

func TestRunnerRunsInOrder(t *testing.T) {
	rec := &testutil.Recorder{}
	r := newTestRunner(nil, WithActions(rec.Action("a", nil), rec.Action("b", nil)))
	r.Add(rec.Action("c", nil))

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if fmt.Sprint(rec.Calls()) != "[a b c]" {
		t.Errorf("expected [a b c], got %v", rec.Calls())
	}
}

func TestRunnerNoActions(t *testing.T) {
	r := newTestRunner(nil)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("expected empty runner to start, got %v", err)
	}
}

func TestRunnerSequential(t *testing.T) {
	running := 0
	maxRunning := 0
	slow := StartupActionFunc(func(ctx context.Context) error {
		running++
		if running > maxRunning {
			maxRunning = running
		}
		time.Sleep(5 * time.Millisecond)
		running--
		return nil
	})
	r := newTestRunner(nil, WithActions(slow, slow, slow))

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if maxRunning != 1 {
		t.Errorf("expected actions to run one at a time, saw %d concurrently", maxRunning)
	}
}

func TestRunnerStopsAtFirstFailure(t *testing.T) {
	rec := &testutil.Recorder{}
	boom := fmt.Errorf("migration failed")
	r := newTestRunner(nil, WithActions(
		rec.Action("a", nil),
		rec.Action("b", boom),
		rec.Action("c", nil),
	))

	err := r.Start(context.Background())
	if err == nil {
		t.Fatal("expected error from Start")
	}
	if fmt.Sprint(rec.Calls()) != "[a b]" {
		t.Errorf("expected c not to run, got %v", rec.Calls())
	}
	if !stderrors.Is(err, boom) {
		t.Errorf("expected error to wrap %v, got %v", boom, err)
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrCodeStartupFailed {
		t.Errorf("expected STARTUP_FAILED, got %s", appErr.Code)
	}
	if appErr.Details["action"] != "b" {
		t.Errorf("expected failing action 'b', got %v", appErr.Details["action"])
	}
}

func TestRunnerScopeClosedOnSuccess(t *testing.T) {
	c, built := scopedContainer(t)
	r := newTestRunner(c)
	r.AddScoped("check", uowAction(func(ctx context.Context, u *unitOfWork) error {
		if u.closed {
			return fmt.Errorf("scope closed before action ran")
		}
		return nil
	}))

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(*built) != 1 || !(*built)[0].closed {
		t.Errorf("expected one closed unit of work, got %+v", *built)
	}
}

func TestRunnerScopeClosedOnFailure(t *testing.T) {
	c, built := scopedContainer(t)
	r := newTestRunner(c)
	r.AddScoped("fail", uowAction(func(ctx context.Context, u *unitOfWork) error {
		return fmt.Errorf("nope")
	}))

	if err := r.Start(context.Background()); err == nil {
		t.Fatal("expected error from Start")
	}
	if len(*built) != 1 || !(*built)[0].closed {
		t.Errorf("expected scope closed after failure, got %+v", *built)
	}
}

func TestRunnerScopeClosedOnCancellation(t *testing.T) {
	c, built := scopedContainer(t)
	ctx, cancel := context.WithCancel(context.Background())
	r := newTestRunner(c)
	r.AddScoped("wait", uowAction(func(ctx context.Context, u *unitOfWork) error {
		cancel()
		<-ctx.Done()
		return ctx.Err()
	}))

	err := r.Start(ctx)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(*built) != 1 || !(*built)[0].closed {
		t.Errorf("expected scope closed after cancellation, got %+v", *built)
	}
}

func TestRunnerScopedActionsShareScope(t *testing.T) {
	c, built := scopedContainer(t)
	var seen []int
	record := func(ctx context.Context, u *unitOfWork) error {
		seen = append(seen, u.id)
		return nil
	}
	r := newTestRunner(c)
	r.AddScoped("first", uowAction(record))
	r.AddScoped("second", uowAction(record))

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if fmt.Sprint(seen) != "[1 1]" {
		t.Errorf("expected both actions to share unit of work 1, got %v", seen)
	}

	// A second run gets a fresh scope.
	seen = nil
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}
	if fmt.Sprint(seen) != "[2 2]" {
		t.Errorf("expected a fresh unit of work, got %v", seen)
	}
	if len(*built) != 2 {
		t.Errorf("expected 2 scopes, got %d", len(*built))
	}
}

func TestRunnerFactoryErrorStopsBeforeAnyAction(t *testing.T) {
	rec := &testutil.Recorder{}
	r := newTestRunner(nil, WithActions(rec.Action("a", nil)))
	r.AddScoped("broken", func(di.Resolver) (StartupAction, error) {
		return nil, fmt.Errorf("missing dependency")
	})

	err := r.Start(context.Background())
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeScopeResolution {
		t.Fatalf("expected SCOPE_RESOLUTION_FAILED, got %v", err)
	}
	if len(rec.Calls()) != 0 {
		t.Errorf("expected no action to run, got %v", rec.Calls())
	}
}

func TestRunnerFactoryNilAction(t *testing.T) {
	r := newTestRunner(nil)
	r.AddScoped("nil", func(di.Resolver) (StartupAction, error) { return nil, nil })
	if err := r.Start(context.Background()); err == nil {
		t.Error("expected error for nil action")
	}
}

func TestRunnerStopAlwaysNil(t *testing.T) {
	r := newTestRunner(nil, WithActions(StartupActionFunc(func(ctx context.Context) error {
		return fmt.Errorf("fail")
	})))

	if err := r.Stop(context.Background()); err != nil {
		t.Errorf("expected nil before Start, got %v", err)
	}
	r.Start(context.Background())
	if err := r.Stop(context.Background()); err != nil {
		t.Errorf("expected nil after failed Start, got %v", err)
	}
}

func TestRunnerTimeout(t *testing.T) {
	r := newTestRunner(nil, WithTimeout(10*time.Millisecond), WithActions(StartupActionFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})))

	err := r.Start(context.Background())
	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	startErr, ok := apperrors.AsAppError(err)
	if !ok || startErr.Code != apperrors.ErrCodeStartupFailed {
		t.Fatalf("expected STARTUP_FAILED, got %v", err)
	}
	if cause, ok := apperrors.AsAppError(startErr.Cause); !ok || cause.Code != apperrors.ErrCodeTimeout {
		t.Errorf("expected TIMEOUT cause, got %v", startErr.Cause)
	}
}

func TestRunnerActionDeadlineIsNotRunnerTimeout(t *testing.T) {
	r := newTestRunner(nil, WithTimeout(time.Minute), WithActions(StartupActionFunc(func(ctx context.Context) error {
		dctx, cancel := context.WithTimeout(ctx, time.Millisecond)
		defer cancel()
		<-dctx.Done()
		return dctx.Err()
	})))

	err := r.Start(context.Background())
	startErr, ok := apperrors.AsAppError(err)
	if !ok || startErr.Code != apperrors.ErrCodeStartupFailed {
		t.Fatalf("expected STARTUP_FAILED, got %v", err)
	}
	if cause, ok := apperrors.AsAppError(startErr.Cause); ok && cause.Code == apperrors.ErrCodeTimeout {
		t.Errorf("expected the action's own deadline to pass through, got %v", startErr.Cause)
	}
	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestRunnerDisabled(t *testing.T) {
	rec := &testutil.Recorder{}
	cfg := DefaultConfig()
	cfg.Enabled = false
	r := newTestRunner(nil, WithConfig(cfg), WithActions(rec.Action("a", nil)))

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(rec.Calls()) != 0 {
		t.Errorf("expected no actions when disabled, got %v", rec.Calls())
	}
	if h := r.Health(context.Background()); h.Message != "disabled" {
		t.Errorf("expected 'disabled', got %q", h.Message)
	}
}

func TestRunnerHealth(t *testing.T) {
	r := newTestRunner(nil, WithActions(StartupActionFunc(func(ctx context.Context) error {
		return fmt.Errorf("cache offline")
	})))

	h := r.Health(context.Background())
	if h.Status != component.StatusHealthy || h.Message != "pending" {
		t.Errorf("expected healthy/pending before Start, got %+v", h)
	}

	r.Start(context.Background())
	h = r.Health(context.Background())
	if h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy after failure, got %s", h.Status)
	}
	if h.Name != "startup-actions" {
		t.Errorf("expected name 'startup-actions', got %q", h.Name)
	}
	if r.RunID() == "" {
		t.Error("expected run id after Start")
	}
}

func TestRunnerAddAfterStartIgnored(t *testing.T) {
	rec := &testutil.Recorder{}
	r := newTestRunner(nil, WithActions(rec.Action("a", nil)))
	r.Start(context.Background())
	r.Add(rec.Action("late", nil))

	if r.Len() != 1 {
		t.Errorf("expected 1 action, got %d", r.Len())
	}
}

func TestRunnerNamesAndDescribe(t *testing.T) {
	r := newTestRunner(nil, WithActions(
		Named("migrate", StartupActionFunc(func(context.Context) error { return nil })),
		StartupActionFunc(func(context.Context) error { return nil }),
	))
	r.AddScoped("warm", func(di.Resolver) (StartupAction, error) { return nil, nil })

	want := "[migrate lifecycle.StartupActionFunc warm]"
	if got := fmt.Sprint(r.Names()); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	d := r.Describe()
	if d.Type != "lifecycle" || d.Details != "3 actions" {
		t.Errorf("unexpected description: %+v", d)
	}
}

func TestRunnerAsComponent(t *testing.T) {
	var order []string
	reg := component.NewRegistry()
	r := newTestRunner(nil, WithActions(StartupActionFunc(func(context.Context) error {
		order = append(order, "action")
		return nil
	})))
	reg.Register(r)

	if err := reg.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := reg.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if fmt.Sprint(order) != "[action]" {
		t.Errorf("expected action to run once, got %v", order)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
	cfg.Timeout = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative timeout")
	}
}
