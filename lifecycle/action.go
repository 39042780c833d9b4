package lifecycle

import (
	"context"
	"fmt"

	"github.com/kbukum/hostkit/di"
)

// StartupAction is work performed once while the host starts, before it
// accepts requests. Implementations must honour ctx cancellation.
type StartupAction interface {
	OnStartup(ctx context.Context) error
}

// StartupActionFunc adapts a function to StartupAction.
type StartupActionFunc func(ctx context.Context) error

// OnStartup calls f(ctx).
func (f StartupActionFunc) OnStartup(ctx context.Context) error {
	return f(ctx)
}

// Factory builds a StartupAction from the scope of a single run. Use it for
// actions that depend on scoped registrations.
type Factory func(r di.Resolver) (StartupAction, error)

// Named attaches a display name to an action for logs, spans and metrics.
func Named(name string, action StartupAction) StartupAction {
	return &namedAction{name: name, action: action}
}

type namedAction struct {
	name   string
	action StartupAction
}

func (n *namedAction) Name() string { return n.name }

func (n *namedAction) OnStartup(ctx context.Context) error {
	return n.action.OnStartup(ctx)
}

// ActionName returns the name reported for an action: its Name method when it
// has one, otherwise its dynamic type.
func ActionName(action StartupAction) string {
	if n, ok := action.(interface{ Name() string }); ok && n.Name() != "" {
		return n.Name()
	}
	return fmt.Sprintf("%T", action)
}
