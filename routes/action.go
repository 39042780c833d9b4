package routes

import (
	"context"

	"github.com/kbukum/hostkit/lifecycle"
	"github.com/kbukum/hostkit/logger"
)

// Sink receives the report as a single informational record.
// *logger.Logger satisfies it.
type Sink interface {
	Info(msg string, fields ...map[string]interface{})
}

// ReportingAction is a startup action that logs every attribute-routed path
// the provider knows about.
type ReportingAction struct {
	provider Provider
	sink     Sink
}

var _ lifecycle.StartupAction = (*ReportingAction)(nil)

// NewReportingAction creates the action. A nil sink logs through the global
// logger.
func NewReportingAction(provider Provider, sink Sink) *ReportingAction {
	if sink == nil {
		sink = logger.WithComponent("routes")
	}
	return &ReportingAction{provider: provider, sink: sink}
}

// Name implements the action naming used by lifecycle.Runner.
func (a *ReportingAction) Name() string { return "route-report" }

// OnStartup builds the report and emits it. It never fails.
func (a *ReportingAction) OnStartup(ctx context.Context) error {
	var descriptors []Descriptor
	if a.provider != nil {
		descriptors = a.provider.Descriptors()
	}
	lines := Lines(descriptors)
	a.sink.Info(Render(lines), logger.Fields(logger.FieldCount, len(lines)))
	return nil
}
