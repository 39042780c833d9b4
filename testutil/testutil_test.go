package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/kbukum/hostkit/component"
)

type fakeComponent struct {
	started bool
	stopped bool
}

func (f *fakeComponent) Name() string { return "fake" }
func (f *fakeComponent) Start(ctx context.Context) error {
	f.started = true
	return nil
}
func (f *fakeComponent) Stop(ctx context.Context) error {
	f.stopped = true
	return nil
}
func (f *fakeComponent) Health(ctx context.Context) component.Health {
	return component.Health{Name: "fake", Status: component.StatusHealthy}
}

func TestStartStopsOnCleanup(t *testing.T) {
	c := &fakeComponent{}
	t.Run("inner", func(t *testing.T) {
		Start(t, c)
		if !c.started {
			t.Error("expected component started")
		}
		if c.stopped {
			t.Error("expected component still running inside the test")
		}
	})
	if !c.stopped {
		t.Error("expected component stopped after the test")
	}
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	a := rec.Action("a", nil)
	b := rec.Action("b", fmt.Errorf("boom"))

	if a.Name() != "a" {
		t.Errorf("expected name 'a', got %q", a.Name())
	}
	if err := a.OnStartup(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := b.OnStartup(context.Background()); err == nil {
		t.Error("expected error from b")
	}
	if fmt.Sprint(rec.Calls()) != "[a b]" {
		t.Errorf("expected [a b], got %v", rec.Calls())
	}
}

func TestSinkMergesFields(t *testing.T) {
	s := &Sink{}
	s.Info("report", map[string]interface{}{"count": 2}, map[string]interface{}{"phase": "startup"})

	records := s.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Fields["count"] != 2 || records[0].Fields["phase"] != "startup" {
		t.Errorf("unexpected fields %v", records[0].Fields)
	}
	if fmt.Sprint(s.Messages()) != "[report]" {
		t.Errorf("unexpected messages %v", s.Messages())
	}
}
