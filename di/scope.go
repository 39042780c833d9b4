package di

import (
	stderrors "errors"
	"fmt"
	"sync"

	apperrors "github.com/kbukum/hostkit/errors"
)

// Scope is a bounded resolution context. Scoped components resolve to one
// instance per scope; everything else is delegated to the parent container.
type Scope interface {
	Resolver

	// Close closes scoped instances that implement Close() error, in reverse
	// creation order. Calling Close more than once is a no-op.
	Close() error
}

// ErrScopeClosed is returned when resolving from a closed scope.
var ErrScopeClosed = stderrors.New("di: scope is closed")

type scope struct {
	parent    *container
	mu        sync.Mutex
	instances map[string]interface{}
	order     []string
	closed    bool
}

func newScope(parent *container) *scope {
	return &scope{
		parent:    parent,
		instances: make(map[string]interface{}),
	}
}

// Resolve returns the scope's instance for scoped keys and the container's
// instance for every other key.
func (s *scope) Resolve(key string) (interface{}, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrScopeClosed
	}
	if instance, ok := s.instances[key]; ok {
		s.mu.Unlock()
		return instance, nil
	}
	s.mu.Unlock()

	e, ok := s.parent.lookup(key)
	if !ok || e.mode != Scoped {
		return s.parent.Resolve(key)
	}

	// Built outside the lock so constructors can resolve other scoped keys.
	instance, err := construct(e.build, s)
	if err != nil {
		return nil, apperrors.ScopeResolution(key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		closeInstance(instance)
		return nil, ErrScopeClosed
	}
	if existing, ok := s.instances[key]; ok {
		closeInstance(instance)
		return existing, nil
	}
	s.instances[key] = instance
	s.order = append(s.order, key)
	return instance, nil
}

func (s *scope) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for i := len(s.order) - 1; i >= 0; i-- {
		key := s.order[i]
		if err := closeInstance(s.instances[key]); err != nil {
			errs = append(errs, fmt.Errorf("close scoped %s: %w", key, err))
		}
	}
	s.instances = nil
	s.order = nil
	return stderrors.Join(errs...)
}

func closeInstance(instance interface{}) error {
	if closer, ok := instance.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
