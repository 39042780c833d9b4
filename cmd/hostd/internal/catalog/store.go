package catalog

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/kbukum/hostkit/errors"
)

// StoreKey is the container key the store is registered under.
const StoreKey = "catalog.store"

// Foo is a catalog entry.
type Foo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps foos in insertion order.
type Store struct {
	mu    sync.RWMutex
	foos  map[string]Foo
	order []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{foos: make(map[string]Foo)}
}

// Create adds a foo with a fresh ID.
func (s *Store) Create(name string) Foo {
	foo := Foo{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.foos[foo.ID] = foo
	s.order = append(s.order, foo.ID)
	return foo
}

// Get returns the foo with id or a NOT_FOUND error.
func (s *Store) Get(id string) (Foo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	foo, ok := s.foos[id]
	if !ok {
		return Foo{}, apperrors.NotFound("foo", id)
	}
	return foo, nil
}

// List returns all foos in insertion order.
func (s *Store) List() []Foo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Foo, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.foos[id])
	}
	return out
}

// Len returns the number of foos.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
