package catalog

import (
	"context"

	"github.com/kbukum/hostkit/di"
	"github.com/kbukum/hostkit/lifecycle"
)

// SeedAction fills an empty store with the configured names.
type SeedAction struct {
	store *Store
	names []string
}

var _ lifecycle.StartupAction = (*SeedAction)(nil)

// NewSeedAction creates a seed action for store.
func NewSeedAction(store *Store, names ...string) *SeedAction {
	return &SeedAction{store: store, names: names}
}

// Name implements the naming used in startup logs.
func (a *SeedAction) Name() string { return "seed-foos" }

// OnStartup creates one foo per name unless the store already holds data.
func (a *SeedAction) OnStartup(ctx context.Context) error {
	if a.store.Len() > 0 {
		return nil
	}
	for _, name := range a.names {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.store.Create(name)
	}
	return nil
}

// SeedFactory builds a SeedAction from the store registered under StoreKey
// in the run scope.
func SeedFactory(names ...string) lifecycle.Factory {
	return func(r di.Resolver) (lifecycle.StartupAction, error) {
		store, err := di.Resolve[*Store](r, StoreKey)
		if err != nil {
			return nil, err
		}
		return NewSeedAction(store, names...), nil
	}
}
