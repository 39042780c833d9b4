package di

import "fmt"

// TypeError reports a registration whose value is not of the requested type.
type TypeError struct {
	Key  string
	Got  any
	Want string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("di: %s holds %T, not %s", e.Key, e.Got, e.Want)
}

// Resolve looks key up in a Container or Scope and asserts its type.
//
//	store, err := di.Resolve[*catalog.Store](scope, catalog.StoreKey)
func Resolve[T any](r Resolver, key string) (T, error) {
	var zero T
	v, err := r.Resolve(key)
	if err != nil {
		return zero, fmt.Errorf("di: resolve %s: %w", key, err)
	}
	t, ok := v.(T)
	if !ok {
		return zero, &TypeError{Key: key, Got: v, Want: fmt.Sprintf("%T", &zero)[1:]}
	}
	return t, nil
}

// MustResolve is Resolve for wiring code where a miss is a programming error.
func MustResolve[T any](r Resolver, key string) T {
	t, err := Resolve[T](r, key)
	if err != nil {
		panic(err)
	}
	return t
}

// TryResolve reports false instead of an error, for optional dependencies.
func TryResolve[T any](r Resolver, key string) (T, bool) {
	t, err := Resolve[T](r, key)
	return t, err == nil
}
