package di

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/kbukum/hostkit/logger"
)

// RegistrationMode says when a registration's instance is built and how
// long it lives.
type RegistrationMode int

const (
	Eager     RegistrationMode = iota // built by RegisterEager
	Lazy                              // built on first Resolve, then shared
	Singleton                         // supplied ready-made
	Scoped                            // built once per Scope
)

var modeNames = [...]string{Eager: "eager", Lazy: "lazy", Singleton: "singleton", Scoped: "scoped"}

func (m RegistrationMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Resolver is implemented by Container and Scope.
type Resolver interface {
	Resolve(key string) (interface{}, error)
}

// Container holds keyed registrations. Constructors are functions taking
// nothing, a context.Context or a Resolver and returning the instance,
// optionally with an error.
type Container interface {
	Resolver
	Register(key string, constructor interface{}) error
	RegisterEager(key string, constructor interface{}) error
	RegisterSingleton(key string, instance interface{}) error
	RegisterScoped(key string, constructor interface{}) error

	// NewScope opens a scope whose Scoped instances are closed with it.
	NewScope() Scope

	Registrations() []RegistrationInfo

	// Close closes built Eager, Lazy and Singleton instances that have a
	// Close() error method, most recently built first.
	Close() error
}

// RegistrationInfo is one row of Registrations.
type RegistrationInfo struct {
	Key         string
	Mode        RegistrationMode
	Initialized bool
}

type entry struct {
	key   string
	mode  RegistrationMode
	build interface{}

	mu       sync.Mutex
	instance interface{}
	built    bool
}

type container struct {
	mu      sync.RWMutex
	entries map[string]*entry
	built   []*entry // build order, for Close
}

func NewContainer() Container {
	return &container{entries: make(map[string]*entry)}
}

func (c *container) put(e *entry) {
	c.mu.Lock()
	c.entries[e.key] = e
	if e.built {
		c.built = append(c.built, e)
	}
	c.mu.Unlock()
}

func (c *container) markBuilt(e *entry) {
	c.mu.Lock()
	c.built = append(c.built, e)
	c.mu.Unlock()
}

func (c *container) lookup(key string) (*entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *container) Register(key string, constructor interface{}) error {
	return c.registerConstructor(key, constructor, Lazy)
}

func (c *container) RegisterScoped(key string, constructor interface{}) error {
	return c.registerConstructor(key, constructor, Scoped)
}

func (c *container) registerConstructor(key string, constructor interface{}, mode RegistrationMode) error {
	if err := checkConstructor(constructor); err != nil {
		return fmt.Errorf("register %s: %w", key, err)
	}
	c.put(&entry{key: key, mode: mode, build: constructor})
	return nil
}

// RegisterEager builds the instance before returning.
func (c *container) RegisterEager(key string, constructor interface{}) error {
	if err := checkConstructor(constructor); err != nil {
		return fmt.Errorf("register %s: %w", key, err)
	}
	instance, err := construct(constructor, c)
	if err != nil {
		return fmt.Errorf("build eager %s: %w", key, err)
	}
	c.put(&entry{key: key, mode: Eager, build: constructor, instance: instance, built: true})
	return nil
}

func (c *container) RegisterSingleton(key string, instance interface{}) error {
	c.put(&entry{key: key, mode: Singleton, instance: instance, built: true})
	return nil
}

// Resolve refuses Scoped keys; resolve those from a Scope.
func (c *container) Resolve(key string) (interface{}, error) {
	e, ok := c.lookup(key)
	if !ok {
		return nil, fmt.Errorf("component not registered: %s", key)
	}
	if e.mode == Scoped {
		return nil, fmt.Errorf("scoped component %s must be resolved from a scope", key)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.built {
		return e.instance, nil
	}
	// A failed build is retried on the next Resolve.
	instance, err := construct(e.build, c)
	if err != nil {
		return nil, fmt.Errorf("build lazy %s: %w", key, err)
	}
	e.instance, e.built = instance, true
	c.markBuilt(e)
	logger.Debug("Lazy component built", logger.Fields(logger.FieldComponent, key))
	return instance, nil
}

func (c *container) NewScope() Scope {
	return newScope(c)
}

// Registrations is sorted by key.
func (c *container) Registrations() []RegistrationInfo {
	c.mu.RLock()
	out := make([]RegistrationInfo, 0, len(c.entries))
	for _, e := range c.entries {
		e.mu.Lock()
		out = append(out, RegistrationInfo{Key: e.key, Mode: e.mode, Initialized: e.built})
		e.mu.Unlock()
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Close closes instances in reverse build order. Instances whose key was
// registered again are skipped.
func (c *container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for i := len(c.built) - 1; i >= 0; i-- {
		e := c.built[i]
		if c.entries[e.key] != e {
			continue
		}
		if err := closeInstance(e.instance); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", e.key, err))
		}
	}
	c.built = nil
	return stderrors.Join(errs...)
}

var (
	resolverType = reflect.TypeOf((*Resolver)(nil)).Elem()
	contextType  = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

func checkConstructor(constructor interface{}) error {
	t := reflect.TypeOf(constructor)
	if t == nil || t.Kind() != reflect.Func {
		return fmt.Errorf("constructor must be a function")
	}
	switch t.NumIn() {
	case 0:
	case 1:
		if in := t.In(0); in != contextType && in != resolverType {
			return fmt.Errorf("constructor argument must be context.Context or di.Resolver, got %s", in)
		}
	default:
		return fmt.Errorf("constructor must take at most one argument")
	}
	switch t.NumOut() {
	case 1:
	case 2:
		if !t.Out(1).Implements(errorType) {
			return fmt.Errorf("constructor second result must be an error")
		}
	default:
		return fmt.Errorf("constructor must return either (instance) or (instance, error)")
	}
	return nil
}

// construct calls a checked constructor, handing r to those that take a
// Resolver.
func construct(constructor interface{}, r Resolver) (interface{}, error) {
	fn := reflect.ValueOf(constructor)
	var args []reflect.Value
	if fn.Type().NumIn() == 1 {
		if fn.Type().In(0) == contextType {
			args = append(args, reflect.ValueOf(context.Background()))
		} else {
			args = append(args, reflect.ValueOf(&r).Elem())
		}
	}
	out := fn.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}
