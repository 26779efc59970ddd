package dispatcher

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/dshills/layerkeys/internal/dispatcher/handler"
)

// Registry maps action names to handlers. It is filled once at startup
// and then sealed; after Seal every registration fails with
// ErrRegistrySealed, so the action set is fixed for the process lifetime.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string][]handler.Handler // sorted by priority, highest first
	router   *Router
	sealed   bool
}

// NewRegistry creates an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string][]handler.Handler),
		router:   NewRouter(),
	}
}

// Register adds a handler for an exact action name.
// Multiple handlers may share a name; the highest priority one wins.
func (r *Registry) Register(actionName string, h handler.Handler) error {
	if actionName == "" || h == nil {
		return fmt.Errorf("%w: empty name or nil handler", ErrInvalidAction)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("%w: registering %s", ErrRegistrySealed, actionName)
	}

	handlers := append(r.handlers[actionName], h)
	sort.SliceStable(handlers, func(i, j int) bool {
		return handlers[i].Priority() > handlers[j].Priority()
	})
	r.handlers[actionName] = handlers
	return nil
}

// RegisterFunc registers a function for an exact action name.
func (r *Registry) RegisterFunc(actionName string, fn handler.ActionFunc) error {
	return r.Register(actionName, handler.NewHandlerFunc(fn))
}

// RegisterNamespace registers a handler for every action in its namespace.
func (r *Registry) RegisterNamespace(h handler.NamespaceHandler) error {
	if h == nil || h.Namespace() == "" {
		return fmt.Errorf("%w: namespace handler without a namespace", ErrInvalidAction)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("%w: registering namespace %s", ErrRegistrySealed, h.Namespace())
	}
	r.router.RegisterNamespace(h)
	return nil
}

// Seal freezes the registry. Sealing twice is harmless.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Lookup returns the handler for an action, or nil if none is registered.
// Namespace handlers are consulted before exact registrations.
func (r *Registry) Lookup(actionName string) handler.Handler {
	if h := r.router.Route(actionName); h != nil {
		return h
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if handlers := r.handlers[actionName]; len(handlers) > 0 {
		return handlers[0]
	}
	return nil
}

// Has returns true if a handler is registered for the action.
func (r *Registry) Has(actionName string) bool {
	return r.Lookup(actionName) != nil
}

// Actions returns every invocable action name, sorted and without duplicates.
func (r *Registry) Actions() []string {
	names := r.router.Actions()

	r.mu.RLock()
	for name := range r.handlers {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return slices.Compact(names)
}

// Namespaces returns the registered namespace names.
func (r *Registry) Namespaces() []string {
	return r.router.Namespaces()
}
