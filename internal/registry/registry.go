// Package registry provides named factory registries.
// Components register their factories in init() functions, allowing the
// platform to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknown is returned by Lookup for ids that were never registered.
var ErrUnknown = errors.New("registry: unknown id")

// Info contains metadata about a registered entry.
type Info struct {
	ID    string
	Title string
}

// Registry maps ids to factories of type F.
type Registry[F any] struct {
	kind      string
	factories map[string]F
	titles    map[string]string
	mu        sync.RWMutex
}

// New creates an empty registry. kind is used in error and panic messages.
func New[F any](kind string) *Registry[F] {
	return &Registry[F]{
		kind:      kind,
		factories: make(map[string]F),
		titles:    make(map[string]string),
	}
}

// Register adds a factory to the registry.
// Panics if a factory with the same id is already registered.
func (r *Registry[F]) Register(id, title string, f F) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("registry: %s %q already registered", r.kind, id))
	}

	r.factories[id] = f
	r.titles[id] = title
}

// List returns information about all registered entries, sorted by id.
func (r *Registry[F]) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.factories))
	for id := range r.factories {
		result = append(result, Info{
			ID:    id,
			Title: r.titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the factory registered under id.
func (r *Registry[F]) Lookup(id string) (F, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[id]
	if !ok {
		var zero F
		return zero, fmt.Errorf("%w: %s %q", ErrUnknown, r.kind, id)
	}

	return f, nil
}

// Exists checks if an entry with the given id is registered.
func (r *Registry[F]) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[id]
	return ok
}
