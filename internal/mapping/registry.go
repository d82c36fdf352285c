package mapping

import (
	"sort"
	"sync"
)

// Registry holds one Store per scope, typically one per imported dataset.
type Registry struct {
	mu     sync.Mutex
	opts   Options
	stores map[string]*Store
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts, stores: make(map[string]*Store)}
}

// LoadOrStore returns the store for scope. On first use it calls load and
// keeps the result; a nil load, or a load returning a nil store, starts an
// empty store. The registry lock is held across load, so concurrent callers
// share one store.
func (r *Registry) LoadOrStore(scope string, load func() (*Store, error)) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[scope]; ok {
		return s, nil
	}

	var s *Store
	if load != nil {
		var err error
		if s, err = load(); err != nil {
			return nil, err
		}
	}
	if s == nil {
		s = NewStore(r.opts)
	}
	r.stores[scope] = s
	return s, nil
}

// Drop forgets the store for scope.
func (r *Registry) Drop(scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, scope)
}

// Scopes returns the known scope IDs in sorted order.
func (r *Registry) Scopes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.stores))
	for k := range r.stores {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
