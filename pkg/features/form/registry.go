package form

import (
	"sort"
	"sync"
)

// Registry maps mounted field names to their rules.
// Registering a name again replaces its rules.
type Registry struct {
	mu    sync.RWMutex
	rules map[string][]Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string][]Rule)}
}

// Register sets the rules for name. The slice is copied.
func (r *Registry) Register(name string, rules []Rule) {
	cp := make([]Rule, len(rules))
	copy(cp, rules)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[name] = cp
}

// Unregister removes name and reports whether it was registered.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rules[name]
	delete(r.rules, name)
	return ok
}

// Rules returns the rules registered for name.
func (r *Registry) Rules(name string) ([]Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules, ok := r.rules[name]
	return rules, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rules[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
