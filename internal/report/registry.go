// Package report is the reporting sink of the engine: it keeps the latest
// result per component, formats results as labelled groups, and renders the
// aggregate report.
package report

import (
	"sort"
	"sync"

	"gridkit/internal/validator"
)

// Registry maps component names to their most recent validation result.
// Duplicate names overwrite; nothing is merged. A Registry is owned by the
// host and injected where needed; it is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	results map[string]validator.Result
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{results: make(map[string]validator.Result)}
}

// Record stores r as the latest result for name.
func (r *Registry) Record(name string, res validator.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[name] = res
}

// Get returns the latest result for name.
func (r *Registry) Get(name string) (validator.Result, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.results[name]
	return res, ok
}

// Names returns the registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.results))
	for n := range r.results {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the registry contents.
func (r *Registry) Snapshot() map[string]validator.Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]validator.Result, len(r.results))
	for k, v := range r.results {
		out[k] = v
	}
	return out
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.results)
}

// Reset forgets every registration.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = make(map[string]validator.Result)
}

// Totals sums message counts across all components.
func (r *Registry) Totals() (errors, warnings, suggestions int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, res := range r.results {
		errors += len(res.Errors)
		warnings += len(res.Warnings)
		suggestions += len(res.Suggestions)
	}
	return errors, warnings, suggestions
}
