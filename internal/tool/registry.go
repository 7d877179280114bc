package tool

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateTool is returned when two specs share a name.
var ErrDuplicateTool = errors.New("duplicate tool name")

// Registry holds the tools exposed to the coordinator. Registration
// happens once at process initialization; there is no dynamic removal.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Spec
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Spec)}
}

// Register adds a spec. Name collisions fail with ErrDuplicateTool.
func (r *Registry) Register(s *Spec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[s.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, s.Name)
	}
	r.tools[s.Name] = s
	r.order = append(r.order, s.Name)
	return nil
}

// Get returns a spec by name.
func (r *Registry) Get(name string) (*Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.tools[name]
	return s, ok
}

// All returns the registered specs in registration order.
func (r *Registry) All() []*Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Spec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Names returns all tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
