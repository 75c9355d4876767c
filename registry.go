package kpuzzle

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps puzzle names to definitions. It is filled once at startup
// and passed explicitly to whatever needs to look puzzles up.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*PuzzleDefinition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*PuzzleDefinition)}
}

// DefaultRegistry creates a registry holding the built-in puzzles.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range []*PuzzleDefinition{Cube2x2x2(), Cube3x3x3()} {
		if err := r.Register(def); err != nil {
			// Built-in data is covered by tests
			panic(err)
		}
	}
	return r
}

// Register validates def and adds it under def.Name.
func (r *Registry) Register(def *PuzzleDefinition) error {
	if err := ValidateDefinition(def); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[def.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDefinition, def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (*PuzzleDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	if !ok {
		return nil, &MissingDefinitionError{Name: name}
	}
	return def, nil
}

// Names returns the registered puzzle names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSession looks up name and starts a session on it.
func (r *Registry) NewSession(name string, opts ...Option) (*Session, error) {
	def, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return NewSession(def, opts...), nil
}
