package schema

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"
)

//go:embed vegetation_ca.yaml
var vegetationCAYAML []byte

// VegetationCA is the name of the built-in vegetation cellular automaton schema.
const VegetationCA = "vegetation-ca"

// Registry manages available schemas
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry creates a new schema registry
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]*Schema),
	}
}

// Register adds a schema to the registry under its name
func (r *Registry) Register(s *Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[s.Name]; exists {
		return fmt.Errorf("schema %s already registered", s.Name)
	}

	r.schemas[s.Name] = s
	return nil
}

// Get returns the schema registered as name
func (r *Registry) Get(name string) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.schemas[name]
	if !exists {
		return nil, fmt.Errorf("schema %s not found", name)
	}

	return s, nil
}

// List returns all registered schema names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a fresh copy of the embedded vegetation CA schema.
func Builtin() (*Schema, error) {
	s, err := Parse(vegetationCAYAML)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded schema: %w", err)
	}
	return s, nil
}

// BuiltinYAML returns the raw embedded schema document.
func BuiltinYAML() []byte {
	return vegetationCAYAML
}

// DefaultRegistry is the global schema registry, seeded with the built-in schema
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	s, err := Builtin()
	if err != nil {
		panic(err)
	}
	if err := r.Register(s); err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the schema named ref from the default registry, or loads ref as a
// YAML file when no schema of that name is registered.
func Resolve(ref string) (*Schema, error) {
	if s, err := DefaultRegistry.Get(ref); err == nil {
		return s, nil
	}
	s, err := Load(ref)
	if err != nil {
		return nil, fmt.Errorf("schema %s is neither registered nor a readable file: %w", ref, err)
	}
	return s, nil
}
