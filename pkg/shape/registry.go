package shape

import (
	"fmt"
	"reflect"
	"sync"
)

// Registry is a closed mapping between type names and concrete Go types.
// Whoever owns the cached types populates it at startup; names that were
// never registered fail resolution, which retrieval paths report as a
// cache miss.
//
// Element types, map key types, and named container types (e.g. a
// `type UserList []User`) are all registered the same way. Builtin
// scalar types are preregistered under their Go names.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

// NewRegistry creates a registry with the builtin scalar types already
// registered: string, bool, int, int32, int64, float32, float64.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}

	builtins := []any{"", false, int(0), int32(0), int64(0), float32(0), float64(0)}
	for _, sample := range builtins {
		t := reflect.TypeOf(sample)
		r.byName[t.Name()] = t
		r.byType[t] = t.Name()
	}

	return r
}

// Register adds a type under the given name, using sample's dynamic type.
// Registering a duplicate name or a different name for an already
// registered type is an error.
func (r *Registry) Register(name string, sample any) error {
	if name == "" {
		return fmt.Errorf("register: empty type name")
	}
	if sample == nil {
		return fmt.Errorf("register %q: nil sample", name)
	}

	t := reflect.TypeOf(sample)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[name]; ok && existing != t {
		return fmt.Errorf("register %q: name already bound to %s", name, existing)
	}
	if existing, ok := r.byType[t]; ok && existing != name {
		return fmt.Errorf("register %q: type %s already registered as %q", name, t, existing)
	}

	r.byName[name] = t
	r.byType[t] = name
	return nil
}

// Lookup resolves a registered name to its type
func (r *Registry) Lookup(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byName[name]
	return t, ok
}

// NameOf returns the registered name for a type
func (r *Registry) NameOf(t reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byType[t]
	return name, ok
}
