package hakoniwa

import (
	"fmt"
	"reflect"
	"unsafe"
)

// ComponentID is a unique identifier for a component type within a Registry.
// It doubles as the bit index of the type in archetype masks.
type ComponentID uint8

// compSpec bundles a component type's ID, reflect.Type and size.
type compSpec struct {
	typ  reflect.Type
	size uintptr
	id   ComponentID
}

// Registry is the ordered set of component types a World stores. It is built
// once, before world construction, and sealed by NewWorld; the mapping from
// type to ID, bit and size is O(1) afterwards.
type Registry struct {
	typeToID map[reflect.Type]ComponentID
	types    []reflect.Type
	sizes    [MaxComponentTypes]uintptr
	sealed   bool
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{
		typeToID: make(map[reflect.Type]ComponentID, 16),
	}
}

// Register registers a component type and returns its ID. Registering the
// same type twice returns the existing ID. It panics if the registry has been
// sealed by a World or if the maximum number of component types is exceeded.
func Register[T any](r *Registry) ComponentID {
	var zero T
	compType := reflect.TypeOf(zero)
	if id, ok := r.typeToID[compType]; ok {
		return id
	}
	if r.sealed {
		panic(fmt.Sprintf("ecs: cannot register component %s: registry is sealed", compType))
	}
	if len(r.types) >= MaxComponentTypes {
		panic(fmt.Sprintf("ecs: cannot register component %s: maximum number of component types (%d) reached", compType, MaxComponentTypes))
	}
	id := ComponentID(len(r.types))
	r.typeToID[compType] = id
	r.types = append(r.types, compType)
	r.sizes[id] = unsafe.Sizeof(zero)
	return id
}

// GetID returns the ComponentID for a registered component type.
// It panics if the type has not been registered.
func GetID[T any](r *Registry) ComponentID {
	var zero T
	typ := reflect.TypeOf(zero)
	id, ok := r.typeToID[typ]
	if !ok {
		panic(fmt.Sprintf("ecs: component type %s not registered", typ))
	}
	return id
}

// TryGetID returns the ComponentID for a component type and whether it was
// found. It does not panic for unregistered types.
func TryGetID[T any](r *Registry) (ComponentID, bool) {
	var zero T
	typ := reflect.TypeOf(zero)
	id, ok := r.typeToID[typ]
	return id, ok
}

// Len returns the number of registered component types.
func (r *Registry) Len() int {
	return len(r.types)
}

// SizeOf returns the byte size of the component identified by a single-bit
// mask. It panics if the bit does not name a registered component.
func (r *Registry) SizeOf(bit Mask) uintptr {
	idx := bitIndex(bit)
	if idx >= len(r.types) {
		panic(fmt.Sprintf("ecs: component bit %d not registered", idx))
	}
	return r.sizes[idx]
}

// typeName returns the display name of a registered component type.
func (r *Registry) typeName(id ComponentID) string {
	return r.types[id].String()
}

// specFor builds the spec for one registered component.
func (r *Registry) specFor(id ComponentID) compSpec {
	return compSpec{typ: r.types[id], size: r.sizes[id], id: id}
}

// specsForMask builds the ordered spec list for every set bit of mask.
// It panics if mask names a bit outside the registered range.
func (r *Registry) specsForMask(mask Mask) []compSpec {
	specs := make([]compSpec, 0, mask.popcount())
	for rest := mask; rest != 0; rest &= rest - 1 {
		idx := bitIndex(rest)
		if idx >= len(r.types) {
			panic(fmt.Sprintf("ecs: component bit %d not registered", idx))
		}
		specs = append(specs, r.specFor(ComponentID(idx)))
	}
	return specs
}

// seal freezes the registry. Called by NewWorld.
func (r *Registry) seal() {
	r.sealed = true
}
