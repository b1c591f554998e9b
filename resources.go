package hakoniwa

import "reflect"

// Resources is the world-owned store for global singletons that systems need
// besides component data: configuration, lookup tables, random sources. At
// most one value per concrete type is held at a time.
type Resources struct {
	byType map[reflect.Type]any
}

// Add stores a resource, keyed by its concrete type. Panics on nil or when a
// resource of the same type is already present.
func (r *Resources) Add(res any) {
	if res == nil {
		panic("ecs: cannot add nil resource")
	}
	t := reflect.TypeOf(res)
	if r.byType == nil {
		r.byType = make(map[reflect.Type]any)
	}
	if _, ok := r.byType[t]; ok {
		panic("ecs: resource of type " + t.String() + " already exists")
	}
	r.byType[t] = res
}

// Clear removes every resource.
func (r *Resources) Clear() {
	clear(r.byType)
}

// HasResource checks if a resource of type *T is present.
func HasResource[T any](r *Resources) bool {
	_, ok := r.byType[reflect.TypeOf((*T)(nil))]
	return ok
}

// GetResource retrieves the resource of type *T, or nil if absent.
func GetResource[T any](r *Resources) *T {
	if res, ok := r.byType[reflect.TypeOf((*T)(nil))]; ok {
		return res.(*T)
	}
	return nil
}

// RemoveResource removes the resource of type *T if present.
func RemoveResource[T any](r *Resources) {
	delete(r.byType, reflect.TypeOf((*T)(nil)))
}
