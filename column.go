package hakoniwa

import "unsafe"

// Column returns the archetype's storage for component type `T` as a typed
// slice of length a.Len(). It returns false if `T` is not registered, the
// archetype lacks the component, or the archetype is empty.
//
// The slice aliases column storage and is invalidated by any operation that
// can grow the column or restructure the archetype.
func Column[T any](w *World, a *Archetype) ([]T, bool) {
	id, ok := TryGetID[T](w.registry)
	if !ok {
		return nil, false
	}
	return ColumnByBit[T](a, maskBit(id))
}

// ColumnByBit is Column with the component's bit supplied by the caller,
// skipping the registry lookup. The bit is O(1) to resolve against the
// archetype's slot table.
func ColumnByBit[T any](a *Archetype, bit Mask) ([]T, bool) {
	slot := a.slotOf(bit)
	if slot < 0 || len(a.entities) == 0 {
		return nil, false
	}
	return columnSlice[T](a, slot), true
}

// ColumnUnchecked returns the typed column without presence or emptiness
// checks. The caller must guarantee the archetype holds the component and is
// non-empty; violating either is undefined behaviour. Fastest of the three
// column views.
func ColumnUnchecked[T any](a *Archetype, bit Mask) []T {
	return columnSlice[T](a, int(a.columnByBit[bitIndex(bit)]))
}

// columnSlice views one column as []T of the archetype's row count.
func columnSlice[T any](a *Archetype, slot int) []T {
	n := len(a.entities)
	c := &a.columns[slot]
	if c.elemSize == 0 {
		// Zero-size components occupy no column bytes.
		return make([]T, n)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&c.data[0])), n)
}
