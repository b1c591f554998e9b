package hakoniwa

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// eventQueue is the untyped face of one named event buffer.
type eventQueue interface {
	clear()
	length() int
	elemType() reflect.Type
}

// typedQueue is the storage behind one event name: a FIFO slice of `T`.
type typedQueue[T any] struct {
	items []T
}

func (q *typedQueue[T]) clear() {
	q.items = q.items[:0]
}

func (q *typedQueue[T]) length() int {
	return len(q.items)
}

func (q *typedQueue[T]) elemType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterEvent declares a named event queue carrying values of type `T`.
// The event schema is fixed up front: declare every queue during world setup,
// before systems run. Registering a name twice is an error.
func RegisterEvent[T any](w *World, name string) error {
	if _, ok := w.events[name]; ok {
		return eris.Errorf("event queue %q is already registered", name)
	}
	w.events[name] = &typedQueue[T]{}
	return nil
}

// Send appends a value to the named queue. Events are not delivered anywhere;
// consumers poll the queue with EventSlice. Sending to an unknown name or
// with a type other than the queue's registered type is an error.
func Send[T any](w *World, name string, val T) error {
	q, ok := w.events[name]
	if !ok {
		return eris.Errorf("event queue %q not found", name)
	}
	tq, ok := q.(*typedQueue[T])
	if !ok {
		return eris.Errorf("event queue %q carries %s, not %s", name, q.elemType(), reflect.TypeOf((*T)(nil)).Elem())
	}
	tq.items = append(tq.items, val)
	return nil
}

// EventSlice returns the current contents of the named queue in send order.
// It returns nil for an unknown name or a mismatched type. The slice aliases
// queue storage: it is invalidated by Send, ClearEvents and ClearAllEvents.
func EventSlice[T any](w *World, name string) []T {
	q, ok := w.events[name]
	if !ok {
		return nil
	}
	tq, ok := q.(*typedQueue[T])
	if !ok {
		return nil
	}
	return tq.items
}

// EventLen returns the number of pending events in the named queue, or zero
// for an unknown name.
func (w *World) EventLen(name string) int {
	if q, ok := w.events[name]; ok {
		return q.length()
	}
	return 0
}

// ClearEvents truncates the named queue. Unknown names are ignored.
func (w *World) ClearEvents(name string) {
	if q, ok := w.events[name]; ok {
		q.clear()
	}
}

// ClearAllEvents truncates every registered queue.
func (w *World) ClearAllEvents() {
	for _, q := range w.events {
		q.clear()
	}
}
