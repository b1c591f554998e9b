package hakoniwa

import (
	"github.com/rs/zerolog"
)

// World composes the entity directory, the archetype tables, the query
// cache, the deferred-despawn queue, the named event queues, the resource
// store and the system scheduler. A World is not safe for concurrent use;
// callers wanting parallelism must partition work outside the engine.
type World struct {
	registry       *Registry
	metas          []entityMeta
	freeEntities   []Entity // recycled (id, next generation) pairs
	archetypes     []*Archetype
	maskToArcIndex map[Mask]int
	queries        []*cachedQuery
	queryByKey     map[uint64]*cachedQuery
	deferred       []Entity
	events         map[string]eventQueue
	resources      Resources
	systems        []System
	systemNames    []string
	logger         Logger
	nextID         uint32
}

// NewWorld creates a zero-entity world over the given component registry and
// seals the registry. Options tune the initial directory capacity and install
// a logger; by default nothing is logged.
func NewWorld(reg *Registry, opts ...Option) *World {
	nop := zerolog.Nop()
	w := &World{
		registry:       reg,
		metas:          make([]entityMeta, 0, defaultCapacity),
		maskToArcIndex: make(map[Mask]int),
		queryByKey:     make(map[uint64]*cachedQuery),
		events:         make(map[string]eventQueue),
		logger:         Logger{&nop},
	}
	for _, opt := range opts {
		opt(w)
	}
	reg.seal()
	w.logger.LogWorld(w, zerolog.DebugLevel)
	return w
}

// Registry returns the sealed component registry of this world.
func (w *World) Registry() *Registry {
	return w.registry
}

// Resources returns the world's resource store.
func (w *World) Resources() *Resources {
	return &w.resources
}

// Logger returns the world's logger.
func (w *World) Logger() *Logger {
	return &w.logger
}

// IsAlive checks whether the handle refers to a live entity: the ID must be
// in range, the slot alive, and the generation current. Stale handles from
// before a despawn always fail this check.
func (w *World) IsAlive(e Entity) bool {
	if int(e.ID) >= len(w.metas) {
		return false
	}
	meta := &w.metas[e.ID]
	return meta.alive && meta.generation == e.Generation
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	n := 0
	for _, a := range w.archetypes {
		n += len(a.entities)
	}
	return n
}

// ArchetypeCount returns the number of archetypes created so far.
func (w *World) ArchetypeCount() int {
	return len(w.archetypes)
}

// ComponentMask returns the component mask of the entity's archetype, or
// false if the entity is not live.
func (w *World) ComponentMask(e Entity) (Mask, bool) {
	if !w.IsAlive(e) {
		return 0, false
	}
	return w.archetypes[w.metas[e.ID].archetypeIndex].mask, true
}

// HasComponents checks that the entity is live and that its archetype holds
// every component named by mask.
func (w *World) HasComponents(e Entity, mask Mask) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.archetypes[w.metas[e.ID].archetypeIndex].mask&mask == mask
}

// allocEntity issues a handle: a recycled (id, generation) pair if one is
// free, otherwise a fresh ID with generation zero. The directory is grown
// geometrically to cover the new ID.
func (w *World) allocEntity() Entity {
	if n := len(w.freeEntities); n > 0 {
		e := w.freeEntities[n-1]
		w.freeEntities = w.freeEntities[:n-1]
		return e
	}
	id := w.nextID
	w.nextID++
	if int(id) >= len(w.metas) {
		w.growDirectory(int(id) + 1)
	}
	return Entity{ID: id}
}

// growDirectory extends the location vector to cover at least newLen slots.
func (w *World) growDirectory(newLen int) {
	if cap(w.metas) >= newLen {
		w.metas = w.metas[:newLen]
		return
	}
	newCap := max(defaultCapacity, 2*cap(w.metas), newLen)
	metas := make([]entityMeta, newLen, newCap)
	copy(metas, w.metas)
	w.metas = metas
}

// spawnInto places a freshly allocated entity at the end of the archetype
// and writes its directory record. Column cells are not initialised.
func (w *World) spawnInto(a *Archetype) (Entity, int) {
	e := w.allocEntity()
	row := a.pushRow(e)
	w.metas[e.ID] = entityMeta{
		archetypeIndex: int32(a.index),
		row:            int32(row),
		generation:     e.Generation,
		alive:          true,
	}
	return e, row
}

// Spawn creates one entity holding the components named by mask, with
// unspecified cell contents. The empty mask yields the Nil handle and no
// entity. Prefer the typed Spawn functions or SpawnBatchWithInit when the
// component values matter.
func (w *World) Spawn(mask Mask) Entity {
	if mask == 0 {
		return Nil
	}
	a := w.findOrCreateArchetype(mask)
	e, _ := w.spawnInto(a)
	return e
}

// Despawn retires the entity: its row is swap-removed from its archetype,
// the slot generation advances so existing handles go stale, and the ID is
// pushed onto the free list for reuse. Returns false for dead or never
// issued handles. The generation wraps silently after 2^32 despawns of one
// slot; within a session this is a documented non-issue.
func (w *World) Despawn(e Entity) bool {
	if !w.IsAlive(e) {
		return false
	}
	meta := &w.metas[e.ID]
	a := w.archetypes[meta.archetypeIndex]
	if moved, ok := a.swapRemoveRow(int(meta.row)); ok {
		w.metas[moved.ID].row = meta.row
	}
	meta.alive = false
	meta.generation++
	w.freeEntities = append(w.freeEntities, Entity{ID: e.ID, Generation: meta.generation})
	return true
}

// QueueDespawn records the entity for a later ApplyDespawns. Safe to call
// while iterating a query; duplicates are tolerated.
func (w *World) QueueDespawn(e Entity) {
	w.deferred = append(w.deferred, e)
}

// ApplyDespawns despawns every queued entity in order and clears the queue.
// Entries whose handle went stale since queueing (including duplicates of an
// entry already applied) are skipped by the generational check in Despawn.
func (w *World) ApplyDespawns() {
	for _, e := range w.deferred {
		w.Despawn(e)
	}
	w.deferred = w.deferred[:0]
}

// ClearEntities removes every entity, recycling all IDs and resetting the
// archetypes without releasing their storage. Generations advance so stale
// handles stay dead.
func (w *World) ClearEntities() {
	for _, a := range w.archetypes {
		for _, e := range a.entities {
			meta := &w.metas[e.ID]
			meta.alive = false
			meta.generation++
			w.freeEntities = append(w.freeEntities, Entity{ID: e.ID, Generation: meta.generation})
		}
		a.clearRows()
	}
	w.deferred = w.deferred[:0]
}

// findOrCreateArchetype returns the archetype for mask, creating it if
// missing. Creation updates every cached query whose predicate the new mask
// satisfies and wires the add/remove edges between the new archetype and its
// single-bit neighbours.
func (w *World) findOrCreateArchetype(mask Mask) *Archetype {
	if idx, ok := w.maskToArcIndex[mask]; ok {
		return w.archetypes[idx]
	}
	a := newArchetype(len(w.archetypes), mask, w.registry.specsForMask(mask))
	w.archetypes = append(w.archetypes, a)
	w.maskToArcIndex[mask] = a.index

	for _, q := range w.queries {
		if matchMask(mask, q.include, q.exclude) {
			q.arches = append(q.arches, a.index)
		}
	}

	for _, other := range w.archetypes[:a.index] {
		diff := other.mask ^ mask
		if diff.popcount() != 1 {
			continue
		}
		b := bitIndex(diff)
		if mask.Has(diff) {
			// other is the archetype without bit b
			other.addEdges[b] = int32(a.index)
			a.removeEdges[b] = int32(other.index)
		} else {
			other.removeEdges[b] = int32(a.index)
			a.addEdges[b] = int32(other.index)
		}
	}

	w.logger.Debug().
		Uint64("mask", uint64(mask)).
		Int("archetype_index", a.index).
		Int("columns", len(a.columns)).
		Msg("archetype created")
	return a
}
