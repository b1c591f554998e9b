package hakoniwa

// cachedQuery memoises the archetype indices satisfying one include/exclude
// mask pair. The slice is shared storage: findOrCreateArchetype appends to it
// when a matching archetype is born, so iterators holding the cachedQuery see
// later creations without a rescan.
type cachedQuery struct {
	include Mask
	exclude Mask
	arches  []int
}

// queryKey packs an include/exclude pair into one cache key. Masks with bits
// at or above 32 can make two different pairs share a key.
func queryKey(include, exclude Mask) uint64 {
	return uint64(include) | uint64(exclude)<<32
}

// matching returns the cached archetype list for the mask pair, computing it
// with a linear scan on the first request. Pairs whose keys collide are told
// apart by the masks stored in each cached query.
func (w *World) matching(include, exclude Mask) *cachedQuery {
	key := queryKey(include, exclude)
	if q, ok := w.queryByKey[key]; ok && q.include == include && q.exclude == exclude {
		return q
	}
	for _, q := range w.queries {
		if q.include == include && q.exclude == exclude {
			return q
		}
	}
	q := &cachedQuery{include: include, exclude: exclude}
	for i, a := range w.archetypes {
		if matchMask(a.mask, include, exclude) {
			q.arches = append(q.arches, i)
		}
	}
	if _, taken := w.queryByKey[key]; !taken {
		w.queryByKey[key] = q
	}
	w.queries = append(w.queries, q)
	return q
}

// Count returns the number of live entities whose archetype mask contains
// every include bit and none of the exclude bits.
func (w *World) Count(include, exclude Mask) int {
	n := 0
	for _, i := range w.matching(include, exclude).arches {
		n += len(w.archetypes[i].entities)
	}
	return n
}

// First returns the first entity of the first non-empty matching archetype,
// in archetype-creation order.
func (w *World) First(include, exclude Mask) (Entity, bool) {
	for _, i := range w.matching(include, exclude).arches {
		a := w.archetypes[i]
		if len(a.entities) > 0 {
			return a.entities[0], true
		}
	}
	return Nil, false
}

// Entities collects the handles of every matching entity into a fresh slice.
func (w *World) Entities(include, exclude Mask) []Entity {
	q := w.matching(include, exclude)
	n := 0
	for _, i := range q.arches {
		n += len(w.archetypes[i].entities)
	}
	out := make([]Entity, 0, n)
	for _, i := range q.arches {
		out = append(out, w.archetypes[i].entities...)
	}
	return out
}

// TableIter walks the archetypes matching a query in creation order. New
// archetypes born during iteration are picked up if they match.
type TableIter struct {
	world  *World
	q      *cachedQuery
	pos    int
	cur    *Archetype
	curIdx int
}

// Tables creates an iterator over the archetypes matching the mask pair.
//
// Example:
//
//	it := world.Tables(posBit, 0)
//	for it.Next() {
//	    a := it.Archetype()
//	    // ... walk a's columns
//	}
func (w *World) Tables(include, exclude Mask) TableIter {
	return TableIter{world: w, q: w.matching(include, exclude)}
}

// Next advances to the next matching archetype. Returns false when the
// iteration is complete.
func (self *TableIter) Next() bool {
	if self.pos >= len(self.q.arches) {
		return false
	}
	self.curIdx = self.q.arches[self.pos]
	self.cur = self.world.archetypes[self.curIdx]
	self.pos++
	return true
}

// Archetype returns the current archetype. Only valid after Next returned
// true.
func (self *TableIter) Archetype() *Archetype {
	return self.cur
}

// ArchetypeIndex returns the world index of the current archetype.
func (self *TableIter) ArchetypeIndex() int {
	return self.curIdx
}

// EachTable invokes fn once per matching archetype, in creation order.
func (w *World) EachTable(include, exclude Mask, fn func(a *Archetype)) {
	for _, i := range w.matching(include, exclude).arches {
		fn(w.archetypes[i])
	}
}

// EachRow invokes fn once per matching row. The callback must not mutate the
// world structurally; queue despawns instead and apply them afterwards.
func (w *World) EachRow(include, exclude Mask, fn func(a *Archetype, row int)) {
	for _, i := range w.matching(include, exclude).arches {
		a := w.archetypes[i]
		for row := 0; row < len(a.entities); row++ {
			fn(a, row)
		}
	}
}
