package hakoniwa

import "unsafe"

// column is a contiguous byte buffer holding one component type for every row
// of an archetype. len(data) is always rowCount*elemSize.
type column struct {
	data      []byte
	elemSize  uintptr
	bit       Mask
	typeIndex ComponentID
}

// zeroCell backs cell pointers for zero-size component types.
var zeroCell struct{}

// Archetype stores all entities that share one exact component set. Component
// data is column-major: one buffer per type, rows addressed by ordinal index.
type Archetype struct {
	entities    []Entity
	columns     []column
	columnByBit [MaxComponentTypes]int8  // column position per bit index; -1 if absent
	addEdges    [MaxComponentTypes]int32 // archetype index after adding bit b; -1 unset
	removeEdges [MaxComponentTypes]int32 // archetype index after removing bit b; -1 unset
	mask        Mask
	index       int
}

// newArchetype allocates an empty archetype for the given mask. specs must be
// ordered by ascending component ID and carry exactly the set bits of mask.
func newArchetype(index int, mask Mask, specs []compSpec) *Archetype {
	a := &Archetype{
		mask:    mask,
		index:   index,
		columns: make([]column, len(specs)),
	}
	for i := range a.columnByBit {
		a.columnByBit[i] = -1
		a.addEdges[i] = -1
		a.removeEdges[i] = -1
	}
	for i, sp := range specs {
		a.columns[i] = column{
			elemSize:  sp.size,
			bit:       maskBit(sp.id),
			typeIndex: sp.id,
		}
		a.columnByBit[sp.id] = int8(i)
	}
	return a
}

// Mask returns the component mask of this archetype.
func (self *Archetype) Mask() Mask {
	return self.mask
}

// Len returns the number of rows (entities) currently stored.
func (self *Archetype) Len() int {
	return len(self.entities)
}

// Entities returns the dense entity vector. The slice aliases archetype
// storage and is invalidated by any structural mutation.
func (self *Archetype) Entities() []Entity {
	return self.entities
}

// EntityAt returns the entity stored at the given row.
func (self *Archetype) EntityAt(row int) Entity {
	return self.entities[row]
}

// slotOf finds the column position for a single-bit mask, or -1 if the
// archetype does not store that component.
func (self *Archetype) slotOf(bit Mask) int {
	return int(self.columnByBit[bitIndex(bit)])
}

// cellPtr returns a pointer to the cell at (slot, row).
func (self *Archetype) cellPtr(slot, row int) unsafe.Pointer {
	c := &self.columns[slot]
	if c.elemSize == 0 {
		return unsafe.Pointer(&zeroCell)
	}
	return unsafe.Pointer(&c.data[row*int(c.elemSize)])
}

// pushRow appends one row for e and grows every column by one element.
// The new cells hold unspecified bytes; callers overwrite them.
func (self *Archetype) pushRow(e Entity) int {
	row := len(self.entities)
	self.entities = append(self.entities, e)
	for i := range self.columns {
		c := &self.columns[i]
		if c.elemSize == 0 {
			continue
		}
		c.data = extendByteSlice(c.data, int(c.elemSize))
	}
	return row
}

// growRows extends the entity vector and every column by n rows in one step
// and returns the first new row index. Used by batch spawns to avoid per-row
// reallocation; the entity cells must be filled by the caller.
func (self *Archetype) growRows(n int) int {
	start := len(self.entities)
	self.entities = extendSlice(self.entities, n)
	for i := range self.columns {
		c := &self.columns[i]
		if c.elemSize == 0 {
			continue
		}
		c.data = extendByteSlice(c.data, n*int(c.elemSize))
	}
	return start
}

// swapRemoveRow deletes row r by moving the last row into its place and
// truncating every column by one element. It returns the entity that was
// moved into r, if any; the caller must rewrite that entity's directory row.
func (self *Archetype) swapRemoveRow(r int) (Entity, bool) {
	last := len(self.entities) - 1
	var moved Entity
	didMove := false
	if r < last {
		moved = self.entities[last]
		self.entities[r] = moved
		for i := range self.columns {
			c := &self.columns[i]
			sz := int(c.elemSize)
			if sz == 0 {
				continue
			}
			copy(c.data[r*sz:(r+1)*sz], c.data[last*sz:(last+1)*sz])
		}
		didMove = true
	}
	self.entities = self.entities[:last]
	for i := range self.columns {
		c := &self.columns[i]
		c.data = c.data[:last*int(c.elemSize)]
	}
	return moved, didMove
}

// copyRow copies every column cell that both archetypes share from row
// srcRow of src into row dstRow of self. Cells for components absent in src
// are left unwritten.
func (self *Archetype) copyRow(dstRow int, src *Archetype, srcRow int) {
	for i := range self.columns {
		c := &self.columns[i]
		sz := int(c.elemSize)
		if sz == 0 {
			continue
		}
		srcSlot := src.slotOf(c.bit)
		if srcSlot < 0 {
			continue
		}
		srcData := src.columns[srcSlot].data
		copy(c.data[dstRow*sz:(dstRow+1)*sz], srcData[srcRow*sz:(srcRow+1)*sz])
	}
}

// clearRows drops every row while keeping column capacity.
func (self *Archetype) clearRows() {
	self.entities = self.entities[:0]
	for i := range self.columns {
		self.columns[i].data = self.columns[i].data[:0]
	}
}

// writeValue stores v into the cell at (slot, row) of a.
func writeValue[T any](a *Archetype, slot, row int, v *T) {
	c := &a.columns[slot]
	sz := int(c.elemSize)
	if sz == 0 {
		return
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(v)), sz)
	copy(c.data[row*sz:(row+1)*sz], src)
}
