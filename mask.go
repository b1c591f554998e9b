package hakoniwa

import "math/bits"

// Mask is a 64-bit component set: bit b is set iff the component with
// ComponentID b is in the set.
type Mask uint64

// maskBit returns the single-bit mask for a component ID.
func maskBit(id ComponentID) Mask {
	return Mask(1) << id
}

// MaskOf builds a mask from component IDs.
func MaskOf(ids ...ComponentID) Mask {
	var m Mask
	for _, id := range ids {
		m |= Mask(1) << id
	}
	return m
}

// Has checks if the mask contains a specific single-bit mask.
func (m Mask) Has(bit Mask) bool {
	return m&bit != 0
}

// bitIndex returns the index of the lowest set bit.
func bitIndex(bit Mask) int {
	return bits.TrailingZeros64(uint64(bit))
}

// popcount returns the number of set bits.
func (m Mask) popcount() int {
	return bits.OnesCount64(uint64(m))
}

// matchMask reports whether an archetype mask satisfies an include/exclude
// pair. An empty exclude mask excludes nothing.
func matchMask(m, include, exclude Mask) bool {
	return m&include == include && (exclude == 0 || m&exclude == 0)
}
