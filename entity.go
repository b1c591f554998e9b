package hakoniwa

// Entity is a handle to a logical object in the World. It combines a 32-bit
// ID with a 32-bit generation so that recycled IDs are not confused with the
// entities that previously held them. Two handles refer to the same live
// entity only if both fields match.
type Entity struct {
	// ID is the unique, recyclable identifier for the entity.
	ID uint32
	// Generation counts how many times the ID slot has been recycled. It is
	// incremented on every despawn of the slot.
	Generation uint32
}

// Nil is the sentinel handle returned by spawn operations given an empty
// component set. Its value (ID 0, generation 0) is also the first handle a
// World issues, so equality with Nil does not tell that entity from the
// sentinel.
var Nil = Entity{}

// entityMeta is the directory record for one entity ID: where the entity
// lives and whether the handle generation is still current.
type entityMeta struct {
	archetypeIndex int32
	row            int32
	generation     uint32
	alive          bool
}
