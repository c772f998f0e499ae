package ecs

import "iter"

// iComponentPool is the type-erased view of a single component type's storage.
// Pools are keyed by entity slot index; liveness is checked by the World before
// a pool is ever touched.
type iComponentPool interface {
	Has(index uint32) bool
	// Remove clears the entry at index and reports whether one was present.
	Remove(index uint32) bool
	// GetAny returns a pointer to the stored value boxed as any, or nil.
	GetAny(index uint32) any
	Len() int
	Clear()
	// Indices yields occupied slot indices in ascending order.
	Indices() iter.Seq[uint32]
}

// componentPool is the typed pool. World code reaches it from the pool table
// with a single type assertion.
type componentPool[T any] interface {
	iComponentPool
	// Set stores value at index. When an entry is already present it is
	// overwritten in place and replaced is true.
	Set(index uint32, value T) (ptr *T, replaced bool)
	Get(index uint32) *T
}
