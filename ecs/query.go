package ecs

import (
	"iter"
	"reflect"
)

// Pair holds two components of the same entity.
type Pair[A, B any] struct {
	First  *A
	Second *B
}

func lookupPool[T any](w *World) (componentPool[T], bool) {
	id, ok := w.registry.byType[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	p := w.existingPool(id)
	if p == nil {
		return nil, false
	}
	return p.(componentPool[T]), true
}

// Each yields every living entity that has a T, with a pointer to it, in slot
// order. Components added during iteration may or may not be visited;
// components removed during iteration are not.
func Each[T any](w *World) iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		p, ok := lookupPool[T](w)
		if !ok {
			return
		}
		eachIn(w, p, yield)
	}
}

func eachIn[T any](w *World, p componentPool[T], yield func(Entity, *T) bool) {
	for idx := range p.Indices() {
		ptr := p.Get(idx)
		if ptr == nil {
			continue
		}
		s := &w.entities.slots[idx]
		if !s.alive {
			continue
		}
		if !yield(Entity{Index: idx, Token: s.token}, ptr) {
			return
		}
	}
}

// Each2 yields every living entity that has both an A and a B. It walks the
// smaller of the two pools and probes the other.
func Each2[A, B any](w *World) iter.Seq2[Entity, Pair[A, B]] {
	return func(yield func(Entity, Pair[A, B]) bool) {
		pa, ok := lookupPool[A](w)
		if !ok {
			return
		}
		pb, ok := lookupPool[B](w)
		if !ok {
			return
		}

		if pa.Len() <= pb.Len() {
			eachIn(w, pa, func(e Entity, a *A) bool {
				b := pb.Get(e.Index)
				if b == nil {
					return true
				}
				return yield(e, Pair[A, B]{First: a, Second: b})
			})
			return
		}
		eachIn(w, pb, func(e Entity, b *B) bool {
			a := pa.Get(e.Index)
			if a == nil {
				return true
			}
			return yield(e, Pair[A, B]{First: a, Second: b})
		})
	}
}

// Count returns the number of entities that have a T.
func Count[T any](w *World) int {
	p, ok := lookupPool[T](w)
	if !ok {
		return 0
	}
	return p.Len()
}
