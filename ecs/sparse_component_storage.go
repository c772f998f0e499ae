package ecs

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
)

// sparseComponentPool keeps components in an integer hash map keyed by slot
// index. Values are boxed individually, so pointers stay valid until removal.
type sparseComponentPool[T any] struct {
	items *intmap.Map[uint32, *T]
}

func newSparseComponentPool[T any]() *sparseComponentPool[T] {
	return &sparseComponentPool[T]{items: intmap.New[uint32, *T](16)}
}

func (p *sparseComponentPool[T]) Set(index uint32, value T) (*T, bool) {
	if ptr, ok := p.items.Get(index); ok {
		*ptr = value
		return ptr, true
	}
	ptr := new(T)
	*ptr = value
	p.items.Put(index, ptr)
	return ptr, false
}

func (p *sparseComponentPool[T]) Get(index uint32) *T {
	ptr, _ := p.items.Get(index)
	return ptr
}

func (p *sparseComponentPool[T]) GetAny(index uint32) any {
	if ptr, ok := p.items.Get(index); ok {
		return ptr
	}
	return nil
}

func (p *sparseComponentPool[T]) Has(index uint32) bool {
	return p.items.Has(index)
}

func (p *sparseComponentPool[T]) Remove(index uint32) bool {
	return p.items.Del(index)
}

func (p *sparseComponentPool[T]) Len() int {
	return p.items.Len()
}

func (p *sparseComponentPool[T]) Clear() {
	p.items.Clear()
}

// Indices yields keys in ascending order so iteration is deterministic
// regardless of hash layout.
func (p *sparseComponentPool[T]) Indices() iter.Seq[uint32] {
	keys := slices.Sorted(p.items.Keys())
	return slices.Values(keys)
}
