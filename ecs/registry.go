package ecs

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
	"time"
)

// registration is one entry in an orderedRegistry.
type registration[V any] struct {
	typ      reflect.Type
	name     string
	priority int
	seq      uint64
	value    V
	// removed is set when the entry leaves the registry so that a frame
	// snapshot taken earlier skips it.
	removed bool
	stats   executionStats
}

type executionStats struct {
	count int64
	min   time.Duration
	max   time.Duration
	last  time.Duration
	total time.Duration
}

func (s *executionStats) record(d time.Duration) {
	if s.count == 0 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	s.count++
	s.last = d
	s.total += d
}

func (s *executionStats) avg() time.Duration {
	if s.count == 0 {
		return 0
	}
	return s.total / time.Duration(s.count)
}

// orderedRegistry holds at most one value per concrete type, kept sorted by
// (priority, registration sequence).
type orderedRegistry[V any] struct {
	entries []*registration[V]
	byType  map[reflect.Type]*registration[V]
	nextSeq uint64
}

func newOrderedRegistry[V any]() orderedRegistry[V] {
	return orderedRegistry[V]{byType: make(map[reflect.Type]*registration[V])}
}

func compareRegistrations[V any](a, b *registration[V]) int {
	if c := cmp.Compare(a.priority, b.priority); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

// insert adds v under t. It returns false when t is already present.
func (r *orderedRegistry[V]) insert(t reflect.Type, priority int, v V) (*registration[V], bool) {
	if _, ok := r.byType[t]; ok {
		return nil, false
	}

	reg := &registration[V]{
		typ:      t,
		name:     typeLabel(t),
		priority: priority,
		seq:      r.nextSeq,
		value:    v,
	}
	r.nextSeq++

	pos, _ := slices.BinarySearchFunc(r.entries, reg, compareRegistrations[V])
	r.entries = slices.Insert(r.entries, pos, reg)
	r.byType[t] = reg
	return reg, true
}

func (r *orderedRegistry[V]) get(t reflect.Type) (*registration[V], bool) {
	reg, ok := r.byType[t]
	return reg, ok
}

func (r *orderedRegistry[V]) remove(t reflect.Type) (*registration[V], bool) {
	reg, ok := r.byType[t]
	if !ok {
		return nil, false
	}
	delete(r.byType, t)
	reg.removed = true

	pos, found := slices.BinarySearchFunc(r.entries, reg, compareRegistrations[V])
	if found {
		r.entries = slices.Delete(r.entries, pos, pos+1)
	}
	return reg, true
}

// snapshot copies the current order into buf. Callers iterate the copy and
// check removed before using an entry.
func (r *orderedRegistry[V]) snapshot(buf []*registration[V]) []*registration[V] {
	return append(buf[:0], r.entries...)
}

func (r *orderedRegistry[V]) all() iter.Seq[*registration[V]] {
	return slices.Values(r.entries)
}

func (r *orderedRegistry[V]) len() int {
	return len(r.entries)
}

// typeLabel strips the pointer from registered types for display.
func typeLabel(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}
