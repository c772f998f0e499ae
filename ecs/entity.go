package ecs

import (
	"fmt"
	"math"
)

// Entity identifies a logical object in a World. Index selects the backing slot
// and Token must match the slot's current token for the handle to be live.
// Entities are plain values: copy and compare them freely.
type Entity struct {
	Index uint32
	Token uint32
}

// String formats the entity as index:token.
func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.Index, e.Token)
}

// key packs the entity into a single integer for set membership.
func (e Entity) key() uint64 {
	return uint64(e.Token)<<32 | uint64(e.Index)
}

// slot backs an entity's identity and its present component set.
type slot struct {
	alive bool
	token uint32
	mask  componentMask
}

// entityManager owns the slot table, the free list and the per-slot tokens.
type entityManager struct {
	slots    []slot
	freeList []uint32
	living   int
	retired  int
}

func newEntityManager(capacity int) *entityManager {
	return &entityManager{
		slots:    make([]slot, 0, capacity),
		freeList: make([]uint32, 0, capacity/4),
	}
}

// create pops a free slot, or extends the table, and marks it alive.
// The token is left untouched; it only advances on destruction.
func (m *entityManager) create() Entity {
	var idx uint32
	if n := len(m.freeList); n > 0 {
		idx = m.freeList[n-1]
		m.freeList = m.freeList[:n-1]
	} else {
		idx = uint32(len(m.slots))
		m.slots = append(m.slots, slot{})
	}

	s := &m.slots[idx]
	s.alive = true
	m.living++
	return Entity{Index: idx, Token: s.token}
}

func (m *entityManager) isLiving(e Entity) bool {
	if int(e.Index) >= len(m.slots) {
		return false
	}
	s := &m.slots[e.Index]
	return s.alive && s.token == e.Token
}

// slotOf returns the slot for a living entity, nil otherwise.
// The pointer is only valid until the next create.
func (m *entityManager) slotOf(e Entity) *slot {
	if !m.isLiving(e) {
		return nil
	}
	return &m.slots[e.Index]
}

// destroy marks the slot dead and advances its token. The caller must have
// removed the entity's components already.
func (m *entityManager) destroy(e Entity) bool {
	if !m.isLiving(e) {
		return false
	}

	s := &m.slots[e.Index]
	s.alive = false
	s.mask.clear()
	m.living--

	// A slot whose token space is exhausted is never reissued, otherwise the
	// next handle would compare equal to the very first one.
	if s.token == math.MaxUint32 {
		m.retired++
		return true
	}
	s.token++
	m.freeList = append(m.freeList, e.Index)
	return true
}

// each yields every living entity in slot order.
func (m *entityManager) each(yield func(Entity) bool) {
	for i := range m.slots {
		s := &m.slots[i]
		if !s.alive {
			continue
		}
		if !yield(Entity{Index: uint32(i), Token: s.token}) {
			return
		}
	}
}

// reset kills every slot, advancing tokens so outstanding handles go stale.
func (m *entityManager) reset() {
	m.freeList = m.freeList[:0]
	for i := len(m.slots) - 1; i >= 0; i-- {
		s := &m.slots[i]
		if s.alive {
			m.destroy(Entity{Index: uint32(i), Token: s.token})
			continue
		}
		if s.token != math.MaxUint32 {
			m.freeList = append(m.freeList, uint32(i))
		}
	}
}
