package ecs

import "math/bits"

// componentMask is a growable bit set of ComponentTypeIds present on a slot.
type componentMask []uint64

func (m *componentMask) set(id ComponentTypeId) {
	word := int(id >> 6)
	if word >= len(*m) {
		grown := make(componentMask, word+1)
		copy(grown, *m)
		*m = grown
	}
	(*m)[word] |= 1 << (id & 63)
}

func (m componentMask) unset(id ComponentTypeId) {
	word := int(id >> 6)
	if word < len(m) {
		m[word] &^= 1 << (id & 63)
	}
}

func (m componentMask) has(id ComponentTypeId) bool {
	word := int(id >> 6)
	return word < len(m) && m[word]&(1<<(id&63)) != 0
}

// clear drops every bit but keeps the backing words for reuse.
func (m componentMask) clear() {
	for i := range m {
		m[i] = 0
	}
}

func (m componentMask) count() int {
	n := 0
	for _, w := range m {
		n += bits.OnesCount64(w)
	}
	return n
}

// each calls fn for every set id in ascending order.
func (m componentMask) each(fn func(ComponentTypeId)) {
	for i, w := range m {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			fn(ComponentTypeId(i<<6 | b))
			w &= w - 1
		}
	}
}
