package ecs

import (
	"fmt"
	"iter"
	"math/bits"
	"reflect"
)

// ComponentTypeId is a dense, sequential identifier for a component type within
// a ComponentRegistry. Ids are never recycled.
type ComponentTypeId uint32

// StorageStrategy selects the pool implementation backing a component type.
type StorageStrategy uint8

const (
	// StorageDense keeps components in fixed-size blocks indexed by slot.
	StorageDense StorageStrategy = iota
	// StorageSparse keeps components in a hash map; suited to rare components.
	StorageSparse
)

func (s StorageStrategy) String() string {
	switch s {
	case StorageDense:
		return "dense"
	case StorageSparse:
		return "sparse"
	default:
		return fmt.Sprintf("StorageStrategy(%d)", uint8(s))
	}
}

// ComponentType describes a registered component type.
type ComponentType struct {
	Id      ComponentTypeId
	Type    reflect.Type
	Storage StorageStrategy
}

// Name returns the Go type name of the component.
func (c ComponentType) Name() string {
	return c.Type.String()
}

// ComponentOption configures a component type at registration.
type ComponentOption func(*componentConfig)

type componentConfig struct {
	storage StorageStrategy
}

// WithStorage selects the storage strategy for a component type.
func WithStorage(s StorageStrategy) ComponentOption {
	return func(c *componentConfig) {
		c.storage = s
	}
}

// ComponentRegistry assigns type ids and remembers how to build each type's pool.
// A registry may be shared by several worlds so that ids agree between them.
type ComponentRegistry struct {
	types     []ComponentType
	byType    map[reflect.Type]ComponentTypeId
	factories []func() iComponentPool
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		byType: make(map[reflect.Type]ComponentTypeId),
	}
}

// RegisterComponent assigns T an id in r if it has none yet and returns the id.
// Options only apply to the first registration of a type.
func RegisterComponent[T any](r *ComponentRegistry, opts ...ComponentOption) ComponentTypeId {
	t := reflect.TypeFor[T]()
	if id, ok := r.byType[t]; ok {
		return id
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Func, reflect.Chan:
		panic(fmt.Sprintf("ecs: component type %s must be a value type", t))
	}

	cfg := componentConfig{storage: StorageDense}
	for _, opt := range opts {
		opt(&cfg)
	}

	id := ComponentTypeId(len(r.types))
	r.types = append(r.types, ComponentType{Id: id, Type: t, Storage: cfg.storage})
	r.byType[t] = id

	switch cfg.storage {
	case StorageSparse:
		r.factories = append(r.factories, func() iComponentPool { return newSparseComponentPool[T]() })
	default:
		r.factories = append(r.factories, func() iComponentPool { return &denseComponentPool[T]{} })
	}
	return id
}

// ComponentTypeIdOf returns T's id, registering T with default options on first use.
func ComponentTypeIdOf[T any](r *ComponentRegistry) ComponentTypeId {
	if id, ok := r.byType[reflect.TypeFor[T]()]; ok {
		return id
	}
	return RegisterComponent[T](r)
}

// Lookup returns the descriptor for id.
func (r *ComponentRegistry) Lookup(id ComponentTypeId) (ComponentType, bool) {
	if int(id) >= len(r.types) {
		return ComponentType{}, false
	}
	return r.types[id], true
}

// LookupType returns the descriptor for a reflect.Type.
func (r *ComponentRegistry) LookupType(t reflect.Type) (ComponentType, bool) {
	id, ok := r.byType[t]
	if !ok {
		return ComponentType{}, false
	}
	return r.types[id], true
}

// Types yields every registered component type in id order.
func (r *ComponentRegistry) Types() iter.Seq[ComponentType] {
	return func(yield func(ComponentType) bool) {
		for _, ct := range r.types {
			if !yield(ct) {
				return
			}
		}
	}
}

// Len returns the number of registered types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

func (r *ComponentRegistry) newPool(id ComponentTypeId) iComponentPool {
	return r.factories[id]()
}

const (
	denseBlockSize = 64
)

// denseBlock holds denseBlockSize slots; filled has one bit per slot.
type denseBlock[T any] struct {
	items  [denseBlockSize]T
	filled uint64
}

// denseComponentPool stores components of type T in blocks addressed directly
// by slot index. Blocks are allocated individually and never move, so pointers
// returned by Set and Get stay valid until the entry is removed.
type denseComponentPool[T any] struct {
	blocks []*denseBlock[T]
	count  int
}

func (p *denseComponentPool[T]) locate(index uint32) (*denseBlock[T], uint64) {
	blockIdx := int(index / denseBlockSize)
	if blockIdx >= len(p.blocks) || p.blocks[blockIdx] == nil {
		return nil, 0
	}
	return p.blocks[blockIdx], 1 << (index % denseBlockSize)
}

func (p *denseComponentPool[T]) Set(index uint32, value T) (*T, bool) {
	blockIdx := int(index / denseBlockSize)
	if blockIdx >= len(p.blocks) {
		grown := make([]*denseBlock[T], blockIdx+1, max(blockIdx+1, 2*len(p.blocks)))
		copy(grown, p.blocks)
		p.blocks = grown
	}
	b := p.blocks[blockIdx]
	if b == nil {
		b = &denseBlock[T]{}
		p.blocks[blockIdx] = b
	}

	slotIdx := index % denseBlockSize
	bit := uint64(1) << slotIdx
	replaced := b.filled&bit != 0
	if !replaced {
		b.filled |= bit
		p.count++
	}
	b.items[slotIdx] = value
	return &b.items[slotIdx], replaced
}

func (p *denseComponentPool[T]) Get(index uint32) *T {
	b, bit := p.locate(index)
	if b == nil || b.filled&bit == 0 {
		return nil
	}
	return &b.items[index%denseBlockSize]
}

func (p *denseComponentPool[T]) GetAny(index uint32) any {
	if ptr := p.Get(index); ptr != nil {
		return ptr
	}
	return nil
}

func (p *denseComponentPool[T]) Has(index uint32) bool {
	b, bit := p.locate(index)
	return b != nil && b.filled&bit != 0
}

func (p *denseComponentPool[T]) Remove(index uint32) bool {
	b, bit := p.locate(index)
	if b == nil || b.filled&bit == 0 {
		return false
	}
	var zero T
	b.items[index%denseBlockSize] = zero
	b.filled &^= bit
	p.count--
	return true
}

func (p *denseComponentPool[T]) Len() int {
	return p.count
}

func (p *denseComponentPool[T]) Clear() {
	p.blocks = nil
	p.count = 0
}

func (p *denseComponentPool[T]) Indices() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for bi, b := range p.blocks {
			if b == nil {
				continue
			}
			for filled := b.filled; filled != 0; filled &= filled - 1 {
				slotIdx := bits.TrailingZeros64(filled)
				if !yield(uint32(bi*denseBlockSize + slotIdx)) {
					return
				}
			}
		}
	}
}
