package ecs

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FrameState is the phase of the frame loop a World is in.
type FrameState uint8

const (
	FrameIdle FrameState = iota
	FrameApplyingDestructions
	FrameApplyingRefreshes
	FrameRunningSystems
)

func (s FrameState) String() string {
	switch s {
	case FrameIdle:
		return "Idle"
	case FrameApplyingDestructions:
		return "ApplyingDestructions"
	case FrameApplyingRefreshes:
		return "ApplyingRefreshes"
	case FrameRunningSystems:
		return "RunningSystems"
	default:
		return fmt.Sprintf("FrameState(%d)", uint8(s))
	}
}

const defaultCapacity = 256

// World owns entities, their components, and the registered managers and
// systems, and drives them through the frame loop.
//
// A World is not safe for concurrent use. Structural changes requested through
// DestroyEntity and RefreshEntity are deferred until the next Update.
type World struct {
	logger   *zap.Logger
	registry *ComponentRegistry
	capacity int
	maxDelta time.Duration

	entities *entityManager
	pools    []iComponentPool

	managers orderedRegistry[Manager]
	systems  orderedRegistry[System]

	destructions *entityQueue
	refreshes    *entityQueue

	state FrameState
	delta float64
	frame UpdateFrame

	managerBuf []*registration[Manager]
	systemBuf  []*registration[System]
}

// NewWorld creates an empty World.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		logger:   zap.NewNop(),
		capacity: defaultCapacity,
		managers: newOrderedRegistry[Manager](),
		systems:  newOrderedRegistry[System](),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.registry == nil {
		w.registry = NewComponentRegistry()
	}

	w.entities = newEntityManager(w.capacity)
	w.destructions = newEntityQueue(w.capacity / 8)
	w.refreshes = newEntityQueue(w.capacity / 8)
	w.frame.World = w
	return w
}

// Registry returns the component registry used by w.
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// Logger returns the World's logger.
func (w *World) Logger() *zap.Logger {
	return w.logger
}

// CreateEntity allocates a new living entity. It is visible immediately.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// IsLiving reports whether e refers to a living entity.
func (w *World) IsLiving(e Entity) bool {
	return w.entities.isLiving(e)
}

// DestroyEntity schedules e for destruction at the start of the next Update.
// The entity stays living, with its components, until then. Stale handles and
// repeated calls are ignored.
func (w *World) DestroyEntity(e Entity) {
	if !w.entities.isLiving(e) {
		return
	}
	w.destructions.push(e)
}

// RefreshEntity schedules e for refresh notification in the next Update.
// Adding or removing components schedules a refresh automatically.
func (w *World) RefreshEntity(e Entity) {
	if !w.entities.isLiving(e) {
		return
	}
	w.refreshes.push(e)
}

// SetDelta sets the time step, in seconds, passed to systems.
func (w *World) SetDelta(dt float64) {
	w.delta = dt
}

// Delta returns the current time step in seconds.
func (w *World) Delta() float64 {
	return w.delta
}

// State returns the current frame phase.
func (w *World) State() FrameState {
	return w.state
}

// Frame returns the number of Update calls started so far.
func (w *World) Frame() uint64 {
	return w.frame.Index
}

// Update runs one frame: pending destructions, then pending refreshes, then
// every enabled system in priority order. Calling Update from inside a frame
// panics.
func (w *World) Update() {
	if w.state != FrameIdle {
		panic(fmt.Sprintf("ecs: Update called during %s", w.state))
	}
	defer func() {
		w.state = FrameIdle
	}()

	w.frame.Index++
	w.frame.DeltaTime = w.delta

	w.state = FrameApplyingDestructions
	w.destructions.drain(w.applyDestroy)

	w.state = FrameApplyingRefreshes
	w.refreshes.drain(w.applyRefresh)

	w.state = FrameRunningSystems
	w.runSystems()
}

func (w *World) applyDestroy(e Entity) {
	if !w.entities.isLiving(e) {
		return
	}

	w.managerBuf = w.managers.snapshot(w.managerBuf)
	for _, reg := range w.managerBuf {
		if reg.removed {
			continue
		}
		if l, ok := reg.value.(DestroyListener); ok {
			l.OnDestroy(w, e)
		}
	}
	clear(w.managerBuf)

	w.removeAll(e)
	w.entities.destroy(e)

	if ce := w.logger.Check(zap.DebugLevel, "entity destroyed"); ce != nil {
		ce.Write(zap.Uint32("index", e.Index), zap.Uint32("token", e.Token))
	}
}

func (w *World) removeAll(e Entity) {
	s := w.entities.slotOf(e)
	if s == nil {
		return
	}
	s.mask.each(func(id ComponentTypeId) {
		if int(id) < len(w.pools) && w.pools[id] != nil {
			w.pools[id].Remove(e.Index)
		}
	})
	s.mask.clear()
}

func (w *World) applyRefresh(e Entity) {
	if !w.entities.isLiving(e) {
		return
	}

	w.managerBuf = w.managers.snapshot(w.managerBuf)
	for _, reg := range w.managerBuf {
		if reg.removed {
			continue
		}
		if l, ok := reg.value.(RefreshListener); ok {
			l.OnRefresh(w, e)
		}
	}
	clear(w.managerBuf)
}

func (w *World) runSystems() {
	w.systemBuf = w.systems.snapshot(w.systemBuf)
	defer clear(w.systemBuf)

	for _, reg := range w.systemBuf {
		if reg.removed || !isEnabled(reg.value) {
			continue
		}
		start := time.Now()
		reg.value.Process(&w.frame)
		reg.stats.record(time.Since(start))
	}
}

// Entities yields every living entity in slot order.
func (w *World) Entities() iter.Seq[Entity] {
	return w.entities.each
}

// ComponentTypes returns the component types present on e in ascending id
// order, or nil if e is not living.
func (w *World) ComponentTypes(e Entity) []ComponentType {
	s := w.entities.slotOf(e)
	if s == nil {
		return nil
	}
	types := make([]ComponentType, 0, s.mask.count())
	s.mask.each(func(id ComponentTypeId) {
		if ct, ok := w.registry.Lookup(id); ok {
			types = append(types, ct)
		}
	})
	return types
}

// Component returns a pointer to e's component of the given type id, boxed as
// any. It is meant for tooling that does not know component types statically.
func (w *World) Component(e Entity, id ComponentTypeId) (any, error) {
	s := w.entities.slotOf(e)
	if s == nil {
		return nil, eris.Wrapf(ErrInvalidEntity, "get component %d of %s", id, e)
	}
	if !s.mask.has(id) {
		return nil, eris.Wrapf(ErrNotFound, "get component %d of %s", id, e)
	}
	return w.pools[id].GetAny(e.Index), nil
}

// HasComponentType reports whether e is living and has a component with the
// given type id.
func (w *World) HasComponentType(e Entity, id ComponentTypeId) bool {
	s := w.entities.slotOf(e)
	return s != nil && s.mask.has(id)
}

// ComponentCount returns how many entities hold a component with the given type id.
func (w *World) ComponentCount(id ComponentTypeId) int {
	p := w.existingPool(id)
	if p == nil {
		return 0
	}
	return p.Len()
}

// Close unregisters systems and then managers in reverse priority order,
// calling their OnUnregistered hooks, and destroys every entity without
// notifying listeners. Close must not be called during Update.
func (w *World) Close() {
	if w.state != FrameIdle {
		panic(fmt.Sprintf("ecs: Close called during %s", w.state))
	}

	for _, reg := range slices.Backward(slices.Clone(w.systems.entries)) {
		unregister(w, &w.systems, "system", reg.typ)
	}
	for _, reg := range slices.Backward(slices.Clone(w.managers.entries)) {
		unregister(w, &w.managers, "manager", reg.typ)
	}

	w.destructions.reset()
	w.refreshes.reset()
	for _, p := range w.pools {
		if p != nil {
			p.Clear()
		}
	}
	w.entities.reset()
}

func (w *World) pool(id ComponentTypeId) iComponentPool {
	if int(id) >= len(w.pools) {
		w.pools = append(w.pools, make([]iComponentPool, int(id)+1-len(w.pools))...)
	}
	p := w.pools[id]
	if p == nil {
		p = w.registry.newPool(id)
		w.pools[id] = p
	}
	return p
}

// existingPool returns the pool for id without creating it.
func (w *World) existingPool(id ComponentTypeId) iComponentPool {
	if int(id) >= len(w.pools) {
		return nil
	}
	return w.pools[id]
}
