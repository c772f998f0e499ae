package ecs

// Prioritized is implemented by managers and systems. Lower priorities run
// first; equal priorities run in registration order.
type Prioritized interface {
	Priority() int
}

// Manager is a cross-cutting service owned by a World. Managers usually also
// implement RefreshListener or DestroyListener.
type Manager interface {
	Prioritized
}

// System is a unit of per-frame behaviour. Process is called once per Update
// while the system is registered and enabled.
type System interface {
	Prioritized
	Process(frame *UpdateFrame)
}

// Registrar is implemented by managers and systems that need to resolve
// dependencies when they are added to a World. Returning an error rolls the
// registration back.
type Registrar interface {
	OnRegistered(w *World) error
}

// Unregistrar is implemented by managers and systems that release resources
// when removed from a World.
type Unregistrar interface {
	OnUnregistered(w *World)
}

// RefreshListener managers are notified for each refreshed living entity.
type RefreshListener interface {
	OnRefresh(w *World, e Entity)
}

// DestroyListener managers are notified before a destroyed entity's components
// are removed.
type DestroyListener interface {
	OnDestroy(w *World, e Entity)
}

// Order implements Prioritized and can be embedded:
//
//	type MovementSystem struct {
//		ecs.Order
//	}
//
//	AddSystem(w, &MovementSystem{Order: 10})
type Order int

// Priority returns o.
func (o Order) Priority() int {
	return int(o)
}

// Toggle lets a system be switched off without unregistering it.
// The zero value is enabled.
type Toggle struct {
	disabled bool
}

// Enabled reports whether the system runs.
func (t Toggle) Enabled() bool {
	return !t.disabled
}

// SetEnabled switches the system on or off.
func (t *Toggle) SetEnabled(enabled bool) {
	t.disabled = !enabled
}

type enabler interface {
	Enabled() bool
}

func isEnabled(s System) bool {
	if e, ok := s.(enabler); ok {
		return e.Enabled()
	}
	return true
}
