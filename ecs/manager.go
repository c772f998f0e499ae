package ecs

import (
	"fmt"
	"reflect"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// registrationType returns the concrete type v is registered under.
// Registering nil is a programming error.
func registrationType(kind string, v any) reflect.Type {
	t := reflect.TypeOf(v)
	if t == nil {
		panic(fmt.Sprintf("ecs: cannot register nil %s", kind))
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		panic(fmt.Sprintf("ecs: cannot register nil %s %s", kind, t))
	}
	return t
}

// register inserts v into reg, initialises its View fields and runs its
// OnRegistered hook, rolling back on failure.
func register[V Prioritized](w *World, reg *orderedRegistry[V], kind string, v V) error {
	t := registrationType(kind, v)
	entry, ok := reg.insert(t, v.Priority(), v)
	if !ok {
		return eris.Wrapf(ErrDuplicateRegistration, "add %s %s", kind, typeLabel(t))
	}

	initViews(v, w)

	if r, ok := any(v).(Registrar); ok {
		if err := r.OnRegistered(w); err != nil {
			reg.remove(t)
			w.logger.Warn("registration hook failed",
				zap.String("kind", kind),
				zap.String("type", entry.name),
				zap.Error(err))
			return eris.Wrapf(err, "register %s %s", kind, entry.name)
		}
	}

	w.logger.Debug("registered",
		zap.String("kind", kind),
		zap.String("type", entry.name),
		zap.Int("priority", entry.priority))
	return nil
}

func unregister[V any](w *World, reg *orderedRegistry[V], kind string, t reflect.Type) bool {
	entry, ok := reg.remove(t)
	if !ok {
		return false
	}
	if u, ok := any(entry.value).(Unregistrar); ok {
		u.OnUnregistered(w)
	}
	w.logger.Debug("unregistered",
		zap.String("kind", kind),
		zap.String("type", entry.name))
	return true
}

func lookup[T any, V any](reg *orderedRegistry[V], kind string) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	entry, ok := reg.get(t)
	if !ok {
		return zero, eris.Wrapf(ErrNotRegistered, "get %s %s", kind, typeLabel(t))
	}
	v, ok := any(entry.value).(T)
	if !ok {
		return zero, eris.Wrapf(ErrNotRegistered, "get %s %s", kind, typeLabel(t))
	}
	return v, nil
}

// AddManager registers m under its concrete type. It fails with
// ErrDuplicateRegistration if that type is already registered, or with the
// error returned by m's OnRegistered hook.
func AddManager[T Manager](w *World, m T) (T, error) {
	if err := register(w, &w.managers, "manager", Manager(m)); err != nil {
		var zero T
		return zero, err
	}
	return m, nil
}

// GetManager returns the registered manager of type T.
func GetManager[T Manager](w *World) (T, error) {
	return lookup[T](&w.managers, "manager")
}

// RemoveManager unregisters the manager of type T and reports whether one was registered.
func RemoveManager[T Manager](w *World) bool {
	return unregister(w, &w.managers, "manager", reflect.TypeFor[T]())
}

// AddSystem registers s under its concrete type. Systems added while a frame
// is running first execute on the next frame.
func AddSystem[T System](w *World, s T) (T, error) {
	if err := register(w, &w.systems, "system", System(s)); err != nil {
		var zero T
		return zero, err
	}
	return s, nil
}

// GetSystem returns the registered system of type T.
func GetSystem[T System](w *World) (T, error) {
	return lookup[T](&w.systems, "system")
}

// RemoveSystem unregisters the system of type T and reports whether one was
// registered. A system removed during a frame does not run for the rest of it.
func RemoveSystem[T System](w *World) bool {
	return unregister(w, &w.systems, "system", reflect.TypeFor[T]())
}
