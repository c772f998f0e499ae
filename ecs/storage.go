package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

func typedPool[T any](w *World, id ComponentTypeId) componentPool[T] {
	return w.pool(id).(componentPool[T])
}

func componentName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// AddComponent stores value as e's component of type T and returns a pointer
// to the stored copy. If e already has a T it is overwritten in place and the
// returned pointer is the same as before. The pointer stays valid until the
// component is removed or e is destroyed.
func AddComponent[T any](w *World, e Entity, value T) (*T, error) {
	s := w.entities.slotOf(e)
	if s == nil {
		return nil, eris.Wrapf(ErrInvalidEntity, "add %s to %s", componentName[T](), e)
	}

	id := ComponentTypeIdOf[T](w.registry)
	ptr, replaced := typedPool[T](w, id).Set(e.Index, value)
	if !replaced {
		s.mask.set(id)
		w.refreshes.push(e)
	}
	return ptr, nil
}

// GetComponent returns e's component of type T.
func GetComponent[T any](w *World, e Entity) (*T, error) {
	s := w.entities.slotOf(e)
	if s == nil {
		return nil, eris.Wrapf(ErrInvalidEntity, "get %s of %s", componentName[T](), e)
	}

	id, ok := w.registry.byType[reflect.TypeFor[T]()]
	if !ok || !s.mask.has(id) {
		return nil, eris.Wrapf(ErrNotFound, "get %s of %s", componentName[T](), e)
	}
	return w.pools[id].(componentPool[T]).Get(e.Index), nil
}

// HasComponent reports whether e is living and has a component of type T.
func HasComponent[T any](w *World, e Entity) bool {
	s := w.entities.slotOf(e)
	if s == nil {
		return false
	}
	id, ok := w.registry.byType[reflect.TypeFor[T]()]
	return ok && s.mask.has(id)
}

// RemoveComponent removes e's component of type T. Removing an absent
// component is not an error.
func RemoveComponent[T any](w *World, e Entity) error {
	s := w.entities.slotOf(e)
	if s == nil {
		return eris.Wrapf(ErrInvalidEntity, "remove %s from %s", componentName[T](), e)
	}

	id, ok := w.registry.byType[reflect.TypeFor[T]()]
	if !ok || !s.mask.has(id) {
		return nil
	}
	w.pools[id].Remove(e.Index)
	s.mask.unset(id)
	w.refreshes.push(e)
	return nil
}
