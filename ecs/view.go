package ecs

import (
	"iter"
	"reflect"
	"strings"
)

// View is a cached accessor for one component type. It skips the type lookup
// that GetComponent performs on every call, so it suits hot loops.
//
// A View field in a system or manager struct is initialised automatically
// when the owner is registered:
//
//	type GravitySystem struct {
//		ecs.Order
//		Velocity ecs.View[Velocity]
//	}
type View[T any] struct {
	w    *World
	id   ComponentTypeId
	pool componentPool[T]
}

// NewView returns a View of T bound to w.
func NewView[T any](w *World) *View[T] {
	v := &View[T]{}
	v.Init(w)
	return v
}

// Init binds the view to w, registering T if needed.
func (v *View[T]) Init(w *World) {
	v.w = w
	v.id = ComponentTypeIdOf[T](w.registry)
	v.pool = typedPool[T](w, v.id)
}

// Id returns the component type id of T.
func (v *View[T]) Id() ComponentTypeId {
	return v.id
}

// Get returns e's T, or nil if e is not living or has none.
func (v *View[T]) Get(e Entity) *T {
	if !v.w.entities.isLiving(e) {
		return nil
	}
	return v.pool.Get(e.Index)
}

// Has reports whether e is living and has a T.
func (v *View[T]) Has(e Entity) bool {
	return v.w.entities.isLiving(e) && v.pool.Has(e.Index)
}

// Len returns the number of stored T components.
func (v *View[T]) Len() int {
	return v.pool.Len()
}

// All yields every living entity with a T in slot order.
func (v *View[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		eachIn(v.w, v.pool, yield)
	}
}

var viewPkgPath = reflect.TypeFor[World]().PkgPath()

// initViews initialises exported View fields of the struct target points to.
func initViews(target any, w *World) {
	value := reflect.ValueOf(target)
	if value.Kind() != reflect.Pointer || value.IsNil() {
		return
	}
	value = value.Elem()
	if value.Kind() != reflect.Struct {
		return
	}

	worldValue := reflect.ValueOf(w)
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		ft := field.Type()
		if ft.PkgPath() != viewPkgPath || !strings.HasPrefix(ft.Name(), "View[") {
			continue
		}
		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("ecs: Init method not found on View field: " + value.Type().Field(i).Name)
		}
		initMethod.Call([]reflect.Value{worldValue})
	}
}
