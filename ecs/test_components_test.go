package ecs_test

import (
	"github.com/plus3/tickworld/ecs"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Score int32

type Marker struct{}

// recorder collects the order in which hooks and systems fire.
type recorder struct {
	calls []string
}

func (r *recorder) add(s string) {
	r.calls = append(r.calls, s)
}

// orderedSystem records its label each time it runs.
type orderedSystem struct {
	ecs.Order
	label string
	log   *recorder
}

func (s *orderedSystem) Process(frame *ecs.UpdateFrame) {
	s.log.add(s.label)
}

type firstSystem struct{ orderedSystem }
type secondSystem struct{ orderedSystem }
type thirdSystem struct{ orderedSystem }

func newTestWorld() *ecs.World {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry, ecs.WithStorage(ecs.StorageSparse))
	return ecs.NewWorld(ecs.WithRegistry(registry))
}
