// Package balls is a small bouncing-ball simulation built on ecs. It is shared
// by the headless cmd/balls runner and the Ebiten example.
package balls

import "github.com/plus3/tickworld/ecs"

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Ball struct {
	Radius float64
	Color  [3]uint8
}

// Bounds is the rectangle balls are kept inside.
type Bounds struct {
	Width, Height float64
}

// RegisterComponents registers the sample's component types with r.
func RegisterComponents(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](r)
	ecs.RegisterComponent[Velocity](r)
	ecs.RegisterComponent[Ball](r)
}

var palette = [][3]uint8{
	{255, 179, 186},
	{179, 229, 252},
	{255, 223, 186},
	{186, 255, 201},
	{255, 200, 221},
	{217, 186, 255},
}
