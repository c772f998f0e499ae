package balls

import (
	"github.com/plus3/tickworld/ecs"
)

// Default system priorities. Input is applied by the caller between frames.
const (
	GravityPriority   = 10
	MovementPriority  = 20
	CollisionPriority = 30
	RenderPriority    = 100
)

// GravitySystem accelerates every ball downwards.
type GravitySystem struct {
	ecs.Order
	ecs.Toggle

	Gravity float64
}

func (s *GravitySystem) Process(frame *ecs.UpdateFrame) {
	for _, v := range ecs.Each[Velocity](frame.World) {
		v.Y += s.Gravity * frame.DeltaTime
	}
}

// MovementSystem integrates velocity into position.
type MovementSystem struct {
	ecs.Order
	ecs.Toggle
}

func (s *MovementSystem) Process(frame *ecs.UpdateFrame) {
	for _, pair := range ecs.Each2[Position, Velocity](frame.World) {
		pair.First.X += pair.Second.X * frame.DeltaTime
		pair.First.Y += pair.Second.Y * frame.DeltaTime
	}
}

// CollisionSystem bounces balls off the edges of Bounds, losing some speed
// on each bounce.
type CollisionSystem struct {
	ecs.Order
	ecs.Toggle

	Bounds      Bounds
	Restitution float64

	Balls ecs.View[Ball]
}

func (s *CollisionSystem) Process(frame *ecs.UpdateFrame) {
	for e, pair := range ecs.Each2[Position, Velocity](frame.World) {
		ball := s.Balls.Get(e)
		if ball == nil {
			continue
		}
		pos, vel := pair.First, pair.Second
		pos.X, vel.X = bounce(pos.X, vel.X, ball.Radius, s.Bounds.Width-ball.Radius, s.Restitution)
		pos.Y, vel.Y = bounce(pos.Y, vel.Y, ball.Radius, s.Bounds.Height-ball.Radius, s.Restitution)
	}
}

func bounce(p, v, lo, hi, restitution float64) (float64, float64) {
	switch {
	case p < lo:
		return lo, -v * restitution
	case p > hi:
		return hi, -v * restitution
	}
	return p, v
}

// Sprite is a ball as captured by the last RenderingSystem frame.
type Sprite struct {
	X, Y   float64
	Radius float64
	Color  [3]uint8
}

// RenderingSystem captures a Sprite per ball each frame. Disabling it keeps
// the previous capture.
type RenderingSystem struct {
	ecs.Order
	ecs.Toggle

	sprites []Sprite
}

func (s *RenderingSystem) Process(frame *ecs.UpdateFrame) {
	s.sprites = s.sprites[:0]
	for _, pair := range ecs.Each2[Position, Ball](frame.World) {
		s.sprites = append(s.sprites, Sprite{
			X:      pair.First.X,
			Y:      pair.First.Y,
			Radius: pair.Second.Radius,
			Color:  pair.Second.Color,
		})
	}
}

// Sprites returns the last capture. It is overwritten by the next frame.
func (s *RenderingSystem) Sprites() []Sprite {
	return s.sprites
}
