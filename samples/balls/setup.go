package balls

import (
	"slices"

	"github.com/plus3/tickworld/ecs"
	"github.com/rotisserie/eris"
)

// Options configure New.
type Options struct {
	Bounds      Bounds
	Balls       int
	Gravity     float64
	Restitution float64
	Seed        uint64
}

// DefaultOptions returns a 640x480 scene with 100 balls.
func DefaultOptions() Options {
	return Options{
		Bounds:      Bounds{Width: 640, Height: 480},
		Balls:       100,
		Gravity:     400,
		Restitution: 0.9,
		Seed:        1,
	}
}

// Scene is the set of managers and systems making up the simulation.
type Scene struct {
	Balls     *BallManager
	Input     *InputManager
	Gravity   *GravitySystem
	Movement  *MovementSystem
	Collision *CollisionSystem
	Rendering *RenderingSystem
}

// New registers the simulation with w and spawns the initial balls. The
// components must already be registered with w's registry, see RegisterComponents.
// On error every manager and system New added is removed again and the
// balls it spawned are queued for destruction.
func New(w *ecs.World, opts Options) (_ *Scene, err error) {
	s := &Scene{
		Balls:     NewBallManager(opts.Bounds, opts.Seed),
		Input:     &InputManager{},
		Gravity:   &GravitySystem{Order: GravityPriority, Gravity: opts.Gravity},
		Movement:  &MovementSystem{Order: MovementPriority},
		Collision: &CollisionSystem{Order: CollisionPriority, Bounds: opts.Bounds, Restitution: opts.Restitution},
		Rendering: &RenderingSystem{Order: RenderPriority},
	}

	var undo []func()
	defer func() {
		if err == nil {
			return
		}
		for _, f := range slices.Backward(undo) {
			f()
		}
	}()

	// Input resolves the others in OnRegistered, so it goes last.
	steps := []struct {
		name   string
		add    func() error
		remove func()
	}{
		{"ball manager", addManager(w, s.Balls), func() { ecs.RemoveManager[*BallManager](w) }},
		{"gravity system", addSystem(w, s.Gravity), func() { ecs.RemoveSystem[*GravitySystem](w) }},
		{"movement system", addSystem(w, s.Movement), func() { ecs.RemoveSystem[*MovementSystem](w) }},
		{"collision system", addSystem(w, s.Collision), func() { ecs.RemoveSystem[*CollisionSystem](w) }},
		{"rendering system", addSystem(w, s.Rendering), func() { ecs.RemoveSystem[*RenderingSystem](w) }},
		{"input manager", addManager(w, s.Input), func() { ecs.RemoveManager[*InputManager](w) }},
	}
	for _, step := range steps {
		if err := step.add(); err != nil {
			return nil, eris.Wrapf(err, "add %s", step.name)
		}
		undo = append(undo, step.remove)
	}

	created, err := s.Balls.CreateBalls(opts.Balls)
	if err != nil {
		for _, e := range created {
			w.DestroyEntity(e)
		}
		return nil, err
	}
	return s, nil
}

func addManager[T ecs.Manager](w *ecs.World, m T) func() error {
	return func() error {
		_, err := ecs.AddManager(w, m)
		return err
	}
}

func addSystem[T ecs.System](w *ecs.World, sys T) func() error {
	return func() error {
		_, err := ecs.AddSystem(w, sys)
		return err
	}
}
