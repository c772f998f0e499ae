package balls_test

import (
	"testing"

	"github.com/plus3/tickworld/ecs"
	"github.com/plus3/tickworld/samples/balls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScene(t *testing.T, opts balls.Options) (*ecs.World, *balls.Scene) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	balls.RegisterComponents(registry)
	w := ecs.NewWorld(ecs.WithRegistry(registry))
	t.Cleanup(w.Close)

	scene, err := balls.New(w, opts)
	require.NoError(t, err)
	return w, scene
}

func TestBallsAreCountedAfterUpdate(t *testing.T) {
	opts := balls.DefaultOptions()
	opts.Balls = 25
	w, scene := newScene(t, opts)

	assert.Equal(t, 0, scene.Balls.Count())

	w.SetDelta(0.016)
	w.Update()
	assert.Equal(t, 25, scene.Balls.Count())
	assert.Len(t, scene.Rendering.Sprites(), 25)
}

func TestInputCommands(t *testing.T) {
	opts := balls.DefaultOptions()
	opts.Balls = 5
	w, scene := newScene(t, opts)
	w.Update()

	scene.Input.Handle(balls.CommandAddBalls)
	w.Update()
	assert.Equal(t, 5+balls.BallsPerCommand, scene.Balls.Count())

	scene.Input.Handle(balls.CommandRemoveBalls)
	assert.Equal(t, 5, scene.Balls.Count())
	w.Update()
	assert.Equal(t, 5, w.Stats().LivingEntities)

	scene.Input.Handle(balls.CommandRemoveBalls)
	w.Update()
	assert.Equal(t, 0, scene.Balls.Count())

	scene.Input.Handle(balls.CommandToggleMovement)
	assert.False(t, scene.Gravity.Enabled())
	assert.False(t, scene.Movement.Enabled())
	assert.False(t, scene.Collision.Enabled())
	assert.True(t, scene.Rendering.Enabled())

	scene.Input.Handle(balls.CommandToggleRendering)
	assert.False(t, scene.Rendering.Enabled())
}

func TestDisabledMovementFreezesBalls(t *testing.T) {
	opts := balls.DefaultOptions()
	opts.Balls = 1
	w, scene := newScene(t, opts)
	w.Update()

	e := scene.Balls.Balls()[0]
	before := *mustGet[balls.Position](t, w, e)

	scene.Input.Handle(balls.CommandToggleMovement)
	w.SetDelta(0.5)
	w.Update()

	assert.Equal(t, before, *mustGet[balls.Position](t, w, e))
}

func TestBallsStayInBounds(t *testing.T) {
	opts := balls.DefaultOptions()
	opts.Balls = 50
	w, scene := newScene(t, opts)

	for range 200 {
		w.SetDelta(1.0 / 30)
		w.Update()
	}

	for _, s := range scene.Rendering.Sprites() {
		assert.GreaterOrEqual(t, s.X, s.Radius)
		assert.LessOrEqual(t, s.X, opts.Bounds.Width-s.Radius)
		assert.GreaterOrEqual(t, s.Y, s.Radius)
		assert.LessOrEqual(t, s.Y, opts.Bounds.Height-s.Radius)
	}
}

func TestCollisionBounces(t *testing.T) {
	w := ecs.NewWorld()
	sys, err := ecs.AddSystem(w, &balls.CollisionSystem{
		Bounds:      balls.Bounds{Width: 100, Height: 100},
		Restitution: 0.5,
	})
	require.NoError(t, err)

	e := w.CreateEntity()
	_, err = ecs.AddComponent(w, e, balls.Position{X: -5, Y: 120})
	require.NoError(t, err)
	_, err = ecs.AddComponent(w, e, balls.Velocity{X: -10, Y: 20})
	require.NoError(t, err)
	_, err = ecs.AddComponent(w, e, balls.Ball{Radius: 10})
	require.NoError(t, err)

	w.Update()
	require.True(t, sys.Enabled())

	assert.Equal(t, balls.Position{X: 10, Y: 90}, *mustGet[balls.Position](t, w, e))
	assert.Equal(t, balls.Velocity{X: 5, Y: -10}, *mustGet[balls.Velocity](t, w, e))
}

func TestInputManagerNeedsSystems(t *testing.T) {
	w := ecs.NewWorld()
	_, err := ecs.AddManager(w, &balls.InputManager{})
	require.ErrorIs(t, err, ecs.ErrNotRegistered)

	_, err = ecs.GetManager[*balls.InputManager](w)
	assert.ErrorIs(t, err, ecs.ErrNotRegistered)
}

func TestDestroyedBallIsUntracked(t *testing.T) {
	opts := balls.DefaultOptions()
	opts.Balls = 3
	w, scene := newScene(t, opts)
	w.Update()

	e := scene.Balls.Balls()[0]
	w.DestroyEntity(e)
	w.Update()

	assert.Equal(t, 2, scene.Balls.Count())
	assert.NotContains(t, scene.Balls.Balls(), e)
}

func TestRemovingBallComponentUntracks(t *testing.T) {
	opts := balls.DefaultOptions()
	opts.Balls = 2
	w, scene := newScene(t, opts)
	w.Update()

	e := scene.Balls.Balls()[1]
	require.NoError(t, ecs.RemoveComponent[balls.Ball](w, e))
	w.Update()

	assert.Equal(t, 1, scene.Balls.Count())
	assert.True(t, w.IsLiving(e))
}

func TestNewRollsBackOnFailure(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	balls.RegisterComponents(registry)
	w := ecs.NewWorld(ecs.WithRegistry(registry))

	existing, err := ecs.AddSystem(w, &balls.RenderingSystem{})
	require.NoError(t, err)

	_, err = balls.New(w, balls.DefaultOptions())
	require.ErrorIs(t, err, ecs.ErrDuplicateRegistration)

	_, err = ecs.GetManager[*balls.BallManager](w)
	assert.ErrorIs(t, err, ecs.ErrNotRegistered)
	_, err = ecs.GetSystem[*balls.GravitySystem](w)
	assert.ErrorIs(t, err, ecs.ErrNotRegistered)
	_, err = ecs.GetSystem[*balls.CollisionSystem](w)
	assert.ErrorIs(t, err, ecs.ErrNotRegistered)

	got, err := ecs.GetSystem[*balls.RenderingSystem](w)
	require.NoError(t, err)
	assert.Same(t, existing, got)

	w.Update()
	assert.Equal(t, 0, w.Stats().LivingEntities)
}

func TestDetachedBallManager(t *testing.T) {
	m := balls.NewBallManager(balls.Bounds{Width: 10, Height: 10}, 1)

	created, err := m.CreateBalls(3)
	require.ErrorIs(t, err, balls.ErrDetached)
	assert.Empty(t, created)
	assert.Equal(t, 0, m.DestroyBalls(3))
}

func TestCreateBallsReturnsEntities(t *testing.T) {
	opts := balls.DefaultOptions()
	opts.Balls = 0
	w, scene := newScene(t, opts)

	created, err := scene.Balls.CreateBalls(4)
	require.NoError(t, err)
	require.Len(t, created, 4)
	for _, e := range created {
		assert.True(t, ecs.HasComponent[balls.Ball](w, e))
		assert.True(t, ecs.HasComponent[balls.Velocity](w, e))
	}

	w.Update()
	assert.ElementsMatch(t, created, scene.Balls.Balls())
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity) *T {
	t.Helper()
	v, err := ecs.GetComponent[T](w, e)
	require.NoError(t, err)
	return v
}
