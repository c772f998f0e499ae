package ecs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plus3/tickworld/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemsRunInPriorityOrder(t *testing.T) {
	world := ecs.NewWorld()
	log := &recorder{}

	_, err := ecs.AddSystem(world, &thirdSystem{orderedSystem{Order: 3, label: "3", log: log}})
	require.NoError(t, err)
	_, err = ecs.AddSystem(world, &firstSystem{orderedSystem{Order: 1, label: "1", log: log}})
	require.NoError(t, err)
	_, err = ecs.AddSystem(world, &secondSystem{orderedSystem{Order: 2, label: "2", log: log}})
	require.NoError(t, err)

	for frame := 0; frame < 3; frame++ {
		log.calls = nil
		world.Update()
		assert.Equal(t, []string{"1", "2", "3"}, log.calls, "frame %d", frame)
	}
}

func TestEqualPrioritiesRunInRegistrationOrder(t *testing.T) {
	world := ecs.NewWorld()
	log := &recorder{}

	_, err := ecs.AddSystem(world, &secondSystem{orderedSystem{label: "b", log: log}})
	require.NoError(t, err)
	_, err = ecs.AddSystem(world, &firstSystem{orderedSystem{label: "a", log: log}})
	require.NoError(t, err)
	_, err = ecs.AddSystem(world, &thirdSystem{orderedSystem{Order: -1, label: "c", log: log}})
	require.NoError(t, err)

	world.Update()
	assert.Equal(t, []string{"c", "b", "a"}, log.calls)
}

func TestDuplicateSystem(t *testing.T) {
	world := ecs.NewWorld()
	log := &recorder{}

	first, err := ecs.AddSystem(world, &firstSystem{orderedSystem{label: "x", log: log}})
	require.NoError(t, err)

	_, err = ecs.AddSystem(world, &firstSystem{orderedSystem{label: "y", log: log}})
	assert.ErrorIs(t, err, ecs.ErrDuplicateRegistration)

	got, err := ecs.GetSystem[*firstSystem](world)
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestGetAndRemoveSystem(t *testing.T) {
	world := ecs.NewWorld()
	log := &recorder{}

	_, err := ecs.GetSystem[*firstSystem](world)
	assert.ErrorIs(t, err, ecs.ErrNotRegistered)

	_, err = ecs.AddSystem(world, &firstSystem{orderedSystem{label: "1", log: log}})
	require.NoError(t, err)

	assert.True(t, ecs.RemoveSystem[*firstSystem](world))
	assert.False(t, ecs.RemoveSystem[*firstSystem](world))

	world.Update()
	assert.Empty(t, log.calls)

	_, err = ecs.GetSystem[*firstSystem](world)
	assert.ErrorIs(t, err, ecs.ErrNotRegistered)
}

func TestAddNilSystemPanics(t *testing.T) {
	world := ecs.NewWorld()
	assert.Panics(t, func() {
		var s *firstSystem
		_, _ = ecs.AddSystem(world, s)
	})
}

type spawnManager struct {
	ecs.Order
	spawned int
}

type scoreManager struct {
	ecs.Order
	spawner *spawnManager
}

func (m *scoreManager) OnRegistered(w *ecs.World) error {
	spawner, err := ecs.GetManager[*spawnManager](w)
	if err != nil {
		return err
	}
	m.spawner = spawner
	return nil
}

func TestManagerDependencyResolution(t *testing.T) {
	world := ecs.NewWorld()

	spawner, err := ecs.AddManager(world, &spawnManager{spawned: 7})
	require.NoError(t, err)
	scores, err := ecs.AddManager(world, &scoreManager{})
	require.NoError(t, err)

	require.NotNil(t, scores.spawner)
	assert.Same(t, spawner, scores.spawner)
	assert.Equal(t, 7, scores.spawner.spawned)
}

func TestFailedRegistrationRollsBack(t *testing.T) {
	world := ecs.NewWorld()

	_, err := ecs.AddManager(world, &scoreManager{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ecs.ErrNotRegistered)

	_, err = ecs.GetManager[*scoreManager](world)
	assert.ErrorIs(t, err, ecs.ErrNotRegistered)

	// Once the dependency exists the same type registers fine.
	_, err = ecs.AddManager(world, &spawnManager{})
	require.NoError(t, err)
	_, err = ecs.AddManager(world, &scoreManager{})
	assert.NoError(t, err)
}

type lifecycleManager struct {
	ecs.Order
	log *recorder
}

func (m *lifecycleManager) OnRegistered(w *ecs.World) error {
	m.log.add("registered")
	return nil
}

func (m *lifecycleManager) OnUnregistered(w *ecs.World) {
	m.log.add("unregistered")
}

func (m *lifecycleManager) OnRefresh(w *ecs.World, e ecs.Entity) {
	m.log.add("refresh " + e.String())
}

func (m *lifecycleManager) OnDestroy(w *ecs.World, e ecs.Entity) {
	// Components are still attached while destroy listeners run.
	if ecs.HasComponent[Position](w, e) {
		m.log.add("destroy " + e.String() + " with position")
		return
	}
	m.log.add("destroy " + e.String())
}

func TestManagerHooks(t *testing.T) {
	world := newTestWorld()
	log := &recorder{}

	_, err := ecs.AddManager(world, &lifecycleManager{log: log})
	require.NoError(t, err)

	e := world.CreateEntity()
	_, err = ecs.AddComponent(world, e, Position{})
	require.NoError(t, err)
	_, err = ecs.AddComponent(world, e, Velocity{})
	require.NoError(t, err)
	world.Update()

	world.RefreshEntity(e)
	world.Update()

	world.DestroyEntity(e)
	world.RefreshEntity(e)
	world.Update()

	assert.True(t, ecs.RemoveManager[*lifecycleManager](world))

	assert.Equal(t, []string{
		"registered",
		"refresh 0:0",
		"refresh 0:0",
		"destroy 0:0 with position",
		"unregistered",
	}, log.calls)
}

func TestReplacingComponentDoesNotRefresh(t *testing.T) {
	world := newTestWorld()
	log := &recorder{}
	_, err := ecs.AddManager(world, &lifecycleManager{log: log})
	require.NoError(t, err)

	e := world.CreateEntity()
	_, err = ecs.AddComponent(world, e, Position{})
	require.NoError(t, err)
	world.Update()

	log.calls = nil
	_, err = ecs.AddComponent(world, e, Position{X: 1})
	require.NoError(t, err)
	world.Update()
	assert.Empty(t, log.calls)

	require.NoError(t, ecs.RemoveComponent[Position](world, e))
	world.Update()
	assert.Equal(t, []string{"refresh 0:0"}, log.calls)
}

// reaper destroys every entity with a Position while the frame runs and
// records how many it saw.
type reaper struct {
	ecs.Order
	seen []int
}

func (s *reaper) Process(frame *ecs.UpdateFrame) {
	count := 0
	for e := range ecs.Each[Position](frame.World) {
		frame.World.DestroyEntity(e)
		count++
	}
	s.seen = append(s.seen, count)
}

type positionCounter struct {
	ecs.Order
	seen []int
}

func (s *positionCounter) Process(frame *ecs.UpdateFrame) {
	count := 0
	for e := range ecs.Each[Position](frame.World) {
		if frame.World.IsLiving(e) {
			count++
		}
	}
	s.seen = append(s.seen, count)
}

func TestMidFrameDestructionIsDeferred(t *testing.T) {
	world := newTestWorld()
	for i := 0; i < 3; i++ {
		e := world.CreateEntity()
		_, err := ecs.AddComponent(world, e, Position{X: float32(i)})
		require.NoError(t, err)
	}

	r, err := ecs.AddSystem(world, &reaper{Order: 1})
	require.NoError(t, err)
	c, err := ecs.AddSystem(world, &positionCounter{Order: 2})
	require.NoError(t, err)

	world.Update()
	assert.Equal(t, []int{3}, r.seen)
	assert.Equal(t, []int{3}, c.seen, "later systems still see entities destroyed this frame")

	world.Update()
	assert.Equal(t, []int{3, 0}, r.seen)
	assert.Equal(t, []int{3, 0}, c.seen)
	assert.Equal(t, 0, world.Stats().LivingEntities)
}

type lateJoiner struct {
	ecs.Order
	runs int
}

func (s *lateJoiner) Process(frame *ecs.UpdateFrame) {
	s.runs++
}

type recruiter struct {
	ecs.Order
	joined *lateJoiner
}

func (s *recruiter) Process(frame *ecs.UpdateFrame) {
	if s.joined == nil {
		s.joined, _ = ecs.AddSystem(frame.World, &lateJoiner{Order: 100})
	}
}

func TestSystemAddedMidFrameRunsNextFrame(t *testing.T) {
	world := ecs.NewWorld()
	r, err := ecs.AddSystem(world, &recruiter{})
	require.NoError(t, err)

	world.Update()
	require.NotNil(t, r.joined)
	assert.Equal(t, 0, r.joined.runs)

	world.Update()
	assert.Equal(t, 1, r.joined.runs)
}

type remover struct {
	ecs.Order
}

func (s *remover) Process(frame *ecs.UpdateFrame) {
	ecs.RemoveSystem[*lateJoiner](frame.World)
}

func TestSystemRemovedMidFrameDoesNotRun(t *testing.T) {
	world := ecs.NewWorld()
	_, err := ecs.AddSystem(world, &remover{Order: 1})
	require.NoError(t, err)
	late, err := ecs.AddSystem(world, &lateJoiner{Order: 2})
	require.NoError(t, err)

	world.Update()
	assert.Equal(t, 0, late.runs)
}

type toggledSystem struct {
	ecs.Order
	ecs.Toggle
	runs int
}

func (s *toggledSystem) Process(frame *ecs.UpdateFrame) {
	s.runs++
}

func TestDisabledSystemIsSkipped(t *testing.T) {
	world := ecs.NewWorld()
	s, err := ecs.AddSystem(world, &toggledSystem{})
	require.NoError(t, err)

	world.Update()
	s.SetEnabled(false)
	world.Update()
	s.SetEnabled(true)
	world.Update()

	assert.Equal(t, 2, s.runs)
	stats := world.Stats()
	require.Len(t, stats.Systems, 1)
	assert.Equal(t, int64(2), stats.Systems[0].ExecutionCount)
	assert.True(t, stats.Systems[0].Enabled)
}

type reentrant struct {
	ecs.Order
}

func (s *reentrant) Process(frame *ecs.UpdateFrame) {
	frame.World.Update()
}

func TestReentrantUpdatePanics(t *testing.T) {
	world := ecs.NewWorld()
	_, err := ecs.AddSystem(world, &reentrant{})
	require.NoError(t, err)

	assert.Panics(t, world.Update)
	assert.Equal(t, ecs.FrameIdle, world.State())
}

type stateProbe struct {
	ecs.Order
	state ecs.FrameState
	delta float64
	index uint64
}

func (s *stateProbe) Process(frame *ecs.UpdateFrame) {
	s.state = frame.World.State()
	s.delta = frame.DeltaTime
	s.index = frame.Index
}

func TestFrameState(t *testing.T) {
	world := ecs.NewWorld()
	probe, err := ecs.AddSystem(world, &stateProbe{})
	require.NoError(t, err)

	world.SetDelta(0.25)
	world.Update()
	world.Update()

	assert.Equal(t, ecs.FrameRunningSystems, probe.state)
	assert.Equal(t, 0.25, probe.delta)
	assert.Equal(t, uint64(2), probe.index)
	assert.Equal(t, ecs.FrameIdle, world.State())
	assert.Equal(t, 0.25, world.Delta())
	assert.Equal(t, uint64(2), world.Frame())
	assert.Equal(t, "RunningSystems", ecs.FrameRunningSystems.String())
}

// chainReaction destroys the entity's partner when an entity is destroyed.
type chainReaction struct {
	ecs.Order
	partner map[ecs.Entity]ecs.Entity
}

func (m *chainReaction) OnDestroy(w *ecs.World, e ecs.Entity) {
	if p, ok := m.partner[e]; ok {
		w.DestroyEntity(p)
	}
}

func TestDestructionsQueuedByListenersApplySameFrame(t *testing.T) {
	world := ecs.NewWorld()
	a := world.CreateEntity()
	b := world.CreateEntity()
	_, err := ecs.AddManager(world, &chainReaction{partner: map[ecs.Entity]ecs.Entity{a: b}})
	require.NoError(t, err)

	world.DestroyEntity(a)
	world.Update()

	assert.False(t, world.IsLiving(a))
	assert.False(t, world.IsLiving(b))
}

func TestCloseUnregistersInReverseOrder(t *testing.T) {
	world := newTestWorld()
	log := &recorder{}

	_, err := ecs.AddManager(world, &lifecycleManager{log: log})
	require.NoError(t, err)
	e := world.CreateEntity()
	_, err = ecs.AddComponent(world, e, Position{})
	require.NoError(t, err)

	world.Close()

	assert.Equal(t, []string{"registered", "unregistered"}, log.calls)
	assert.False(t, world.IsLiving(e))
	assert.Equal(t, 0, ecs.Count[Position](world))
	assert.Equal(t, 0, world.Stats().PendingRefreshes)
}

func TestStats(t *testing.T) {
	world := newTestWorld()
	_, err := ecs.AddManager(world, &spawnManager{Order: 4})
	require.NoError(t, err)

	a := world.CreateEntity()
	world.CreateEntity()
	world.DestroyEntity(a)
	world.Update()

	stats := world.Stats()
	assert.Equal(t, uint64(1), stats.Frame)
	assert.Equal(t, 1, stats.LivingEntities)
	assert.Equal(t, 2, stats.Slots)
	assert.Equal(t, 1, stats.FreeSlots)
	assert.Equal(t, 4, stats.ComponentTypes)
	assert.Equal(t, []ecs.RegistrationInfo{{Name: "ecs_test.spawnManager", Priority: 4}}, stats.Managers)
}

func TestHookErrorIsReturned(t *testing.T) {
	world := ecs.NewWorld()
	boom := errors.New("boom")

	_, err := ecs.AddSystem(world, &failingSystem{err: boom})
	assert.ErrorIs(t, err, boom)
	_, err = ecs.GetSystem[*failingSystem](world)
	assert.ErrorIs(t, err, ecs.ErrNotRegistered)
}

type failingSystem struct {
	ecs.Order
	err error
}

func (s *failingSystem) Process(frame *ecs.UpdateFrame) {}

func (s *failingSystem) OnRegistered(w *ecs.World) error {
	return s.err
}

type stopSystem struct {
	ecs.Order
	frames    int
	stopAfter int
	cancel    context.CancelFunc
}

func (s *stopSystem) Process(frame *ecs.UpdateFrame) {
	s.frames++
	if s.frames == s.stopAfter {
		s.cancel()
	}
}

func TestRunUntilCancelled(t *testing.T) {
	world := ecs.NewWorld(ecs.WithMaxDelta(time.Nanosecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sys, err := ecs.AddSystem(world, &stopSystem{stopAfter: 3, cancel: cancel})
	require.NoError(t, err)

	world.Run(ctx, time.Millisecond)

	assert.GreaterOrEqual(t, sys.frames, 3)
	assert.Equal(t, time.Nanosecond.Seconds(), world.Delta())
	assert.Equal(t, ecs.FrameIdle, world.State())
}
