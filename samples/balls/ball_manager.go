package balls

import (
	"errors"
	"math/rand/v2"

	"github.com/plus3/tickworld/ecs"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// BallManager creates and destroys balls and keeps track of which entities are
// balls. An entity counts as a ball once a refresh sees it with a Ball and a
// Position, and stops counting when it is destroyed or loses either.
type BallManager struct {
	ecs.Order

	Bounds    Bounds
	MinRadius float64
	MaxRadius float64
	MaxSpeed  float64

	rng   *rand.Rand
	world *ecs.World
	balls []ecs.Entity
	index map[ecs.Entity]int
}

// NewBallManager creates a BallManager spawning inside bounds. seed makes the
// spawned balls reproducible.
func NewBallManager(bounds Bounds, seed uint64) *BallManager {
	return &BallManager{
		Bounds:    bounds,
		MinRadius: 4,
		MaxRadius: 12,
		MaxSpeed:  200,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		index:     make(map[ecs.Entity]int),
	}
}

func (m *BallManager) OnRegistered(w *ecs.World) error {
	m.world = w
	return nil
}

func (m *BallManager) OnUnregistered(w *ecs.World) {
	m.world = nil
	m.balls = nil
	clear(m.index)
}

// ErrDetached is returned when a BallManager is used without being
// registered with a World.
var ErrDetached = errors.New("ball manager is not registered with a world")

// CreateBalls spawns n balls at random positions. They are counted from the
// next Update. On error the balls created so far are kept.
func (m *BallManager) CreateBalls(n int) ([]ecs.Entity, error) {
	if m.world == nil {
		return nil, eris.Wrapf(ErrDetached, "create %d balls", n)
	}

	created := make([]ecs.Entity, 0, n)
	for range n {
		e, err := m.spawn()
		if err != nil {
			m.world.DestroyEntity(e)
			return created, err
		}
		created = append(created, e)
	}

	m.world.Logger().Debug("created balls", zap.Int("count", n))
	return created, nil
}

func (m *BallManager) spawn() (ecs.Entity, error) {
	radius := m.MinRadius + m.rng.Float64()*(m.MaxRadius-m.MinRadius)

	e := m.world.CreateEntity()
	if _, err := ecs.AddComponent(m.world, e, Position{
		X: radius + m.rng.Float64()*max(m.Bounds.Width-2*radius, 0),
		Y: radius + m.rng.Float64()*max(m.Bounds.Height-2*radius, 0),
	}); err != nil {
		return e, eris.Wrap(err, "spawn ball")
	}
	if _, err := ecs.AddComponent(m.world, e, Velocity{
		X: (m.rng.Float64()*2 - 1) * m.MaxSpeed,
		Y: (m.rng.Float64()*2 - 1) * m.MaxSpeed,
	}); err != nil {
		return e, eris.Wrap(err, "spawn ball")
	}
	if _, err := ecs.AddComponent(m.world, e, Ball{
		Radius: radius,
		Color:  palette[m.rng.IntN(len(palette))],
	}); err != nil {
		return e, eris.Wrap(err, "spawn ball")
	}
	return e, nil
}

// DestroyBalls queues up to n of the most recently tracked balls for
// destruction and returns how many were queued. They stop being counted
// immediately.
func (m *BallManager) DestroyBalls(n int) int {
	if m.world == nil {
		return 0
	}
	n = min(n, len(m.balls))
	for range n {
		e := m.balls[len(m.balls)-1]
		m.world.DestroyEntity(e)
		m.untrack(e)
	}
	m.world.Logger().Debug("destroyed balls", zap.Int("count", n))
	return n
}

// Count returns the number of tracked balls.
func (m *BallManager) Count() int {
	return len(m.balls)
}

// Balls returns the tracked balls. The slice is only valid until the next Update.
func (m *BallManager) Balls() []ecs.Entity {
	return m.balls
}

func (m *BallManager) OnRefresh(w *ecs.World, e ecs.Entity) {
	if ecs.HasComponent[Ball](w, e) && ecs.HasComponent[Position](w, e) {
		m.track(e)
		return
	}
	m.untrack(e)
}

func (m *BallManager) OnDestroy(w *ecs.World, e ecs.Entity) {
	m.untrack(e)
}

func (m *BallManager) track(e ecs.Entity) {
	if _, ok := m.index[e]; ok {
		return
	}
	m.index[e] = len(m.balls)
	m.balls = append(m.balls, e)
}

func (m *BallManager) untrack(e ecs.Entity) {
	i, ok := m.index[e]
	if !ok {
		return
	}
	last := len(m.balls) - 1
	if i != last {
		m.balls[i] = m.balls[last]
		m.index[m.balls[i]] = i
	}
	m.balls = m.balls[:last]
	delete(m.index, e)
}
