package balls

import (
	"github.com/plus3/tickworld/ecs"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Command is a user action understood by InputManager.
type Command int

const (
	CommandNone Command = iota
	CommandToggleRendering
	CommandToggleMovement
	CommandAddBalls
	CommandRemoveBalls
)

func (c Command) String() string {
	switch c {
	case CommandToggleRendering:
		return "toggle-rendering"
	case CommandToggleMovement:
		return "toggle-movement"
	case CommandAddBalls:
		return "add-balls"
	case CommandRemoveBalls:
		return "remove-balls"
	default:
		return "none"
	}
}

// BallsPerCommand is how many balls CommandAddBalls and CommandRemoveBalls
// create or destroy.
const BallsPerCommand = 10

type toggler interface {
	Enabled() bool
	SetEnabled(bool)
}

// InputManager maps Commands onto the other managers and systems. It looks
// them up when registered, so they must be added first.
type InputManager struct {
	ecs.Order

	world     *ecs.World
	balls     *BallManager
	rendering *RenderingSystem
	movement  []toggler
}

func (m *InputManager) OnRegistered(w *ecs.World) error {
	var err error
	if m.balls, err = ecs.GetManager[*BallManager](w); err != nil {
		return eris.Wrap(err, "input manager")
	}
	if m.rendering, err = ecs.GetSystem[*RenderingSystem](w); err != nil {
		return eris.Wrap(err, "input manager")
	}

	collision, err := ecs.GetSystem[*CollisionSystem](w)
	if err != nil {
		return eris.Wrap(err, "input manager")
	}
	movement, err := ecs.GetSystem[*MovementSystem](w)
	if err != nil {
		return eris.Wrap(err, "input manager")
	}
	gravity, err := ecs.GetSystem[*GravitySystem](w)
	if err != nil {
		return eris.Wrap(err, "input manager")
	}

	m.world = w
	m.movement = []toggler{collision, movement, gravity}
	return nil
}

// Handle applies cmd.
func (m *InputManager) Handle(cmd Command) {
	switch cmd {
	case CommandToggleRendering:
		m.rendering.SetEnabled(!m.rendering.Enabled())
	case CommandToggleMovement:
		for _, s := range m.movement {
			s.SetEnabled(!s.Enabled())
		}
	case CommandAddBalls:
		if _, err := m.balls.CreateBalls(BallsPerCommand); err != nil {
			m.world.Logger().Warn("add balls failed", zap.Error(err))
		}
	case CommandRemoveBalls:
		m.balls.DestroyBalls(BallsPerCommand)
	default:
		return
	}
	m.world.Logger().Info("input", zap.Stringer("command", cmd), zap.Int("balls", m.balls.Count()))
}
