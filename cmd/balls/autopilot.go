package main

import (
	"time"

	"github.com/plus3/tickworld/ecs"
	"github.com/plus3/tickworld/samples/balls"
	"go.uber.org/zap"
)

// script is the command sequence the autopilot cycles through.
var script = []balls.Command{
	balls.CommandAddBalls,
	balls.CommandAddBalls,
	balls.CommandToggleMovement,
	balls.CommandToggleMovement,
	balls.CommandRemoveBalls,
	balls.CommandToggleRendering,
	balls.CommandToggleRendering,
	balls.CommandRemoveBalls,
}

// Autopilot issues the next scripted command every Interval of simulated time.
type Autopilot struct {
	ecs.Order

	Input    *balls.InputManager
	Interval time.Duration

	elapsed float64
	next    int
}

func (a *Autopilot) Process(frame *ecs.UpdateFrame) {
	a.elapsed += frame.DeltaTime
	if a.elapsed < a.Interval.Seconds() {
		return
	}
	a.elapsed = 0
	a.Input.Handle(script[a.next])
	a.next = (a.next + 1) % len(script)
}

// Reporter logs the ball count and the frame rate every Interval.
type Reporter struct {
	ecs.Order

	Scene    *balls.Scene
	Interval time.Duration
	Log      *zap.Logger

	elapsed float64
	frames  int
}

func (r *Reporter) Process(frame *ecs.UpdateFrame) {
	r.elapsed += frame.DeltaTime
	r.frames++
	if r.elapsed < r.Interval.Seconds() {
		return
	}
	r.Log.Info("tick",
		zap.Int("balls", r.Scene.Balls.Count()),
		zap.Int("drawn", len(r.Scene.Rendering.Sprites())),
		zap.Float64("fps", float64(r.frames)/r.elapsed),
		zap.Bool("moving", r.Scene.Movement.Enabled()))
	r.elapsed = 0
	r.frames = 0
}
