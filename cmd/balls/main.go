// Command balls runs the bouncing-ball sample without a window. An autopilot
// replays the keyboard commands of the interactive version on a timer.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/plus3/tickworld/config"
	"github.com/plus3/tickworld/ecs"
	"github.com/plus3/tickworld/samples/balls"
	"github.com/plus3/tickworld/scripting"
	"go.uber.org/zap"
)

func main() {
	os.Exit(runMain(os.Args[1:], os.Stderr))
}

// runMain parses args, runs the sample and returns the process exit code
// once the logger has been flushed.
func runMain(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("balls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Optional TOML or YAML config file.")
	duration := fs.Duration("duration", 5*time.Second, "How long to run.")
	ballCount := fs.Int("balls", 100, "Initial number of balls.")
	scriptDir := fs.String("scripts", "", "Load Lua scripts from this directory.")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		cfg = loaded
	}
	if *scriptDir != "" {
		cfg.Scripting.Enabled = true
		cfg.Scripting.Dir = *scriptDir
	}

	logger, err := cfg.Logging.Build()
	if err != nil {
		fmt.Fprintf(stderr, "build logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	opts := balls.DefaultOptions()
	opts.Balls = *ballCount
	opts.Seed = uint64(time.Now().UnixNano())

	if err := run(cfg, opts, *duration, logger); err != nil {
		logger.Error("balls failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg *config.Config, opts balls.Options, duration time.Duration, logger *zap.Logger) error {
	// The engine must outlive the world so the Lua system can unregister.
	var engine *scripting.Engine
	if cfg.Scripting.Enabled {
		engine = scripting.NewEngine(logger.Named("lua"))
		defer engine.Close()
		if err := engine.LoadDir(cfg.Scripting.Dir); err != nil {
			return err
		}
	}

	registry := ecs.NewComponentRegistry()
	balls.RegisterComponents(registry)

	world := ecs.NewWorld(append(cfg.World.Options(), ecs.WithRegistry(registry), ecs.WithLogger(logger.Named("world")))...)
	defer world.Close()

	scene, err := balls.New(world, opts)
	if err != nil {
		return err
	}

	if _, err := ecs.AddSystem(world, &Autopilot{Input: scene.Input, Interval: time.Second}); err != nil {
		return err
	}
	if _, err := ecs.AddSystem(world, &Reporter{Order: balls.RenderPriority + 1, Scene: scene, Interval: time.Second, Log: logger}); err != nil {
		return err
	}

	if engine != nil {
		if _, err := ecs.AddSystem(world, scripting.NewLuaSystem(engine, cfg.Scripting.Priority)); err != nil {
			return err
		}
		defer func() {
			logger.Info("lua clock", zap.Any("elapsed", engine.Global("elapsed")))
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	logger.Info("running", zap.Int("balls", opts.Balls), zap.Duration("tick", cfg.World.TickRate))
	world.Run(ctx, cfg.World.TickRate)

	stats := world.Stats()
	logger.Info("done",
		zap.Uint64("frames", stats.Frame),
		zap.Int("balls", scene.Balls.Count()),
		zap.Int("living", stats.LivingEntities))
	return nil
}
