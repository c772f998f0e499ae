package main

//go:generate go run ../ecs-gen -components 16 -systems 8 -out generated.go

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/tickworld/config"
	"github.com/plus3/tickworld/ecs"
	"go.uber.org/zap"
)

func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}

// runMain parses args, runs the stress test and returns the process exit
// code. Deferred profile and logger flushes run before it returns.
func runMain(args []string, stdout, stderr io.Writer) int {
	defaults := config.Default().Stress

	fs := flag.NewFlagSet("ecs-stress", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Optional TOML or YAML config file.")
	duration := fs.Duration("duration", defaults.Duration, "The total duration the test should run for.")
	entityCount := fs.Int("entities", defaults.Entities, "The initial number of entities to create.")
	churn := fs.Int("churn", defaults.ChurnPerFrame, "Entities destroyed and recreated every frame.")
	profileMode := fs.String("profile", "", "Write a cpu or mem profile.")
	profileDir := fs.String("profile-dir", ".", "Directory the profile is written to.")
	reportPath := fs.String("report", "", "Write the report to this file instead of stdout.")
	gcPauseMetrics := fs.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
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

	// Flags given on the command line win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			cfg.Stress.Duration = *duration
		case "entities":
			cfg.Stress.Entities = *entityCount
		case "churn":
			cfg.Stress.ChurnPerFrame = *churn
		case "profile":
			cfg.Stress.Profile = *profileMode
		case "report":
			cfg.Stress.ReportPath = *reportPath
		}
	})

	logger, err := cfg.Logging.Build()
	if err != nil {
		fmt.Fprintf(stderr, "build logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	switch cfg.Stress.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(*profileDir), profile.NoShutdownHook, profile.Quiet).Stop()
	default:
		logger.Error("unknown profile mode", zap.String("profile", cfg.Stress.Profile))
		return 2
	}

	if err := run(cfg, logger, stdout, *gcPauseMetrics); err != nil {
		logger.Error("stress test failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg *config.Config, logger *zap.Logger, stdout io.Writer, gcPauseMetrics bool) error {
	logger.Info("starting ECS stress test")

	// 1. Setup registry and world
	registry := ecs.NewComponentRegistry()
	RegisterAllGeneratedComponents(registry)

	opts := append(cfg.World.Options(), ecs.WithRegistry(registry), ecs.WithLogger(logger.Named("world")))
	world := ecs.NewWorld(opts...)
	defer world.Close()

	if err := RegisterAllGeneratedSystems(world); err != nil {
		return err
	}

	// 2. Populate the world with initial entities
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	logger.Info("populating world", zap.Int("entities", cfg.Stress.Entities))
	live := make([]ecs.Entity, cfg.Stress.Entities)
	for i := range live {
		live[i] = spawnRandomEntity(world, rng)
	}
	world.Update()
	logger.Info("population complete", zap.Int("living", world.Stats().LivingEntities))

	// 3. Run the simulation loop
	report := &Report{
		Duration:       cfg.Stress.Duration,
		Entities:       cfg.Stress.Entities,
		Churn:          cfg.Stress.ChurnPerFrame,
		Components:     componentCount,
		Systems:        systemCount,
		GCPauseMetrics: gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", zap.Duration("duration", cfg.Stress.Duration))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Stress.Duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			churnEntities(world, live, cfg.Stress.ChurnPerFrame, rng)

			updateStart := time.Now()
			world.SetDelta(deltaTime.Seconds())
			world.Update()
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.World = world.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished", zap.Int64("updates", report.TotalUpdates))

	// 4. Generate the report
	out := stdout
	if cfg.Stress.ReportPath != "" {
		f, err := os.Create(cfg.Stress.ReportPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := report.Generate(out); err != nil {
		return err
	}

	logger.Info("stress test complete", zap.String("report", cfg.Stress.ReportPath))
	return nil
}

// spawnRandomEntity creates an entity with 1 to 5 distinct generated components.
func spawnRandomEntity(w *ecs.World, rng *rand.Rand) ecs.Entity {
	e := w.CreateEntity()
	n := rng.Intn(5) + 1
	for _, idx := range rng.Perm(componentCount)[:n] {
		componentAdders[idx](w, e)
	}
	return e
}

// churnEntities queues n random entities for destruction and replaces them
// in live with freshly spawned ones.
func churnEntities(w *ecs.World, live []ecs.Entity, n int, rng *rand.Rand) {
	if len(live) == 0 {
		return
	}
	for range n {
		i := rng.Intn(len(live))
		w.DestroyEntity(live[i])
		live[i] = spawnRandomEntity(w, rng)
	}
}
