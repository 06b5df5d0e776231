// Command flock-stress runs the simulation headless for a fixed number of ticks and prints a
// timing report.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/config"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/flock"
	"github.com/plus3/flockflow/game"
	"go.uber.org/zap"
)

// beacon marks the fixed homing targets used in flock mode.
type beacon struct{}

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file. Defaults are used when empty.")
	boids := flag.Int("boids", 2000, "Number of boids to spawn before the run.")
	ticks := flag.Int("ticks", 600, "Number of ticks to simulate.")
	dt := flag.Float64("dt", 1.0/60.0, "Fixed tick length in seconds.")
	mode := flag.String("mode", "flock", "Pipeline to run: flock or game.")
	seed := flag.Uint64("seed", 1, "RNG seed.")
	debug := flag.Bool("debug", false, "Enable development logging.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Include GC pause totals in the report.")
	flag.Parse()

	log := newLogger(*debug)
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	cfg.Game.Seed = *seed

	storage, scheduler, err := build(*mode, cfg, *boids, log)
	if err != nil {
		log.Fatal("failed to set up simulation", zap.String("mode", *mode), zap.Error(err))
	}

	report := &Report{
		Mode:           *mode,
		Boids:          *boids,
		Ticks:          *ticks,
		TickLength:     time.Duration(*dt * float64(time.Second)),
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime:     Stats{Samples: make([]time.Duration, 0, *ticks)},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.String("mode", *mode), zap.Int("boids", *boids), zap.Int("ticks", *ticks))
	start := time.Now()
	for range *ticks {
		tickStart := time.Now()
		scheduler.Once(*dt)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(tickStart))
	}
	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Scheduler = scheduler.GetStats()
	report.Storage = storage.CollectStats()
	var ix *flock.SpatialIndex
	if storage.ReadSingleton(&ix) {
		report.IndexedEntities = ix.Len()
		report.IndexCells = ix.Cells()
	}

	fmt.Println()
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
}

func newLogger(debug bool) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return log
}

// build creates storage and a scheduler for mode and populates it with boids.
func build(mode string, cfg config.Config, boids int, log *zap.Logger) (*ecs.Storage, *ecs.Scheduler, error) {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)

	switch mode {
	case "flock":
		if err := flock.Setup(storage, cfg.Flock); err != nil {
			return nil, nil, err
		}
		ecs.RegisterComponent[beacon](registry)
		populate(storage, cfg, boids)

		scheduler := ecs.NewScheduler(storage, ecs.WithLogger(log))
		flock.Register(scheduler, flock.Targets{
			flock.TargetsCollectible: flock.WithComponent[beacon](),
		}, log)
		return storage, scheduler, nil

	case "game":
		if err := game.Setup(storage, cfg.Flock, cfg.Game); err != nil {
			return nil, nil, err
		}
		var queue *game.SpawnQueue
		storage.ReadSingleton(&queue)
		queue.Push(flock.SpawnRequest{Kind: flock.KindBoi, Count: boids})
		return storage, game.NewScheduler(storage, log, ecs.WithSlowFrameWarning(50*time.Millisecond)), nil

	default:
		return nil, nil, fmt.Errorf("unknown mode %q", mode)
	}
}

// populate spreads boids over the arena. Every tenth boid homes on one of four beacons.
func populate(storage *ecs.Storage, cfg config.Config, boids int) {
	rng := game.NewRng(cfg.Game.Seed)
	bounds := cfg.Flock.Bounds

	for _, corner := range []mgl32.Vec2{
		{bounds.Min[0] / 2, bounds.Min[1] / 2},
		{bounds.Max[0] / 2, bounds.Min[1] / 2},
		{bounds.Min[0] / 2, bounds.Max[1] / 2},
		{bounds.Max[0] / 2, bounds.Max[1] / 2},
	} {
		storage.Spawn(flock.Tracked{}, flock.Transform{Position: corner}, beacon{})
	}

	for i := range boids {
		pos := rng.InRect(bounds)
		vel := mgl32.Vec2{rng.Range(-1, 1), rng.Range(-1, 1)}.Mul(cfg.Flock.MaxSpeed)
		components := flock.NewBoid(flock.KindBoi, pos, vel)
		if i%10 == 0 {
			components = append(components, flock.NewHoming(flock.TargetsCollectible))
		}
		storage.Spawn(components...)
	}
}
