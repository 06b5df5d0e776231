// Package game is the Flock Flow game played on top of the flock simulation: a player boid,
// waves of bois, collectibles, shockwaves, health and score.
package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/flock"
	"go.uber.org/zap"
)

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Targets maps homing categories to game entities. Dormant collectibles are not targets.
func Targets() flock.Targets {
	return flock.Targets{
		flock.TargetsPlayer:      flock.WithComponent[Player](),
		flock.TargetsCollectible: flock.AllOf(flock.WithComponent[Collectible](), flock.WithoutComponent[Dormant]()),
	}
}

// Setup prepares storage for a new game: it registers components, adds every singleton and
// spawns the player, a collectible and the opening wave request.
func Setup(storage *ecs.Storage, settings flock.Settings, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("game config: %w", err)
	}
	if err := flock.Setup(storage, settings); err != nil {
		return fmt.Errorf("flock settings: %w", err)
	}
	RegisterComponents(storage.Registry())

	rng := NewRng(cfg.Seed)
	storage.AddSingleton(cfg)
	storage.AddSingleton(State{Phase: Playing, Round: 1})
	storage.AddSingleton(Points{})
	storage.AddSingleton(Waves{})
	storage.AddSingleton(SpawnQueue{})
	storage.AddSingleton(Input{})
	storage.AddSingleton(rng)

	storage.Spawn(NewPlayer(rng.InRect(settings.Bounds), cfg, settings)...)
	storage.Spawn(
		flock.Tracked{},
		flock.Transform{Position: rng.InRect(settings.Bounds)},
		Collectible{Value: cfg.CollectibleValue},
	)

	var waves *Waves
	storage.ReadSingleton(&waves)
	waves.Request(mgl32.Vec2{}, mgl32.Vec2{})
	return nil
}

// Register adds the game and flock systems to scheduler in tick order.
func Register(scheduler *ecs.Scheduler, log *zap.Logger) {
	log = logger(log)

	scheduler.Register(&StateSystem{Log: log})
	scheduler.Register(&PlayerSystem{})
	flock.RegisterForces(scheduler, Targets(), log)
	scheduler.Register(&ShockwaveSystem{})
	flock.RegisterMotion(scheduler)
	scheduler.Register(&AlignmentToggleSystem{})
	scheduler.Register(&CollectSystem{Log: log})
	scheduler.Register(&DamageSystem{Log: log})
	scheduler.Register(&CooldownSystem{})
	scheduler.Register(&WaveSystem{Log: log})
	scheduler.Register(&SpawnSystem{Log: log})
	scheduler.Register(&ClearInputSystem{})
}

// NewScheduler returns a scheduler over storage with the full game registered.
func NewScheduler(storage *ecs.Storage, log *zap.Logger, opts ...ecs.SchedulerOption) *ecs.Scheduler {
	opts = append([]ecs.SchedulerOption{ecs.WithLogger(logger(log))}, opts...)
	scheduler := ecs.NewScheduler(storage, opts...)
	Register(scheduler, log)
	return scheduler
}

// ClearInputSystem resets the Input singleton at the end of the tick.
type ClearInputSystem struct {
	Input ecs.Singleton[Input]
}

func (s *ClearInputSystem) Execute(frame *ecs.UpdateFrame) {
	*s.Input.Get() = Input{}
}
