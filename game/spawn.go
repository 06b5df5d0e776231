package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/flock"
	"go.uber.org/zap"
)

// angryJitter spreads angry bois spawned at one point so separation can act on them.
const angryJitter = 8

// WaveSystem turns wave requests into spawn requests. Wave n brings the configured bois and
// calm bois from the spawn ring plus n angry bois at the requesting collector.
type WaveSystem struct {
	Log *zap.Logger

	Input   ecs.Singleton[Input]
	State   ecs.Singleton[State]
	Config  ecs.Singleton[Config]
	Waves   ecs.Singleton[Waves]
	Queue   ecs.Singleton[SpawnQueue]
	Players ecs.Query[struct {
		*Player
		*flock.Transform
		*flock.Velocity
	}]
}

func (s *WaveSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state.Phase == Paused {
		return
	}
	waves := s.Waves.Get()

	if s.Input.Get().NextWave && state.Phase == Playing {
		if p, ok := s.Players.First(); ok {
			waves.Request(p.Transform.Position, p.Velocity.Vec2)
		} else {
			waves.Request(mgl32.Vec2{}, mgl32.Vec2{})
		}
	}

	cfg := s.Config.Get()
	queue := s.Queue.Get()
	for _, req := range waves.pending {
		waves.Count++
		queue.Push(flock.SpawnRequest{Kind: flock.KindBoi, Count: cfg.WaveBoi, Position: req.Position, Velocity: req.Velocity})
		queue.Push(flock.SpawnRequest{Kind: flock.KindCalmBoi, Count: cfg.WaveCalmBoi, Position: req.Position, Velocity: req.Velocity})
		queue.Push(flock.SpawnRequest{Kind: flock.KindAngryBoi, Count: waves.Count, Position: req.Position, Velocity: req.Velocity})

		logger(s.Log).Info("wave started",
			zap.Uint64("tick", frame.Tick),
			zap.Int("wave", waves.Count),
			zap.Float32("x", req.Position[0]),
			zap.Float32("y", req.Position[1]))
	}
	waves.pending = waves.pending[:0]
}

// SpawnSystem drains the SpawnQueue into spawn commands.
type SpawnSystem struct {
	Log *zap.Logger

	State  ecs.Singleton[State]
	Config ecs.Singleton[Config]
	Queue  ecs.Singleton[SpawnQueue]
	Rng    ecs.Singleton[Rng]
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	if s.State.Get().Phase == Paused {
		return
	}
	cfg := s.Config.Get()
	rng := s.Rng.Get()

	for _, req := range s.Queue.Get().drain() {
		if req.Kind == flock.KindPlayer {
			logger(s.Log).Warn("ignoring spawn request for player boids", zap.Int("count", req.Count))
			continue
		}
		for range req.Count {
			frame.Commands.Spawn(SpawnComponents(req, *cfg, rng)...)
		}
	}
}

// SpawnComponents builds one boid for req. Bois and calm bois appear on the spawn ring with
// a random velocity; angry bois appear at the request and home on the player.
func SpawnComponents(req flock.SpawnRequest, cfg Config, rng *Rng) []any {
	switch req.Kind {
	case flock.KindAngryBoi:
		pos := req.Position.Add(mgl32.Vec2{rng.Range(-angryJitter, angryJitter), rng.Range(-angryJitter, angryJitter)})
		return append(flock.NewBoid(req.Kind, pos, req.Velocity),
			flock.Homing{Target: flock.TargetsPlayer, Influence: cfg.AngryInfluence})
	case flock.KindCalmBoi:
		return append(flock.NewBoid(req.Kind, rng.OnRing(cfg.SpawnRing), randomVelocity(rng)),
			flock.Homing{Target: flock.TargetsCollectible, Influence: cfg.CalmInfluence},
			Collector{})
	default:
		return flock.NewBoid(req.Kind, rng.OnRing(cfg.SpawnRing), randomVelocity(rng))
	}
}

func randomVelocity(rng *Rng) mgl32.Vec2 {
	return mgl32.Vec2{rng.Range(-100, 100), rng.Range(-100, 100)}.Mul(20)
}
