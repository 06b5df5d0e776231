package game

import (
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/flock"
	"go.uber.org/zap"
)

// CollectSystem lets collectors pick up collectibles within the collect radius. A pickup
// scores for scoring collectors, sets off an attracting shockwave, requests the next wave at
// the collector and sends the collectible dormant to a new random spot.
type CollectSystem struct {
	Log *zap.Logger

	State        ecs.Singleton[State]
	Config       ecs.Singleton[Config]
	Tunables     ecs.Singleton[flock.Tunables]
	Index        ecs.Singleton[flock.SpatialIndex]
	Points       ecs.Singleton[Points]
	Waves        ecs.Singleton[Waves]
	Rng          ecs.Singleton[Rng]
	Collectibles ecs.Query[struct {
		ecs.EntityId
		*Collectible
		*flock.Transform
		Dormant *Dormant `ecs:"optional"`
	}]
}

func (s *CollectSystem) Execute(frame *ecs.UpdateFrame) {
	if s.State.Get().Phase == Paused {
		return
	}
	cfg := s.Config.Get()
	ix := s.Index.Get()

	for c := range s.Collectibles.Iter() {
		if c.Dormant != nil {
			continue
		}
		at := c.Transform.Position

		for nb := range ix.Neighbors(c.EntityId, at, cfg.CollectRadius) {
			collector := ecs.ReadComponent[Collector](frame.Storage, nb.ID)
			if collector == nil {
				continue
			}

			var velocity flock.Velocity
			if v := ecs.ReadComponent[flock.Velocity](frame.Storage, nb.ID); v != nil {
				velocity = *v
			}

			points := s.Points.Get()
			if collector.Scores {
				points.Add(c.Collectible.Value)
			}
			frame.Commands.Spawn(NewShockwave(at, cfg.CollectWave, false)...)
			s.Waves.Get().Request(nb.Position, velocity.Vec2)

			c.Transform.Position = s.Rng.Get().InRect(s.Tunables.Get().Settings().Bounds)
			if cfg.CollectibleCooldown > 0 {
				frame.Commands.AddComponent(c.EntityId, Dormant{Remaining: cfg.CollectibleCooldown})
			}

			logger(s.Log).Info("collectible collected",
				zap.Uint64("tick", frame.Tick),
				zap.Stringer("collector", nb.ID),
				zap.Bool("scored", collector.Scores),
				zap.Uint32("points", points.Value))
			break
		}
	}
}
