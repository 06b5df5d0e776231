package game

import (
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/flock"
)

// ShockwaveSystem pushes every tracked entity with a velocity inside a shockwave's active
// radius, then grows the radius and removes expired waves. It runs after the flock forces
// are computed and before they are applied.
type ShockwaveSystem struct {
	Input  ecs.Singleton[Input]
	State  ecs.Singleton[State]
	Config ecs.Singleton[Config]
	Index  ecs.Singleton[flock.SpatialIndex]
	Waves  ecs.Query[struct {
		ecs.EntityId
		*flock.Transform
		*Shockwave
	}]
}

func (s *ShockwaveSystem) Execute(frame *ecs.UpdateFrame) {
	if s.State.Get().Phase == Paused {
		return
	}
	cfg := s.Config.Get()

	if in := s.Input.Get(); in.Shockwave {
		frame.Commands.Spawn(NewShockwave(in.ShockwaveAt, cfg.ManualWave, true)...)
	}

	ix := s.Index.Get()
	dt := float32(frame.DeltaTime)

	for w := range s.Waves.Iter() {
		center := w.Transform.Position
		for nb := range ix.Within(center, w.Shockwave.ActiveRadius) {
			v := ecs.ReadComponent[flock.Velocity](frame.Storage, nb.ID)
			if v == nil {
				continue
			}
			push := flock.NormalizeOrZero(center.Sub(nb.Position)).Mul(cfg.ShockwavePush)
			if w.Shockwave.Repel {
				v.Vec2 = v.Vec2.Sub(push)
			} else {
				v.Vec2 = v.Vec2.Add(push)
			}
		}

		if w.Shockwave.Advance(dt) {
			frame.Commands.Delete(w.EntityId)
		}
	}
}

// Advance moves the wave forward by dt and reports whether it has expired.
func (w *Shockwave) Advance(dt float32) bool {
	w.Remaining -= dt
	progress := max(w.Remaining, 0) / w.Duration
	w.ActiveRadius = w.MaxRadius + (shockwaveMinRadius-w.MaxRadius)*progress*progress
	return w.Remaining <= 0
}
