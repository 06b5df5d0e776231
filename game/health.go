package game

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/flock"
	"go.uber.org/zap"
)

// DamageSystem hurts the player when an angry boi comes within the damage radius. The player
// takes at most one hit per tick; a hit leaves it briefly invulnerable, and the last hit
// ends the round.
type DamageSystem struct {
	Log *zap.Logger

	State   ecs.Singleton[State]
	Config  ecs.Singleton[Config]
	Index   ecs.Singleton[flock.SpatialIndex]
	Players ecs.Query[struct {
		ecs.EntityId
		*Player
		*Health
		*flock.Transform
		Shield *Invulnerable `ecs:"optional"`
	}]
}

func (s *DamageSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state.Phase != Playing {
		return
	}
	cfg := s.Config.Get()
	ix := s.Index.Get()

	for p := range s.Players.Iter() {
		if p.Shield != nil {
			continue
		}
		pos := p.Transform.Position
		if !angryWithin(frame.Storage, ix, p.EntityId, pos, cfg.DamageRadius) {
			continue
		}

		if p.Health.Points > 1 {
			p.Health.Points--
			frame.Commands.AddComponent(p.EntityId, Invulnerable{Remaining: cfg.InvulnerableFor})
			logger(s.Log).Info("player hit", zap.Uint64("tick", frame.Tick), zap.Uint32("health", p.Health.Points))
			continue
		}

		p.Health.Points = 0
		state.Phase = GameOver
		frame.Commands.Spawn(NewShockwave(pos, cfg.DeathWave, true)...)
		frame.Commands.Delete(p.EntityId)
		logger(s.Log).Info("player died", zap.Uint64("tick", frame.Tick), zap.Int("round", state.Round))
	}
}

func angryWithin(storage *ecs.Storage, ix *flock.SpatialIndex, self ecs.EntityId, pos mgl32.Vec2, radius float32) bool {
	for nb := range ix.Neighbors(self, pos, radius) {
		if b := ecs.ReadComponent[flock.Boid](storage, nb.ID); b != nil && b.Kind == flock.KindAngryBoi {
			return true
		}
	}
	return false
}

var (
	invulnerableType = reflect.TypeFor[Invulnerable]()
	dormantType      = reflect.TypeFor[Dormant]()
)

// CooldownSystem counts down boost cooldowns, invulnerability and dormant collectibles.
type CooldownSystem struct {
	State  ecs.Singleton[State]
	Boosts ecs.Query[struct{ *Boost }]
	Shield ecs.Query[struct {
		ecs.EntityId
		*Invulnerable
	}]
	Dormant ecs.Query[struct {
		ecs.EntityId
		*Dormant
	}]
}

func (s *CooldownSystem) Execute(frame *ecs.UpdateFrame) {
	if s.State.Get().Phase == Paused {
		return
	}
	dt := float32(frame.DeltaTime)

	for b := range s.Boosts.Iter() {
		if b.Boost.Cooldown > 0 {
			b.Boost.Cooldown -= dt
		}
	}
	for i := range s.Shield.Iter() {
		i.Invulnerable.Remaining -= dt
		if i.Invulnerable.Remaining <= 0 {
			frame.Commands.RemoveComponent(i.EntityId, invulnerableType)
		}
	}
	for d := range s.Dormant.Iter() {
		d.Dormant.Remaining -= dt
		if d.Dormant.Remaining <= 0 {
			frame.Commands.RemoveComponent(d.EntityId, dormantType)
		}
	}
}
