package game

import (
	"math"
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/flock"
)

// NewPlayer returns the components of a player boid at position, heading for the origin.
// The player aligns with nearby boids but is not pulled by cohesion or pushed by separation.
func NewPlayer(position mgl32.Vec2, cfg Config, settings flock.Settings) []any {
	velocity := flock.NormalizeOrZero(position.Mul(-1))
	return []any{
		flock.Boid{Kind: flock.KindPlayer},
		flock.Tracked{},
		flock.Transform{Position: position, Heading: flock.Heading(velocity)},
		flock.Velocity{Vec2: velocity},
		flock.Alignment{},
		Player{TargetSpeed: settings.MaxSpeed, TurnSpeed: cfg.Player.TurnSpeed},
		Boost{Multiplier: cfg.Player.BoostMultiplier},
		Brake{Power: cfg.Player.BrakePower},
		Health{Points: cfg.Player.Health},
		Collector{Scores: true},
	}
}

// PlayerSystem turns Input into the player's velocity. It runs before the flock forces so
// the rest of the tick sees the steered velocity.
type PlayerSystem struct {
	Input    ecs.Singleton[Input]
	State    ecs.Singleton[State]
	Config   ecs.Singleton[Config]
	Tunables ecs.Singleton[flock.Tunables]
	Players  ecs.Query[struct {
		*Player
		*Boost
		*Brake
		*flock.Transform
		*flock.Velocity
	}]
}

func (s *PlayerSystem) Execute(frame *ecs.UpdateFrame) {
	if s.State.Get().Phase != Playing {
		return
	}
	in := s.Input.Get()
	cfg := s.Config.Get()
	settings := s.Tunables.Get().Settings()
	dt := float32(frame.DeltaTime)

	for p := range s.Players.Iter() {
		pos := p.Transform.Position

		if in.Boost && p.Boost.Cooldown <= 0 {
			p.Boost.Cooldown = cfg.Player.BoostCooldown
			p.Player.TargetSpeed = settings.MaxSpeed * p.Boost.Multiplier
			frame.Commands.Spawn(NewShockwave(pos, cfg.BoostWave, true)...)
		}
		if in.Brake {
			p.Player.TargetSpeed -= dt * p.Brake.Power
		}
		if in.Turn != 0 {
			p.Player.AngularVelocity += in.Turn * p.Player.TurnSpeed * 2
			p.Player.AngularVelocity = mgl32.Clamp(p.Player.AngularVelocity, -p.Player.TurnSpeed, p.Player.TurnSpeed)
		}

		p.Velocity.Vec2 = steer(p.Velocity.Vec2, pos, p.Player, settings, dt)

		p.Player.TargetSpeed += (settings.MaxSpeed - p.Player.TargetSpeed) * min(dt*0.5, 1)
		p.Player.TargetSpeed = mgl32.Clamp(p.Player.TargetSpeed, settings.MaxSpeed*0.5, settings.MaxSpeed*p.Boost.Multiplier)
		p.Player.AngularVelocity = 0
	}
}

// steer rotates v by the player's turn rate, bends it back toward the origin outside the
// arena, and eases its length toward the target speed.
func steer(v, pos mgl32.Vec2, p *Player, settings flock.Settings, dt float32) mgl32.Vec2 {
	speed := v.Len()
	angle := float32(math.Atan2(float64(v[1]), float64(v[0])))
	angle += p.AngularVelocity * dt * 5

	if !settings.Bounds.Contains(pos) {
		dir := mgl32.Vec2{cos32(angle), sin32(angle)}
		angle += signedAngle(dir, pos.Mul(-1)) * dt * 3
	}

	dir := mgl32.Vec2{cos32(angle), sin32(angle)}
	v = dir.Mul(speed)
	target := dir.Mul(p.TargetSpeed)
	return v.Add(target.Sub(v).Mul(min(dt*10, 1)))
}

func signedAngle(from, to mgl32.Vec2) float32 {
	cross := from[0]*to[1] - from[1]*to[0]
	return float32(math.Atan2(float64(cross), float64(from.Dot(to))))
}

func cos32(a float32) float32 { return float32(math.Cos(float64(a))) }
func sin32(a float32) float32 { return float32(math.Sin(float64(a))) }

var alignmentType = reflect.TypeFor[flock.Alignment]()

// AlignmentToggleSystem drops the player's Alignment while it moves faster than twice the max
// speed and restores it once the player slows down.
type AlignmentToggleSystem struct {
	Tunables ecs.Singleton[flock.Tunables]
	Players  ecs.Query[struct {
		ecs.EntityId
		*Player
		*flock.Velocity
		Alignment *flock.Alignment `ecs:"optional"`
	}]
}

func (s *AlignmentToggleSystem) Execute(frame *ecs.UpdateFrame) {
	maxSpeed := s.Tunables.Get().Settings().MaxSpeed
	limit := maxSpeed * maxSpeed * 4

	for p := range s.Players.Iter() {
		lsq := p.Velocity.LenSqr()
		switch {
		case p.Alignment != nil && lsq > limit:
			frame.Commands.RemoveComponent(p.EntityId, alignmentType)
		case p.Alignment == nil && lsq < limit:
			frame.Commands.AddComponent(p.EntityId, flock.Alignment{})
		}
	}
}
