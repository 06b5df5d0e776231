package flock

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
)

// Constrain applies the arena rule to a boid at p with velocity v: inside the bounds the speed
// is capped at MaxSpeed; outside, a centering push toward the origin is added and the cap is
// relaxed to MaxSpeed*OutOfBoundsSpeed.
func Constrain(p, v mgl32.Vec2, s Settings) mgl32.Vec2 {
	if s.Bounds.Contains(p) {
		return ClampLength(v, s.MaxSpeed)
	}
	v = v.Add(NormalizeOrZero(p.Mul(-1)).Mul(s.CenteringForce))
	return ClampLength(v, s.MaxSpeed*s.OutOfBoundsSpeed)
}

// ApplySystem adds this tick's accumulated forces to velocity and enforces the arena rule
// for boids. Player-controlled boids steer themselves and are not clamped here.
type ApplySystem struct {
	Tunables ecs.Singleton[Tunables]
	Gate     ecs.Singleton[Gate]
	Bodies   ecs.Query[struct {
		*Transform
		*Velocity
		Boid       *Boid       `ecs:"optional"`
		Coherence  *Coherence  `ecs:"optional"`
		Separation *Separation `ecs:"optional"`
		Alignment  *Alignment  `ecs:"optional"`
		Homing     *Homing     `ecs:"optional"`
	}]
}

func (s *ApplySystem) Execute(frame *ecs.UpdateFrame) {
	if g := s.Gate.Get(); g != nil && g.Paused {
		return
	}
	settings := s.Tunables.Get().Settings()

	for b := range s.Bodies.Iter() {
		v := b.Velocity.Vec2
		if b.Coherence != nil {
			v = v.Add(b.Coherence.Effect)
		}
		if b.Separation != nil {
			v = v.Add(b.Separation.Effect)
		}
		if b.Alignment != nil {
			v = v.Add(b.Alignment.Effect)
		}
		if b.Homing != nil {
			v = v.Add(b.Homing.Effect)
		}

		if b.Boid != nil && b.Boid.Kind != KindPlayer {
			v = Constrain(b.Transform.Position, v, settings)
		}
		b.Velocity.Vec2 = v
	}
}

// IntegrateSystem advances positions by velocity and points headings along velocity. It is
// the only system that writes positions.
type IntegrateSystem struct {
	Gate   ecs.Singleton[Gate]
	Bodies ecs.Query[struct {
		*Transform
		*Velocity
	}]
}

func (s *IntegrateSystem) Execute(frame *ecs.UpdateFrame) {
	if g := s.Gate.Get(); g != nil && g.Paused {
		return
	}
	dt := float32(frame.DeltaTime)

	for b := range s.Bodies.Iter() {
		b.Transform.Position = b.Transform.Position.Add(b.Velocity.Mul(dt))
		b.Transform.Heading = Heading(b.Velocity.Vec2)
	}
}
