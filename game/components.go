package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/flock"
)

// Player steers the player boid.
type Player struct {
	TargetSpeed     float32
	AngularVelocity float32
	TurnSpeed       float32
}

// Boost temporarily raises the player's target speed.
type Boost struct {
	Cooldown   float32
	Multiplier float32
}

type Brake struct {
	Power float32
}

type Health struct {
	Points uint32
}

// Invulnerable shields an entity from damage until Remaining runs out.
type Invulnerable struct {
	Remaining float32
}

// Collectible is worth Value points to the player.
type Collectible struct {
	Value uint32
}

// Dormant collectibles cannot be collected or homed on until Remaining runs out.
type Dormant struct {
	Remaining float32
}

// Collector entities pick up collectibles. Only scoring collectors earn points.
type Collector struct {
	Scores bool
}

// Shockwave pushes tracked entities inside ActiveRadius. The radius grows from 32 to
// MaxRadius over Duration.
type Shockwave struct {
	Duration     float32
	Remaining    float32
	MaxRadius    float32
	ActiveRadius float32
	Repel        bool
}

const shockwaveMinRadius = 32

// NewShockwave returns the components of a shockwave centred on position.
func NewShockwave(position mgl32.Vec2, w ShockwaveConfig, repel bool) []any {
	return []any{
		flock.Transform{Position: position},
		Shockwave{
			Duration:     w.Duration,
			Remaining:    w.Duration,
			MaxRadius:    w.Radius,
			ActiveRadius: shockwaveMinRadius,
			Repel:        repel,
		},
	}
}

// RegisterComponents registers the flock components and every game component.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	flock.RegisterComponents(registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Boost](registry)
	ecs.RegisterComponent[Brake](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Invulnerable](registry)
	ecs.RegisterComponent[Collectible](registry)
	ecs.RegisterComponent[Dormant](registry)
	ecs.RegisterComponent[Collector](registry)
	ecs.RegisterComponent[Shockwave](registry)
}
