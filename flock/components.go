// Package flock implements the boids steering core: a per-tick spatial index, cohesion,
// separation, alignment and homing forces, force application with arena bounds, and
// integration. Everything runs as ecs systems over the components declared here.
package flock

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
)

// Transform is the world-space placement of an entity.
type Transform struct {
	Position mgl32.Vec2
	// Heading is the sprite rotation in radians, derived from velocity during integration.
	Heading float32
}

// Velocity in world units per second.
type Velocity struct {
	mgl32.Vec2
}

// Kind tags what sort of flocker an entity is. The force rules are the same for every kind;
// kinds only change spawning, homing and rendering.
type Kind uint8

const (
	KindBoi Kind = iota
	KindCalmBoi
	KindAngryBoi
	KindPlayer
)

func (k Kind) String() string {
	switch k {
	case KindBoi:
		return "boi"
	case KindCalmBoi:
		return "calmboi"
	case KindAngryBoi:
		return "angryboi"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Boid marks an entity that takes part in the flocking pipeline.
type Boid struct {
	Kind Kind
}

// Tracked entities are inserted into the spatial index every tick.
type Tracked struct{}

// Coherence, Separation and Alignment hold the force computed for the current tick.
// They are overwritten every tick before being read.
type Coherence struct {
	Effect mgl32.Vec2
}

type Separation struct {
	Effect mgl32.Vec2
}

type Alignment struct {
	Effect mgl32.Vec2
}

// TargetCategory selects which entities a homing entity is drawn to.
type TargetCategory uint8

const (
	TargetsNone TargetCategory = iota
	TargetsPlayer
	TargetsCollectible
)

func (c TargetCategory) String() string {
	switch c {
	case TargetsPlayer:
		return "player"
	case TargetsCollectible:
		return "collectible"
	default:
		return "none"
	}
}

// Homing pulls an entity toward targets of one category within the home range.
type Homing struct {
	Target TargetCategory
	// Influence scales the pull for this entity only.
	Influence float32
	Effect    mgl32.Vec2
}

// NewHoming returns a Homing toward target with the default influence of 1.
func NewHoming(target TargetCategory) Homing {
	return Homing{Target: target, Influence: 1}
}

// Gate tells force application and integration whether the simulation is paused.
type Gate struct {
	Paused bool
}

// SpawnRequest asks the game layer to create Count boids of Kind.
type SpawnRequest struct {
	Kind     Kind
	Count    int
	Position mgl32.Vec2
	Velocity mgl32.Vec2
}

// NewBoid returns the components every flocking entity needs.
func NewBoid(kind Kind, position, velocity mgl32.Vec2) []any {
	return []any{
		Boid{Kind: kind},
		Tracked{},
		Transform{Position: position, Heading: Heading(velocity)},
		Velocity{Vec2: velocity},
		Coherence{},
		Separation{},
		Alignment{},
	}
}

// RegisterComponents registers every flock component type.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Boid](registry)
	ecs.RegisterComponent[Tracked](registry)
	ecs.RegisterComponent[Coherence](registry)
	ecs.RegisterComponent[Separation](registry)
	ecs.RegisterComponent[Alignment](registry)
	ecs.RegisterComponent[Homing](registry)
}
