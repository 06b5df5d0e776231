package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/flock"
)

// Sprite is one boid as a front-end draws it.
type Sprite struct {
	Kind     flock.Kind
	Position mgl32.Vec2
	Heading  float32
	Shielded bool
}

type Pickup struct {
	Position mgl32.Vec2
	Dormant  bool
}

type Ring struct {
	Position mgl32.Vec2
	Radius   float32
	Repel    bool
}

// HUD carries the numbers shown on screen.
type HUD struct {
	Phase  Phase
	Round  int
	Points uint32
	Wave   int
	Health uint32
	// BoostReady is 1 when boost is available and falls to 0 right after use.
	BoostReady float32
}

// Scene is a render snapshot of the world. Front-ends rebuild it once per frame.
type Scene struct {
	Bounds     flock.Rect
	Boids      []Sprite
	Pickups    []Pickup
	Shockwaves []Ring
	HUD        HUD
}

// SceneBuilder fills a Scene from storage, reusing its slices between frames.
type SceneBuilder struct {
	storage *ecs.Storage
	boids   *ecs.View[struct {
		*flock.Boid
		*flock.Transform
		Shield *Invulnerable `ecs:"optional"`
	}]
	pickups *ecs.View[struct {
		*flock.Transform
		*Collectible
		Dormant *Dormant `ecs:"optional"`
	}]
	waves *ecs.View[struct {
		*flock.Transform
		*Shockwave
	}]
	players *ecs.View[struct {
		*Player
		*Health
		Boost *Boost `ecs:"optional"`
	}]
}

func NewSceneBuilder(storage *ecs.Storage) *SceneBuilder {
	return &SceneBuilder{
		storage: storage,
		boids: ecs.NewView[struct {
			*flock.Boid
			*flock.Transform
			Shield *Invulnerable `ecs:"optional"`
		}](storage),
		pickups: ecs.NewView[struct {
			*flock.Transform
			*Collectible
			Dormant *Dormant `ecs:"optional"`
		}](storage),
		waves: ecs.NewView[struct {
			*flock.Transform
			*Shockwave
		}](storage),
		players: ecs.NewView[struct {
			*Player
			*Health
			Boost *Boost `ecs:"optional"`
		}](storage),
	}
}

func (b *SceneBuilder) Build(scene *Scene) {
	scene.Boids = scene.Boids[:0]
	scene.Pickups = scene.Pickups[:0]
	scene.Shockwaves = scene.Shockwaves[:0]
	scene.HUD = HUD{}

	var tunables *flock.Tunables
	if b.storage.ReadSingleton(&tunables) {
		scene.Bounds = tunables.Settings().Bounds
	}

	for e := range b.boids.Values() {
		scene.Boids = append(scene.Boids, Sprite{
			Kind:     e.Boid.Kind,
			Position: e.Transform.Position,
			Heading:  e.Transform.Heading,
			Shielded: e.Shield != nil,
		})
	}
	for e := range b.pickups.Values() {
		scene.Pickups = append(scene.Pickups, Pickup{Position: e.Transform.Position, Dormant: e.Dormant != nil})
	}
	for e := range b.waves.Values() {
		scene.Shockwaves = append(scene.Shockwaves, Ring{
			Position: e.Transform.Position,
			Radius:   e.Shockwave.ActiveRadius,
			Repel:    e.Shockwave.Repel,
		})
	}

	var (
		state  *State
		points *Points
		waves  *Waves
		cfg    *Config
	)
	if b.storage.ReadSingleton(&state) {
		scene.HUD.Phase = state.Phase
		scene.HUD.Round = state.Round
	}
	if b.storage.ReadSingleton(&points) {
		scene.HUD.Points = points.Value
	}
	if b.storage.ReadSingleton(&waves) {
		scene.HUD.Wave = waves.Count
	}
	b.storage.ReadSingleton(&cfg)

	for p := range b.players.Values() {
		scene.HUD.Health = p.Health.Points
		scene.HUD.BoostReady = 1
		if p.Boost != nil && p.Boost.Cooldown > 0 && cfg != nil && cfg.Player.BoostCooldown > 0 {
			scene.HUD.BoostReady = 1 - mgl32.Clamp(p.Boost.Cooldown/cfg.Player.BoostCooldown, 0, 1)
		}
		break
	}
}
