package flock_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type beacon struct{}

type spent struct{}

func homingWorld(t *testing.T) *world {
	settings := quietSettings()
	settings.HomeEffect = 2
	settings.HomeRange = 300

	targets := flock.Targets{
		flock.TargetsCollectible: flock.AllOf(flock.WithComponent[beacon](), flock.WithoutComponent[spent]()),
	}
	w := newWorld(t, settings, targets)
	ecs.RegisterComponent[beacon](w.storage.Registry())
	ecs.RegisterComponent[spent](w.storage.Registry())
	return w
}

func TestHomingConverges(t *testing.T) {
	w := homingWorld(t)

	target := mgl32.Vec2{120, 40}
	w.storage.Spawn(flock.Tracked{}, flock.Transform{Position: target}, beacon{})
	homer := w.spawn(flock.KindCalmBoi, mgl32.Vec2{}, mgl32.Vec2{},
		flock.NewHoming(flock.TargetsCollectible))

	last := target.Len()
	for range 20 {
		w.scheduler.Once(0.05)
		d := target.Sub(w.transform(t, homer).Position).Len()
		assert.Less(t, d, last)
		last = d
	}
}

func TestHomingInfluenceAndPredicates(t *testing.T) {
	w := homingWorld(t)

	w.storage.Spawn(flock.Tracked{}, flock.Transform{Position: mgl32.Vec2{50, 0}}, beacon{})
	w.storage.Spawn(flock.Tracked{}, flock.Transform{Position: mgl32.Vec2{0, 50}}, beacon{}, spent{})
	w.storage.Spawn(flock.Tracked{}, flock.Transform{Position: mgl32.Vec2{0, -50}})

	strong := w.spawn(flock.KindCalmBoi, mgl32.Vec2{}, mgl32.Vec2{},
		flock.Homing{Target: flock.TargetsCollectible, Influence: 3})
	unknown := w.spawn(flock.KindAngryBoi, mgl32.Vec2{}, mgl32.Vec2{},
		flock.NewHoming(flock.TargetsPlayer))
	muted := w.spawn(flock.KindCalmBoi, mgl32.Vec2{}, mgl32.Vec2{},
		flock.Homing{Target: flock.TargetsCollectible, Influence: 0})

	w.storage.AddSingleton(flock.Gate{Paused: true})
	w.scheduler.Once(0.01)

	h := ecs.ReadComponent[flock.Homing](w.storage, strong)
	require.NotNil(t, h)
	assertVec(t, mgl32.Vec2{6, 0}, h.Effect)

	h = ecs.ReadComponent[flock.Homing](w.storage, unknown)
	require.NotNil(t, h)
	assert.Equal(t, mgl32.Vec2{}, h.Effect)

	h = ecs.ReadComponent[flock.Homing](w.storage, muted)
	require.NotNil(t, h)
	assert.Equal(t, mgl32.Vec2{}, h.Effect, "an explicit zero influence disables the pull")
}

func TestHomingOutOfRange(t *testing.T) {
	w := homingWorld(t)

	w.storage.Spawn(flock.Tracked{}, flock.Transform{Position: mgl32.Vec2{301, 0}}, beacon{})
	homer := w.spawn(flock.KindCalmBoi, mgl32.Vec2{}, mgl32.Vec2{},
		flock.NewHoming(flock.TargetsCollectible))

	w.scheduler.Once(0.01)

	assert.Equal(t, mgl32.Vec2{}, ecs.ReadComponent[flock.Homing](w.storage, homer).Effect)
}
