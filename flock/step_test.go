package flock_test

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstrain(t *testing.T) {
	s := flock.DefaultSettings()

	t.Run("in bounds caps at max speed", func(t *testing.T) {
		v := flock.Constrain(mgl32.Vec2{10, 10}, mgl32.Vec2{1000, 0}, s)
		assertVec(t, mgl32.Vec2{s.MaxSpeed, 0}, v)
	})

	t.Run("bounds edge counts as inside", func(t *testing.T) {
		v := flock.Constrain(s.Bounds.Max, mgl32.Vec2{0, 1000}, s)
		assertVec(t, mgl32.Vec2{0, s.MaxSpeed}, v)
	})

	t.Run("out of bounds steers home with a relaxed cap", func(t *testing.T) {
		v := flock.Constrain(mgl32.Vec2{600, 0}, mgl32.Vec2{0, 0}, s)
		assertVec(t, mgl32.Vec2{-s.CenteringForce, 0}, v)

		fast := flock.Constrain(mgl32.Vec2{600, 0}, mgl32.Vec2{0, 5000}, s)
		assert.InDelta(t, s.MaxSpeed*s.OutOfBoundsSpeed, fast.Len(), 1e-2)
	})
}

func TestApplyClampsSpeed(t *testing.T) {
	settings := flock.DefaultSettings()
	settings.Cohesion = 3
	settings.Separation = 3
	settings.VisualRange = 200
	settings.AvoidRange = 100
	w := newWorld(t, settings, nil)

	rng := rand.New(rand.NewPCG(3, 9))
	for range 60 {
		p := mgl32.Vec2{rng.Float32()*1400 - 700, rng.Float32()*800 - 400}
		v := mgl32.Vec2{rng.Float32()*4000 - 2000, rng.Float32()*4000 - 2000}
		w.spawn(flock.KindBoi, p, v)
	}

	const eps = 1e-3
	for range 5 {
		// Capture positions before the tick; the clamp is decided from them.
		before := map[ecs.EntityId]mgl32.Vec2{}
		view := ecs.NewView[struct {
			ecs.EntityId
			*flock.Transform
		}](w.storage)
		for id, item := range view.Iter() {
			before[id] = item.Transform.Position
		}

		w.scheduler.Once(1.0 / 60)

		for id, p := range before {
			speed := w.velocity(t, id).Len()
			if settings.Bounds.Contains(p) {
				assert.LessOrEqual(t, speed, settings.MaxSpeed+eps)
			} else {
				assert.LessOrEqual(t, speed, settings.MaxSpeed*settings.OutOfBoundsSpeed+eps)
			}
		}
	}
}

func TestPlayerIsNotClamped(t *testing.T) {
	w := newWorld(t, quietSettings(), nil)
	player := w.spawn(flock.KindPlayer, mgl32.Vec2{}, mgl32.Vec2{1000, 0})

	w.scheduler.Once(0.01)

	assertVec(t, mgl32.Vec2{1000, 0}, w.velocity(t, player))
}

func TestIntegrationIsExact(t *testing.T) {
	w := newWorld(t, quietSettings(), nil)
	start := mgl32.Vec2{12.5, -3}
	v := mgl32.Vec2{8, 6}
	id := w.spawn(flock.KindBoi, start, v)

	const dt = 0.25
	w.scheduler.Once(dt)

	tr := w.transform(t, id)
	assert.Equal(t, start.Add(v.Mul(dt)), tr.Position)
	assert.Equal(t, flock.Heading(v), tr.Heading)
	assert.Equal(t, v, w.velocity(t, id))
}

func TestGatePausesMotion(t *testing.T) {
	settings := quietSettings()
	settings.Cohesion = 1
	settings.VisualRange = 50
	w := newWorld(t, settings, nil)

	a := w.spawn(flock.KindBoi, mgl32.Vec2{}, mgl32.Vec2{1, 0})
	w.spawn(flock.KindBoi, mgl32.Vec2{10, 0}, mgl32.Vec2{})

	gate := ecs.NewSingleton[flock.Gate](w.storage)
	gate.Get().Paused = true

	w.scheduler.Once(1)

	assert.Equal(t, mgl32.Vec2{}, w.transform(t, a).Position)
	assert.Equal(t, mgl32.Vec2{1, 0}, w.velocity(t, a))

	coh := ecs.ReadComponent[flock.Coherence](w.storage, a)
	require.NotNil(t, coh)
	assert.NotEqual(t, mgl32.Vec2{}, coh.Effect, "forces are still computed while paused")

	gate.Get().Paused = false
	w.scheduler.Once(1)
	assert.NotEqual(t, mgl32.Vec2{}, w.transform(t, a).Position)
}
