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

func TestForcesWithoutNeighborsAreZero(t *testing.T) {
	p := mgl32.Vec2{3, 4}
	none := seqOf[flock.Neighbor]()

	assert.Equal(t, mgl32.Vec2{}, flock.CohesionForce(p, none, 1))
	assert.Equal(t, mgl32.Vec2{}, flock.SeparationForce(p, none, 1))
	assert.Equal(t, mgl32.Vec2{}, flock.AlignmentForce(mgl32.Vec2{9, 9}, seqOf[mgl32.Vec2](), 1))
	assert.Equal(t, mgl32.Vec2{}, flock.HomingForce(p, seqOf[mgl32.Vec2](), 1, 2))
}

func TestForceLaws(t *testing.T) {
	nbs := seqOf(
		flock.Neighbor{Position: mgl32.Vec2{10, 0}},
		flock.Neighbor{Position: mgl32.Vec2{0, 10}},
	)

	t.Run("cohesion pulls toward the local center", func(t *testing.T) {
		assertVec(t, mgl32.Vec2{2.5, 2.5}, flock.CohesionForce(mgl32.Vec2{}, nbs, 0.5))
	})

	t.Run("separation is linear in offset", func(t *testing.T) {
		assertVec(t, mgl32.Vec2{-10, -10}, flock.SeparationForce(mgl32.Vec2{}, nbs, 1))
		assertVec(t, mgl32.Vec2{-20, -20}, flock.SeparationForce(mgl32.Vec2{}, nbs, 2))
	})

	t.Run("alignment nudges toward the mean velocity", func(t *testing.T) {
		vs := seqOf(mgl32.Vec2{4, 0}, mgl32.Vec2{0, 4})
		assertVec(t, mgl32.Vec2{1, 1}, flock.AlignmentForce(mgl32.Vec2{}, vs, 0.5))
		assertVec(t, mgl32.Vec2{}, flock.AlignmentForce(mgl32.Vec2{2, 2}, vs, 1))
	})

	t.Run("homing sums unit directions", func(t *testing.T) {
		targets := seqOf(mgl32.Vec2{100, 0}, mgl32.Vec2{0, 3}, mgl32.Vec2{})
		assertVec(t, mgl32.Vec2{3, 3}, flock.HomingForce(mgl32.Vec2{}, targets, 1.5, 2))
	})
}

func TestForceOrderIndependence(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	var nbs []flock.Neighbor
	var vs []mgl32.Vec2
	for range 25 {
		p := mgl32.Vec2{rng.Float32()*100 - 50, rng.Float32()*100 - 50}
		nbs = append(nbs, flock.Neighbor{Position: p})
		vs = append(vs, p.Mul(0.5))
	}
	reversedNbs := append([]flock.Neighbor(nil), nbs...)
	reversedVs := append([]mgl32.Vec2(nil), vs...)
	for i, j := 0, len(nbs)-1; i < j; i, j = i+1, j-1 {
		reversedNbs[i], reversedNbs[j] = reversedNbs[j], reversedNbs[i]
		reversedVs[i], reversedVs[j] = reversedVs[j], reversedVs[i]
	}

	p := mgl32.Vec2{1, 2}
	assertVec(t, flock.CohesionForce(p, seqOf(nbs...), 0.2), flock.CohesionForce(p, seqOf(reversedNbs...), 0.2))
	assertVec(t, flock.SeparationForce(p, seqOf(nbs...), 0.4), flock.SeparationForce(p, seqOf(reversedNbs...), 0.4))
	assertVec(t, flock.AlignmentForce(p, seqOf(vs...), 0.3), flock.AlignmentForce(p, seqOf(reversedVs...), 0.3))
}

func TestCohesionConcreteScenario(t *testing.T) {
	settings := quietSettings()
	settings.Cohesion = 1
	settings.VisualRange = 50
	w := newWorld(t, settings, nil)

	origin := w.spawn(flock.KindBoi, mgl32.Vec2{0, 0}, mgl32.Vec2{})
	w.spawn(flock.KindBoi, mgl32.Vec2{10, 0}, mgl32.Vec2{})
	w.spawn(flock.KindBoi, mgl32.Vec2{0, 10}, mgl32.Vec2{})

	w.scheduler.Once(1)

	coh := ecs.ReadComponent[flock.Coherence](w.storage, origin)
	require.NotNil(t, coh)
	assertVec(t, mgl32.Vec2{5, 5}, coh.Effect)
	assertVec(t, mgl32.Vec2{5, 5}, w.velocity(t, origin))
	assertVec(t, mgl32.Vec2{5, 5}, w.transform(t, origin).Position)
}

func TestCohesionSymmetry(t *testing.T) {
	settings := quietSettings()
	settings.Cohesion = 0.3
	settings.VisualRange = 50
	w := newWorld(t, settings, nil)

	left := w.spawn(flock.KindBoi, mgl32.Vec2{-7, 3}, mgl32.Vec2{})
	right := w.spawn(flock.KindBoi, mgl32.Vec2{7, -3}, mgl32.Vec2{})

	w.scheduler.Once(0.1)

	l := ecs.ReadComponent[flock.Coherence](w.storage, left).Effect
	r := ecs.ReadComponent[flock.Coherence](w.storage, right).Effect
	assertVec(t, l, r.Mul(-1))
	assertVec(t, mgl32.Vec2{14, -6}.Mul(0.3), l)
}

func TestSystemsReadStartOfTickState(t *testing.T) {
	settings := quietSettings()
	settings.Cohesion = 0.2
	settings.Separation = 0.5
	settings.Alignment = 0.4
	settings.VisualRange = 40
	settings.AvoidRange = 20

	run := func(reverse bool) map[mgl32.Vec2]mgl32.Vec2 {
		w := newWorld(t, settings, nil)
		rng := rand.New(rand.NewPCG(42, 7))

		type seed struct{ p, v mgl32.Vec2 }
		seeds := make([]seed, 30)
		for i := range seeds {
			seeds[i] = seed{
				p: mgl32.Vec2{rng.Float32()*60 - 30, rng.Float32()*60 - 30},
				v: mgl32.Vec2{rng.Float32()*20 - 10, rng.Float32()*20 - 10},
			}
		}
		if reverse {
			for i, j := 0, len(seeds)-1; i < j; i, j = i+1, j-1 {
				seeds[i], seeds[j] = seeds[j], seeds[i]
			}
		}

		ids := make(map[mgl32.Vec2]ecs.EntityId, len(seeds))
		for _, s := range seeds {
			ids[s.p] = w.spawn(flock.KindBoi, s.p, s.v)
		}

		w.scheduler.Once(0.01)

		out := make(map[mgl32.Vec2]mgl32.Vec2, len(ids))
		for start, id := range ids {
			out[start] = w.velocity(t, id)
		}
		return out
	}

	forward, backward := run(false), run(true)
	require.Len(t, backward, len(forward))
	for start, v := range forward {
		assertVec(t, v, backward[start])
	}
}

func TestAlignmentSkipsNonAligningNeighbors(t *testing.T) {
	settings := quietSettings()
	settings.Alignment = 1
	settings.VisualRange = 50
	w := newWorld(t, settings, nil)

	self := w.spawn(flock.KindBoi, mgl32.Vec2{}, mgl32.Vec2{})
	w.storage.Spawn(
		flock.Tracked{},
		flock.Transform{Position: mgl32.Vec2{5, 0}},
		flock.Velocity{Vec2: mgl32.Vec2{50, 0}},
	)

	w.scheduler.Once(0.01)

	align := ecs.ReadComponent[flock.Alignment](w.storage, self)
	require.NotNil(t, align)
	assert.Equal(t, mgl32.Vec2{}, align.Effect)
}
