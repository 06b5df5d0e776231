package flock_test

import (
	"iter"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/flock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// quietSettings disables every force so tests can switch on only what they exercise.
func quietSettings() flock.Settings {
	s := flock.DefaultSettings()
	s.Cohesion = 0
	s.Separation = 0
	s.Alignment = 0
	s.HomeEffect = 0
	s.MaxSpeed = 100
	return s
}

type world struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
}

func newWorld(t *testing.T, settings flock.Settings, targets flock.Targets) *world {
	t.Helper()

	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	require.NoError(t, flock.Setup(storage, settings))

	scheduler := ecs.NewScheduler(storage, ecs.WithLogger(zaptest.NewLogger(t)))
	flock.Register(scheduler, targets, zaptest.NewLogger(t))

	return &world{storage: storage, scheduler: scheduler}
}

func (w *world) spawn(kind flock.Kind, pos, vel mgl32.Vec2, extra ...any) ecs.EntityId {
	return w.storage.Spawn(append(flock.NewBoid(kind, pos, vel), extra...)...)
}

func (w *world) transform(t *testing.T, id ecs.EntityId) *flock.Transform {
	t.Helper()
	tr := ecs.ReadComponent[flock.Transform](w.storage, id)
	require.NotNil(t, tr)
	return tr
}

func (w *world) velocity(t *testing.T, id ecs.EntityId) mgl32.Vec2 {
	t.Helper()
	v := ecs.ReadComponent[flock.Velocity](w.storage, id)
	require.NotNil(t, v)
	return v.Vec2
}

func (w *world) tunables(t *testing.T) *flock.Tunables {
	t.Helper()
	var tun *flock.Tunables
	require.True(t, w.storage.ReadSingleton(&tun))
	return tun
}

func seqOf[T any](items ...T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, it := range items {
			if !yield(it) {
				return
			}
		}
	}
}

func assertVec(t *testing.T, want, got mgl32.Vec2) {
	t.Helper()
	require.InDeltaf(t, want[0], got[0], 1e-4, "x: want %v, got %v", want, got)
	require.InDeltaf(t, want[1], got[1], 1e-4, "y: want %v, got %v", want, got)
}
