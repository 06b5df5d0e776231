package flock

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
)

// TargetPredicate reports whether id counts as a homing target.
type TargetPredicate func(storage *ecs.Storage, id ecs.EntityId) bool

// Targets maps each category to the predicate that recognises its members.
type Targets map[TargetCategory]TargetPredicate

// WithComponent matches entities that have a T component.
func WithComponent[T any]() TargetPredicate {
	t := reflect.TypeFor[T]()
	return func(storage *ecs.Storage, id ecs.EntityId) bool {
		return storage.HasComponent(id, t)
	}
}

// WithoutComponent matches entities that lack a T component.
func WithoutComponent[T any]() TargetPredicate {
	t := reflect.TypeFor[T]()
	return func(storage *ecs.Storage, id ecs.EntityId) bool {
		return !storage.HasComponent(id, t)
	}
}

// AllOf matches entities accepted by every predicate.
func AllOf(predicates ...TargetPredicate) TargetPredicate {
	return func(storage *ecs.Storage, id ecs.EntityId) bool {
		for _, p := range predicates {
			if !p(storage, id) {
				return false
			}
		}
		return true
	}
}

// HomingSystem computes the Homing effect for every homing entity. Categories missing from
// Targets have no members.
type HomingSystem struct {
	Targets Targets

	Tunables ecs.Singleton[Tunables]
	Index    ecs.Singleton[SpatialIndex]
	Homers   ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Homing
	}]
}

func (s *HomingSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Tunables.Get().Settings()
	ix := s.Index.Get()

	for h := range s.Homers.Iter() {
		match, ok := s.Targets[h.Homing.Target]
		if !ok {
			h.Homing.Effect = mgl32.Vec2{}
			continue
		}

		p := h.Transform.Position

		targets := func(yield func(mgl32.Vec2) bool) {
			for nb := range ix.Neighbors(h.EntityId, p, settings.HomeRange) {
				if !match(frame.Storage, nb.ID) {
					continue
				}
				if !yield(nb.Position) {
					return
				}
			}
		}
		h.Homing.Effect = HomingForce(p, targets, h.Homing.Influence, settings.HomeEffect)
	}
}
