package flock

import (
	"iter"
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
)

// CohesionForce steers p toward the mean position of neighbors.
func CohesionForce(p mgl32.Vec2, neighbors iter.Seq[Neighbor], weight float32) mgl32.Vec2 {
	var sum mgl32.Vec2
	n := 0
	for nb := range neighbors {
		sum = sum.Add(nb.Position)
		n++
	}
	if n == 0 {
		return mgl32.Vec2{}
	}
	center := sum.Mul(1 / float32(n))
	return center.Sub(p).Mul(weight)
}

// SeparationForce pushes p away from each neighbor in proportion to how far apart they are.
func SeparationForce(p mgl32.Vec2, neighbors iter.Seq[Neighbor], weight float32) mgl32.Vec2 {
	var sum mgl32.Vec2
	for nb := range neighbors {
		sum = sum.Add(p.Sub(nb.Position))
	}
	return sum.Mul(weight)
}

// AlignmentForce nudges own toward the mean of velocities.
func AlignmentForce(own mgl32.Vec2, velocities iter.Seq[mgl32.Vec2], weight float32) mgl32.Vec2 {
	var sum mgl32.Vec2
	n := 0
	for v := range velocities {
		sum = sum.Add(v)
		n++
	}
	if n == 0 {
		return mgl32.Vec2{}
	}
	return sum.Mul(1 / float32(n)).Sub(own).Mul(weight)
}

// HomingForce sums unit directions from p to every target, scaled by influence and effect.
func HomingForce(p mgl32.Vec2, targets iter.Seq[mgl32.Vec2], influence, effect float32) mgl32.Vec2 {
	var sum mgl32.Vec2
	for t := range targets {
		sum = sum.Add(NormalizeOrZero(t.Sub(p)))
	}
	return sum.Mul(influence * effect)
}

// CohesionSystem computes Coherence for every boid from neighbors within the visual range.
type CohesionSystem struct {
	Tunables ecs.Singleton[Tunables]
	Index    ecs.Singleton[SpatialIndex]
	Boids    ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Coherence
	}]
}

func (s *CohesionSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Tunables.Get().Settings()
	ix := s.Index.Get()

	for b := range s.Boids.Iter() {
		p := b.Transform.Position
		b.Coherence.Effect = CohesionForce(p, ix.Neighbors(b.EntityId, p, settings.VisualRange), settings.Cohesion)
	}
}

// SeparationSystem computes Separation from neighbors within the avoid range.
type SeparationSystem struct {
	Tunables ecs.Singleton[Tunables]
	Index    ecs.Singleton[SpatialIndex]
	Boids    ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Separation
	}]
}

func (s *SeparationSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Tunables.Get().Settings()
	ix := s.Index.Get()

	for b := range s.Boids.Iter() {
		p := b.Transform.Position
		b.Separation.Effect = SeparationForce(p, ix.Neighbors(b.EntityId, p, settings.AvoidRange), settings.Separation)
	}
}

var alignmentType = reflect.TypeFor[Alignment]()

// AlignmentSystem computes Alignment from the velocities of neighbors that also align.
// Neighbors that vanished or stopped aligning since the index was built are skipped.
type AlignmentSystem struct {
	Tunables ecs.Singleton[Tunables]
	Index    ecs.Singleton[SpatialIndex]
	Boids    ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Velocity
		*Alignment
	}]
}

func (s *AlignmentSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Tunables.Get().Settings()
	ix := s.Index.Get()

	for b := range s.Boids.Iter() {
		p := b.Transform.Position
		velocities := func(yield func(mgl32.Vec2) bool) {
			for nb := range ix.Neighbors(b.EntityId, p, settings.VisualRange) {
				if !frame.Storage.HasComponent(nb.ID, alignmentType) {
					continue
				}
				v := ecs.ReadComponent[Velocity](frame.Storage, nb.ID)
				if v == nil {
					continue
				}
				if !yield(v.Vec2) {
					return
				}
			}
		}
		b.Alignment.Effect = AlignmentForce(b.Velocity.Vec2, velocities, settings.Alignment)
	}
}
