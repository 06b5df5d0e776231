package flock

import (
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kamstrup/intmap"
	"github.com/plus3/flockflow/ecs"
)

const (
	// DefaultCellSize is the spatial grid cell edge in world units.
	DefaultCellSize = 32
	// cells that stay empty for this many rebuilds are dropped.
	cellIdleLimit = 120
)

// Neighbor is one entry returned by a range query.
type Neighbor struct {
	ID       ecs.EntityId
	Position mgl32.Vec2
}

type gridCell struct {
	entries []Neighbor
	idle    int
}

// SpatialIndex is a uniform hash grid over tracked entity positions. It is rebuilt once per
// tick by IndexSystem and only read afterwards, so every query in a tick sees the same
// snapshot.
type SpatialIndex struct {
	cellSize float32
	cells    *intmap.Map[int64, *gridCell]
	size     int
}

// NewSpatialIndex creates an empty index. cellSize <= 0 selects DefaultCellSize.
func NewSpatialIndex(cellSize float32) SpatialIndex {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return SpatialIndex{
		cellSize: cellSize,
		cells:    intmap.New[int64, *gridCell](256),
	}
}

func cellKey(cx, cy int32) int64 {
	return int64(cx)<<32 | int64(uint32(cy))
}

func (ix *SpatialIndex) cellCoord(v float32) int32 {
	return int32(math.Floor(float64(v / ix.cellSize)))
}

// Reset empties the index while keeping cell buffers for the next rebuild.
func (ix *SpatialIndex) Reset() {
	if ix.cells == nil {
		*ix = NewSpatialIndex(ix.cellSize)
		return
	}

	var stale []int64
	for key, c := range ix.cells.All() {
		if len(c.entries) == 0 {
			c.idle++
			if c.idle > cellIdleLimit {
				stale = append(stale, key)
			}
			continue
		}
		c.entries = c.entries[:0]
		c.idle = 0
	}
	for _, key := range stale {
		ix.cells.Del(key)
	}
	ix.size = 0
}

// Insert adds an entity at position p.
func (ix *SpatialIndex) Insert(id ecs.EntityId, p mgl32.Vec2) {
	if ix.cells == nil {
		*ix = NewSpatialIndex(ix.cellSize)
	}

	key := cellKey(ix.cellCoord(p[0]), ix.cellCoord(p[1]))
	c, ok := ix.cells.Get(key)
	if !ok {
		c = &gridCell{}
		ix.cells.Put(key, c)
	}
	c.entries = append(c.entries, Neighbor{ID: id, Position: p})
	ix.size++
}

// Len returns the number of indexed entities.
func (ix *SpatialIndex) Len() int {
	return ix.size
}

// Cells returns the number of allocated grid cells, including idle ones.
func (ix *SpatialIndex) Cells() int {
	if ix.cells == nil {
		return 0
	}
	return ix.cells.Len()
}

// CellSize returns the grid cell edge length.
func (ix *SpatialIndex) CellSize() float32 {
	return ix.cellSize
}

// Within yields every indexed entity whose distance to center is at most radius.
// An empty index or a non-positive radius yields nothing.
func (ix *SpatialIndex) Within(center mgl32.Vec2, radius float32) iter.Seq[Neighbor] {
	return ix.query(center, radius, false, 0)
}

// Neighbors is Within with the querying entity self left out.
func (ix *SpatialIndex) Neighbors(self ecs.EntityId, center mgl32.Vec2, radius float32) iter.Seq[Neighbor] {
	return ix.query(center, radius, true, self)
}

func (ix *SpatialIndex) query(center mgl32.Vec2, radius float32, exclude bool, self ecs.EntityId) iter.Seq[Neighbor] {
	return func(yield func(Neighbor) bool) {
		if ix.size == 0 || !(radius > 0) {
			return
		}
		rsq := radius * radius

		visit := func(c *gridCell) bool {
			for _, n := range c.entries {
				if exclude && n.ID == self {
					continue
				}
				if n.Position.Sub(center).LenSqr() > rsq {
					continue
				}
				if !yield(n) {
					return false
				}
			}
			return true
		}

		minX, maxX := ix.cellCoord(center[0]-radius), ix.cellCoord(center[0]+radius)
		minY, maxY := ix.cellCoord(center[1]-radius), ix.cellCoord(center[1]+radius)

		span := (int64(maxX) - int64(minX) + 1) * (int64(maxY) - int64(minY) + 1)
		if span > int64(ix.cells.Len()) {
			for _, c := range ix.cells.All() {
				if !visit(c) {
					return
				}
			}
			return
		}

		for cx := minX; cx <= maxX; cx++ {
			for cy := minY; cy <= maxY; cy++ {
				c, ok := ix.cells.Get(cellKey(cx, cy))
				if !ok {
					continue
				}
				if !visit(c) {
					return
				}
			}
		}
	}
}

// IndexSystem rebuilds the SpatialIndex singleton from every Tracked entity.
type IndexSystem struct {
	Index   ecs.Singleton[SpatialIndex]
	Tracked ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Tracked
	}]
}

func (s *IndexSystem) Execute(frame *ecs.UpdateFrame) {
	ix := s.Index.Get()
	ix.Reset()
	for item := range s.Tracked.Iter() {
		ix.Insert(item.EntityId, item.Transform.Position)
	}
}
