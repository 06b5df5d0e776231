package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/flock"
)

const (
	// hudRows is the number of terminal rows above the arena.
	hudRows = 1
	// cellAspect is how much taller a terminal cell is than it is wide.
	cellAspect = 2
	viewMargin = 1.1
)

// grid maps world coordinates, y up, onto terminal cells below the HUD.
type grid struct {
	width, height int
	scale         float32
	focus         mgl32.Vec2
}

func newGrid(bounds flock.Rect, width, height int) grid {
	g := grid{width: width, height: height, focus: bounds.Min.Add(bounds.Max).Mul(0.5)}
	rows := height - hudRows
	bw, bh := bounds.Width()*viewMargin, bounds.Height()*viewMargin
	if width <= 0 || rows <= 0 || bw <= 0 || bh <= 0 {
		g.scale = 1
		return g
	}
	g.scale = min(float32(width)/bw, float32(rows*cellAspect)/bh)
	return g
}

func (g grid) center() (float32, float32) {
	return float32(g.width) / 2, float32(hudRows) + float32(g.height-hudRows)/2
}

// toCell returns the cell for p and whether it lies inside the arena area of the screen.
func (g grid) toCell(p mgl32.Vec2) (int, int, bool) {
	cx, cy := g.center()
	x := int(math.Floor(float64(cx + (p[0]-g.focus[0])*g.scale)))
	y := int(math.Floor(float64(cy - (p[1]-g.focus[1])*g.scale/cellAspect)))
	return x, y, x >= 0 && x < g.width && y >= hudRows && y < g.height
}

// toWorld returns the world position at the centre of cell (x, y).
func (g grid) toWorld(x, y int) mgl32.Vec2 {
	cx, cy := g.center()
	return mgl32.Vec2{
		(float32(x)+0.5-cx)/g.scale + g.focus[0],
		(cy-float32(y)-0.5)/g.scale*cellAspect + g.focus[1],
	}
}
