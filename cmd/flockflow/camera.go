package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/flock"
)

// viewMargin leaves room around the arena for boids that stray outside it.
const viewMargin = 1.25

// camera maps world coordinates, y up, to screen pixels, y down.
type camera struct {
	scale   float32
	centerX float32
	centerY float32
	focus   mgl32.Vec2
}

// fit scales the arena, plus margin, to fill a w by h screen.
func (c *camera) fit(bounds flock.Rect, w, h int) {
	bw, bh := bounds.Width()*viewMargin, bounds.Height()*viewMargin
	if bw <= 0 || bh <= 0 || w <= 0 || h <= 0 {
		c.scale = 1
	} else {
		c.scale = min(float32(w)/bw, float32(h)/bh)
	}
	c.centerX, c.centerY = float32(w)/2, float32(h)/2
	c.focus = bounds.Min.Add(bounds.Max).Mul(0.5)
}

func (c camera) toScreen(p mgl32.Vec2) (float32, float32) {
	return c.centerX + (p[0]-c.focus[0])*c.scale, c.centerY - (p[1]-c.focus[1])*c.scale
}

func (c camera) toWorld(x, y float32) mgl32.Vec2 {
	if c.scale == 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{(x-c.centerX)/c.scale + c.focus[0], (c.centerY-y)/c.scale + c.focus[1]}
}
