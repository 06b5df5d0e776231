package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/flockflow/flock"
	"github.com/plus3/flockflow/game"
)

var (
	backgroundColor = color.RGBA{0x10, 0x12, 0x1c, 0xff}
	arenaColor      = color.RGBA{0x3a, 0x40, 0x5a, 0xff}
	pickupColor     = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	dormantColor    = color.RGBA{0x6b, 0x5a, 0x10, 0xff}
	repelColor      = color.RGBA{0xff, 0x8c, 0x3a, 0xc0}
	attractColor    = color.RGBA{0x3a, 0xd0, 0xff, 0xc0}
	shieldColor     = color.RGBA{0xff, 0xff, 0xff, 0xff}

	kindColors = map[flock.Kind]color.RGBA{
		flock.KindBoi:      {0x8a, 0xb4, 0xf8, 0xff},
		flock.KindCalmBoi:  {0x6d, 0xd4, 0x7e, 0xff},
		flock.KindAngryBoi: {0xf2, 0x4b, 0x4b, 0xff},
		flock.KindPlayer:   {0xff, 0xe0, 0x66, 0xff},
	}
)

const boidLength = 6

func drawScene(screen *ebiten.Image, scene *game.Scene, cam camera) {
	screen.Fill(backgroundColor)

	x0, y0 := cam.toScreen(scene.Bounds.Min)
	x1, y1 := cam.toScreen(scene.Bounds.Max)
	vector.StrokeRect(screen, min(x0, x1), min(y0, y1), abs(x1-x0), abs(y1-y0), 1, arenaColor, false)

	for _, w := range scene.Shockwaves {
		x, y := cam.toScreen(w.Position)
		clr := attractColor
		if w.Repel {
			clr = repelColor
		}
		vector.StrokeCircle(screen, x, y, w.Radius*cam.scale, 1.5, clr, true)
	}

	for _, p := range scene.Pickups {
		x, y := cam.toScreen(p.Position)
		if p.Dormant {
			vector.StrokeCircle(screen, x, y, 5, 1, dormantColor, true)
			continue
		}
		vector.DrawFilledCircle(screen, x, y, 5, pickupColor, true)
	}

	for _, b := range scene.Boids {
		drawBoid(screen, b, cam)
	}
}

func drawBoid(screen *ebiten.Image, b game.Sprite, cam camera) {
	clr := kindColors[b.Kind]
	size := float32(boidLength)
	if b.Kind == flock.KindPlayer {
		size *= 2
	}

	x, y := cam.toScreen(b.Position)
	dir := flock.Direction(b.Heading)
	tx, ty := x+dir[0]*size, y-dir[1]*size

	vector.StrokeLine(screen, x, y, tx, ty, 2, clr, true)
	vector.DrawFilledCircle(screen, x, y, size/3, clr, true)
	if b.Shielded {
		vector.StrokeCircle(screen, x, y, size, 1, shieldColor, true)
	}
}

func drawHUD(screen *ebiten.Image, hud *game.HUD) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"Points %d   Wave %d   Health %d   Boost %3.0f%%   Round %d   %.0f FPS",
		hud.Points, hud.Wave, hud.Health, hud.BoostReady*100, hud.Round, ebiten.ActualFPS()), 8, 8)

	switch hud.Phase {
	case game.Paused:
		ebitenutil.DebugPrintAt(screen, "PAUSED - press P to resume", 8, 24)
	case game.GameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press R to restart", 8, 24)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
