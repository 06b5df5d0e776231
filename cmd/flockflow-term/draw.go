package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/flock"
	"github.com/plus3/flockflow/game"
)

const playerKind = flock.KindPlayer

// arrows are indexed by heading octant, counter-clockwise from east.
var arrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

var (
	hudStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	arenaStyle   = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	pickupStyle  = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	dormantStyle = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	repelStyle   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	attractStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua)

	kindStyles = map[flock.Kind]tcell.Style{
		flock.KindBoi:      tcell.StyleDefault.Foreground(tcell.ColorLightSkyBlue),
		flock.KindCalmBoi:  tcell.StyleDefault.Foreground(tcell.ColorLightGreen),
		flock.KindAngryBoi: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		flock.KindPlayer:   tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	}
)

// arrow picks the glyph closest to direction.
func arrow(direction mgl32.Vec2) rune {
	a := math.Atan2(float64(direction[1]), float64(direction[0]))
	octant := int(math.Round(a/(math.Pi/4))) & 7
	return arrows[octant]
}

func glyph(b game.Sprite) rune {
	switch b.Kind {
	case flock.KindPlayer:
		return '@'
	case flock.KindAngryBoi:
		return 'x'
	case flock.KindCalmBoi:
		return 'o'
	default:
		return arrow(flock.Direction(b.Heading))
	}
}

func drawScene(screen tcell.Screen, scene *game.Scene, g grid) {
	screen.Clear()

	drawArena(screen, scene.Bounds, g)

	for _, w := range scene.Shockwaves {
		style := attractStyle
		if w.Repel {
			style = repelStyle
		}
		steps := max(16, int(w.Radius*g.scale))
		for i := range steps {
			a := 2 * math.Pi * float64(i) / float64(steps)
			p := w.Position.Add(mgl32.Vec2{float32(math.Cos(a)), float32(math.Sin(a))}.Mul(w.Radius))
			if x, y, ok := g.toCell(p); ok {
				screen.SetContent(x, y, '·', nil, style)
			}
		}
	}

	for _, p := range scene.Pickups {
		x, y, ok := g.toCell(p.Position)
		if !ok {
			continue
		}
		if p.Dormant {
			screen.SetContent(x, y, '.', nil, dormantStyle)
		} else {
			screen.SetContent(x, y, '$', nil, pickupStyle)
		}
	}

	var player *game.Sprite
	for i, b := range scene.Boids {
		if b.Kind == playerKind {
			player = &scene.Boids[i]
			continue
		}
		if x, y, ok := g.toCell(b.Position); ok {
			screen.SetContent(x, y, glyph(b), nil, kindStyles[b.Kind])
		}
	}
	if player != nil {
		if x, y, ok := g.toCell(player.Position); ok {
			style := kindStyles[playerKind]
			if player.Shielded {
				style = style.Reverse(true)
			}
			screen.SetContent(x, y, '@', nil, style)
		}
	}

	drawHUD(screen, &scene.HUD, g.width)
}

func drawArena(screen tcell.Screen, bounds flock.Rect, g grid) {
	x0, y1, _ := g.toCell(bounds.Min)
	x1, y0, _ := g.toCell(bounds.Max)
	for x := max(x0, 0); x <= min(x1, g.width-1); x++ {
		setIfInside(screen, g, x, y0, '─')
		setIfInside(screen, g, x, y1, '─')
	}
	for y := max(y0, hudRows); y <= min(y1, g.height-1); y++ {
		setIfInside(screen, g, x0, y, '│')
		setIfInside(screen, g, x1, y, '│')
	}
}

func setIfInside(screen tcell.Screen, g grid, x, y int, r rune) {
	if x >= 0 && x < g.width && y >= hudRows && y < g.height {
		screen.SetContent(x, y, r, nil, arenaStyle)
	}
}

func hudLine(hud *game.HUD) string {
	line := fmt.Sprintf("Points %d  Wave %d  Health %d  Boost %3.0f%%  Round %d",
		hud.Points, hud.Wave, hud.Health, hud.BoostReady*100, hud.Round)
	switch hud.Phase {
	case game.Paused:
		line += "  PAUSED (p)"
	case game.GameOver:
		line += "  GAME OVER (r)"
	}
	return line
}

func drawHUD(screen tcell.Screen, hud *game.HUD, width int) {
	x := 0
	for _, r := range hudLine(hud) {
		if x >= width {
			break
		}
		screen.SetContent(x, 0, r, nil, hudStyle)
		x++
	}
}
