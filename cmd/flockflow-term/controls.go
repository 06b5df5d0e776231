package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/flockflow/game"
)

// Terminals only report key presses, so a press holds its action for holdFor. Auto-repeat
// keeps a held key alive.
const holdFor = 150 * time.Millisecond

type controls struct {
	left, right, brake, boost time.Time

	pause, restart, nextWave, shockwave bool
	// shockwaveX and shockwaveY are grid cells; shockwaveAtPlayer fires at the player instead.
	shockwaveX, shockwaveY int
	shockwaveAtPlayer      bool
}

// handleKey records a key press and reports whether the player asked to quit.
func (c *controls) handleKey(ev *tcell.EventKey, now time.Time) bool {
	until := now.Add(holdFor)

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		c.pause = true
	case tcell.KeyLeft:
		c.left = until
	case tcell.KeyRight:
		c.right = until
	case tcell.KeyUp:
		c.boost = until
	case tcell.KeyDown:
		c.brake = until
	case tcell.KeyEnter:
		c.restart = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'a', 'A':
			c.left = until
		case 'd', 'D':
			c.right = until
		case 'w', 'W', ' ':
			c.boost = until
		case 's', 'S':
			c.brake = until
		case 'p', 'P':
			c.pause = true
		case 'r', 'R':
			c.restart = true
		case 'n', 'N':
			c.nextWave = true
		case 'x', 'X':
			c.shockwave = true
			c.shockwaveAtPlayer = true
		}
	}
	return false
}

func (c *controls) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	c.shockwave = true
	c.shockwaveAtPlayer = false
	c.shockwaveX, c.shockwaveY = ev.Position()
}

// apply writes the current controls into in and clears one-shot actions.
func (c *controls) apply(in *game.Input, g grid, scene *game.Scene, now time.Time) {
	in.Turn = 0
	if now.Before(c.left) {
		in.Turn--
	}
	if now.Before(c.right) {
		in.Turn++
	}
	in.Brake = now.Before(c.brake)
	in.Boost = now.Before(c.boost)
	in.Pause = c.pause
	in.Restart = c.restart
	in.NextWave = c.nextWave

	if c.shockwave {
		in.Shockwave = true
		in.ShockwaveAt = g.toWorld(c.shockwaveX, c.shockwaveY)
		if c.shockwaveAtPlayer {
			in.Shockwave = false
			for _, b := range scene.Boids {
				if b.Kind == playerKind {
					in.Shockwave = true
					in.ShockwaveAt = b.Position
					break
				}
			}
		}
	}

	c.pause, c.restart, c.nextWave, c.shockwave = false, false, false, false
}
