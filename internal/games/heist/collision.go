package heist

import (
	"github.com/goldnoam/great-heist/internal/config"
	"github.com/goldnoam/great-heist/internal/core"
)

// footprint returns the player's collision box centered on pos.
func footprint(pos Point, size float64) core.Rect {
	return core.RectAround(pos, size/2)
}

// blocked reports whether a player centered on pos overlaps any wall.
func blocked(pos Point, size float64, walls []Wall) bool {
	box := footprint(pos, size)
	for _, w := range walls {
		if box.Intersects(w) {
			return true
		}
	}
	return false
}

// resolveMove applies an axis-separated move of (dx, dy) from pos.
//
// The X move is tested at (x+dx, y) and the Y move at (x, y+dy); each is
// kept only if it clears every wall. If both pass but the combined position
// still overlaps a wall, the player stays at pos.
func resolveMove(pos Point, dx, dy, size float64, walls []Wall) Point {
	next := pos

	if dx != 0 && !blocked(core.V(pos.X+dx, pos.Y), size, walls) {
		next.X = pos.X + dx
	}
	if dy != 0 && !blocked(core.V(pos.X, pos.Y+dy), size, walls) {
		next.Y = pos.Y + dy
	}

	if next != pos && blocked(next, size, walls) {
		return pos
	}
	return next
}

// clampInterior keeps the player center inside the playable interior.
func clampInterior(pos Point, cfg config.HeistConfig) Point {
	minX, minY, maxX, maxY := cfg.Interior()
	return core.V(core.ClampF(pos.X, minX, maxX), core.ClampF(pos.Y, minY, maxY))
}

// movePlayer resolves one tick of player motion for intent.
func movePlayer(pos Point, intent Intent, cfg config.HeistConfig, walls []Wall) Point {
	ax, ay := intent.Axes()
	if ax == 0 && ay == 0 {
		return pos
	}
	speed := cfg.Player.Speed
	next := resolveMove(pos, ax*speed, ay*speed, cfg.Player.Size, walls)
	return clampInterior(next, cfg)
}
