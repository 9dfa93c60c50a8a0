package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CellTraverser walks the cells of a uniform grid crossed by a line, Amanatides-Woo style.
// Each step advances along the axis whose next cell boundary is closer in parametric distance.
// Crossing exactly through a corner steps both axes at once.
//
// A bounded traverser stops after the cell holding the end point. An unbounded one keeps going
// and the caller decides when to stop.
type CellTraverser struct {
	currX, currY     int
	targetX, targetY int
	stepX, stepY     int

	tMaxX, tMaxY     float64
	tDeltaX, tDeltaY float64

	bounded bool
	started bool
	done    bool
}

// CellOf returns the cell containing p.
func CellOf(p rl.Vector2, cellSize float32) (int, int) {
	return int(math.Floor(float64(p.X / cellSize))), int(math.Floor(float64(p.Y / cellSize)))
}

// NewCellTraverser walks from a to b, visiting both end cells.
func NewCellTraverser(a, b rl.Vector2, cellSize float32) CellTraverser {
	t := newTraverser(a, rl.Vector2Subtract(b, a), cellSize)
	t.targetX, t.targetY = CellOf(b, cellSize)
	t.bounded = true
	return t
}

// NewRayTraverser walks from origin along dir without an end cell.
func NewRayTraverser(origin, dir rl.Vector2, cellSize float32) CellTraverser {
	return newTraverser(origin, dir, cellSize)
}

func newTraverser(origin, d rl.Vector2, cellSize float32) CellTraverser {
	t := CellTraverser{stepX: 1, stepY: 1}
	t.currX, t.currY = CellOf(origin, cellSize)

	size := float64(cellSize)
	ox, oy := float64(origin.X), float64(origin.Y)
	dx, dy := float64(d.X), float64(d.Y)
	if dx < 0 {
		t.stepX = -1
	}
	if dy < 0 {
		t.stepY = -1
	}

	if math.Abs(dx) < Epsilon {
		t.tMaxX = math.Inf(1)
		t.tDeltaX = math.Inf(1)
	} else {
		t.tDeltaX = size / math.Abs(dx)
		boundary := float64(t.currX) * size
		if t.stepX > 0 {
			boundary += size
		}
		t.tMaxX = (boundary - ox) / dx
	}

	if math.Abs(dy) < Epsilon {
		t.tMaxY = math.Inf(1)
		t.tDeltaY = math.Inf(1)
	} else {
		t.tDeltaY = size / math.Abs(dy)
		boundary := float64(t.currY) * size
		if t.stepY > 0 {
			boundary += size
		}
		t.tMaxY = (boundary - oy) / dy
	}
	return t
}

// Next advances to the next cell. The first call yields the start cell.
func (t *CellTraverser) Next() bool {
	if t.done {
		return false
	}
	if !t.started {
		t.started = true
		return true
	}
	if t.bounded {
		return t.stepBounded()
	}
	if math.IsInf(t.tMaxX, 1) && math.IsInf(t.tMaxY, 1) {
		t.done = true
		return false
	}

	switch {
	case t.tMaxX < t.tMaxY:
		t.currX += t.stepX
		t.tMaxX += t.tDeltaX
	case t.tMaxX > t.tMaxY:
		t.currY += t.stepY
		t.tMaxY += t.tDeltaY
	default:
		t.currX += t.stepX
		t.tMaxX += t.tDeltaX
		t.currY += t.stepY
		t.tMaxY += t.tDeltaY
	}
	return true
}

// stepBounded never steps past the target on either axis, so it always terminates.
func (t *CellTraverser) stepBounded() bool {
	if t.currX == t.targetX && t.currY == t.targetY {
		t.done = true
		return false
	}

	switch {
	case t.tMaxX < t.tMaxY:
		if t.currX != t.targetX {
			t.currX += t.stepX
			t.tMaxX += t.tDeltaX
		} else {
			t.currY += t.stepY
			t.tMaxY += t.tDeltaY
		}
	case t.tMaxX > t.tMaxY:
		if t.currY != t.targetY {
			t.currY += t.stepY
			t.tMaxY += t.tDeltaY
		} else {
			t.currX += t.stepX
			t.tMaxX += t.tDeltaX
		}
	default:
		if t.currX != t.targetX {
			t.currX += t.stepX
			t.tMaxX += t.tDeltaX
		}
		if t.currY != t.targetY {
			t.currY += t.stepY
			t.tMaxY += t.tDeltaY
		}
	}
	return true
}

// Cell returns the current cell coordinates.
func (t *CellTraverser) Cell() (int, int) {
	return t.currX, t.currY
}

// TraverseCells calls fn for every cell between a and b until fn returns false.
func TraverseCells(a, b rl.Vector2, cellSize float32, fn func(x, y int) bool) {
	t := NewCellTraverser(a, b, cellSize)
	for t.Next() {
		if !fn(t.Cell()) {
			return
		}
	}
}
