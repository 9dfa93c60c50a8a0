// Package grid holds the static spatial index used by the raycaster.
package grid

import (
	"log"
	"time"

	"doomcast/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// DefaultCellSize is the edge length of a cell in world units.
	DefaultCellSize = 100
	// ChunkSize is the number of cells along each edge of a chunk.
	ChunkSize = 16
)

type chunkKey struct {
	X, Y int
}

type chunk struct {
	cells [ChunkSize * ChunkSize][]*geom.Segment
}

// StaticGrid maps integer cell coordinates to the static opaque segments overlapping each cell.
// It is built once and never changes afterwards, so it is safe for concurrent readers.
type StaticGrid struct {
	cellSize float32
	chunks   map[chunkKey]*chunk

	minX, minY int
	maxX, maxY int
	empty      bool

	cellCount    int
	segmentCount int
}

// Construct builds a grid from level geometry. Every segment is forced opaque and recorded in every
// cell its line passes through.
func Construct(segments []*geom.Segment, cellSize float32) *StaticGrid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	g := &StaticGrid{
		cellSize:     cellSize,
		chunks:       make(map[chunkKey]*chunk),
		empty:        true,
		segmentCount: len(segments),
	}

	started := time.Now()
	step := max(1, len(segments)/10)

	for i, seg := range segments {
		seg.Transparent = false
		geom.TraverseCells(seg.Start(), seg.End(), cellSize, func(x, y int) bool {
			g.insert(x, y, seg)
			return true
		})

		if len(segments) >= 10 && (i+1)%step == 0 {
			log.Printf("Grid: %d%% (%d/%d segments)", (i+1)*100/len(segments), i+1, len(segments))
		}
	}

	log.Printf("Grid: done, %d cells across %d chunks in %.3fs", g.cellCount, len(g.chunks), time.Since(started).Seconds())
	return g
}

func (g *StaticGrid) insert(x, y int, seg *geom.Segment) {
	key, idx := locate(x, y)
	c, ok := g.chunks[key]
	if !ok {
		c = &chunk{}
		g.chunks[key] = c
	}
	if len(c.cells[idx]) == 0 {
		g.cellCount++
	}
	c.cells[idx] = append(c.cells[idx], seg)

	if g.empty {
		g.minX, g.maxX, g.minY, g.maxY = x, x, y, y
		g.empty = false
		return
	}
	g.minX = min(g.minX, x)
	g.maxX = max(g.maxX, x)
	g.minY = min(g.minY, y)
	g.maxY = max(g.maxY, y)
}

func locate(x, y int) (chunkKey, int) {
	cx, lx := floorDiv(x, ChunkSize)
	cy, ly := floorDiv(y, ChunkSize)
	return chunkKey{cx, cy}, ly*ChunkSize + lx
}

// ChunkOf returns the chunk coordinates holding cell (x, y).
func ChunkOf(x, y int) (int, int) {
	cx, _ := floorDiv(x, ChunkSize)
	cy, _ := floorDiv(y, ChunkSize)
	return cx, cy
}

// floorDiv returns the floored quotient and the non-negative remainder.
func floorDiv(a, b int) (int, int) {
	q := a / b
	r := a % b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

// CellAt returns the segments registered in cell (x, y). outOfBounds is true when the cell lies
// outside the bounding rectangle of all populated cells.
func (g *StaticGrid) CellAt(x, y int) (segments []*geom.Segment, outOfBounds bool) {
	if !g.InBounds(x, y) {
		return nil, true
	}
	key, idx := locate(x, y)
	c, ok := g.chunks[key]
	if !ok {
		return nil, false
	}
	return c.cells[idx], false
}

// InBounds reports whether (x, y) lies inside the populated bounding rectangle.
func (g *StaticGrid) InBounds(x, y int) bool {
	if g == nil || g.empty {
		return false
	}
	return x >= g.minX && x <= g.maxX && y >= g.minY && y <= g.maxY
}

// Bounds returns the inclusive cell bounds. ok is false for an empty grid.
func (g *StaticGrid) Bounds() (minX, minY, maxX, maxY int, ok bool) {
	return g.minX, g.minY, g.maxX, g.maxY, !g.empty
}

func (g *StaticGrid) CellSize() float32 { return g.cellSize }
func (g *StaticGrid) CellCount() int    { return g.cellCount }
func (g *StaticGrid) ChunkCount() int   { return len(g.chunks) }
func (g *StaticGrid) SegmentCount() int { return g.segmentCount }

// CellOf returns the cell containing a world-space point.
func (g *StaticGrid) CellOf(p rl.Vector2) (int, int) {
	return geom.CellOf(p, g.cellSize)
}

// ForEachCell calls fn for every populated cell. Order is unspecified.
func (g *StaticGrid) ForEachCell(fn func(x, y int, segments []*geom.Segment)) {
	for key, c := range g.chunks {
		for idx, segs := range c.cells {
			if len(segs) == 0 {
				continue
			}
			fn(key.X*ChunkSize+idx%ChunkSize, key.Y*ChunkSize+idx/ChunkSize, segs)
		}
	}
}
