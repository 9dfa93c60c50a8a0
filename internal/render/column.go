package render

import (
	"math"
	"sync"

	"doomcast/internal/geom"
	"doomcast/internal/grid"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// cellPadding widens a cell when checking whether a hit belongs to it.
const cellPadding = 0.0001

type columnHit struct {
	seg  *geom.Segment
	dist float32
	u    float32
}

type column struct {
	angle       float32
	opaque      columnHit
	hasOpaque   bool
	transparent []columnHit // nearest first
}

// insertHit places h into hits ordered nearest first. When hits is already at capacity the
// farthest entry falls off.
func insertHit(hits []columnHit, h columnHit, capacity int) []columnHit {
	pos := len(hits)
	for pos > 0 && h.dist < hits[pos-1].dist {
		pos--
	}
	if pos >= capacity {
		return hits
	}
	if len(hits) < capacity {
		hits = append(hits, columnHit{})
	}
	copy(hits[pos+1:], hits[pos:len(hits)-1])
	hits[pos] = h
	return hits
}

type cellKey struct{ x, y int }

// visitedCells is the set of grid cells touched by any ray this frame.
type visitedCells struct {
	m sync.Map
}

func (v *visitedCells) add(x, y int) {
	v.m.LoadOrStore(cellKey{x, y}, struct{}{})
}

func (v *visitedCells) keys() []cellKey {
	var out []cellKey
	v.m.Range(func(k, _ any) bool {
		out = append(out, k.(cellKey))
		return true
	})
	return out
}

// frame is the read-only state shared by every column of one DrawScene call.
type frame struct {
	width, height int
	cam           rl.Vector2
	dir           rl.Vector2
	near          float32

	grid        *grid.StaticGrid
	opaque      []*geom.Segment
	transparent []*geom.Segment
	billboards  []*geom.Billboard

	visited *visitedCells
}

func columnAngle(i, width int, near float32) float32 {
	return float32(math.Atan(float64(float32(width/2-i) / near)))
}

// cast fills col with everything the ray of screen column i hits.
func (r *Renderer) cast(f *frame, i int, col *column) {
	angle := columnAngle(i, f.width, f.near)
	ray := rl.Vector2Normalize(rl.Vector2Rotate(f.dir, -angle))

	col.angle = angle
	col.hasOpaque = false
	col.transparent = col.transparent[:0]

	closest := r.opts.RenderDistance

	if f.grid != nil {
		cellSize := f.grid.CellSize()
		end := rl.Vector2Add(f.cam, rl.Vector2Scale(ray, r.opts.RenderDistance))
		tr := geom.NewCellTraverser(f.cam, end, cellSize)
		for tr.Next() {
			x, y := tr.Cell()
			segs, out := f.grid.CellAt(x, y)
			if out {
				break
			}
			f.visited.add(x, y)

			for _, seg := range segs {
				hit, ok := geom.IntersectRay(f.cam, ray, seg)
				if !ok || !insideCell(hit.Point, x, y, cellSize) {
					continue
				}
				if hit.Distance < closest {
					closest = hit.Distance
					col.opaque = columnHit{seg: seg, dist: hit.Distance, u: hit.U}
					col.hasOpaque = true
				}
			}
			if col.hasOpaque {
				break
			}
		}
	}

	for _, seg := range f.opaque {
		hit, ok := geom.IntersectRay(f.cam, ray, seg)
		if ok && hit.Distance < closest {
			closest = hit.Distance
			col.opaque = columnHit{seg: seg, dist: hit.Distance, u: hit.U}
			col.hasOpaque = true
		}
	}

	depth := r.opts.MaxTransparentDepth
	for _, b := range f.billboards {
		if len(col.transparent) == depth {
			break
		}
		hit, ok := geom.IntersectRay(f.cam, ray, &b.Segment)
		if ok && hit.Distance < closest {
			col.transparent = append(col.transparent, columnHit{seg: &b.Segment, dist: hit.Distance, u: hit.U})
		}
	}

	for _, seg := range f.transparent {
		hit, ok := geom.IntersectRay(f.cam, ray, seg)
		if ok && hit.Distance < closest {
			col.transparent = insertHit(col.transparent, columnHit{seg: seg, dist: hit.Distance, u: hit.U}, depth)
		}
	}
}

func insideCell(p rl.Vector2, x, y int, size float32) bool {
	return p.X <= (float32(x)+1+cellPadding)*size && p.X >= (float32(x)-cellPadding)*size &&
		p.Y <= (float32(y)+1+cellPadding)*size && p.Y >= (float32(y)-cellPadding)*size
}

// lineHeight is the projected height of a wall slice d units away, corrected for fisheye.
func lineHeight(screenHeight int, height, d, angle, scale float32) int {
	depth := max(d*float32(math.Cos(float64(angle)))/scale, 0.001)
	return int(height * float32(math.Ceil(float64(float32(screenHeight)*10000/depth))) / 10000)
}

func cosDeg(deg float32) float64 {
	return math.Cos(float64(geom.DegToRad(deg)))
}
