package render

import (
	"doomcast/internal/geom"
	"doomcast/internal/grid"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	debugCellColor      = rl.NewColor(255, 0, 255, 255)
	debugChunkColor     = rl.NewColor(90, 0, 90, 255)
	debugStaticColor    = rl.Yellow
	debugDynamicColor   = rl.SkyBlue
	debugBillboardColor = rl.Lime
	debugCameraColor    = rl.RayWhite
)

// DrawDebugGrid draws a top-down map centered on the camera, pixelsPerCell pixels per grid cell.
func (r *Renderer) DrawDebugGrid(s Surface, pixelsPerCell float32) {
	width, height := s.Size()
	s.Clear(rl.Black)

	cellSize := float32(grid.DefaultCellSize)
	if r.grid != nil {
		cellSize = r.grid.CellSize()
	}
	scale := pixelsPerCell / cellSize

	center := rl.Vector2Zero()
	if r.camera != nil {
		center = r.camera.Position()
	}
	screenCenter := rl.NewVector2(float32(width)/2, float32(height)/2)
	toScreen := func(p rl.Vector2) rl.Vector2 {
		return rl.Vector2Add(screenCenter, rl.Vector2Scale(rl.Vector2Subtract(p, center), scale))
	}
	box := func(x, y, size float32, c rl.Color) {
		a := toScreen(rl.NewVector2(x, y))
		b := toScreen(rl.NewVector2(x+size, y))
		d := toScreen(rl.NewVector2(x+size, y+size))
		e := toScreen(rl.NewVector2(x, y+size))
		s.DrawLine(a, b, c)
		s.DrawLine(b, d, c)
		s.DrawLine(d, e, c)
		s.DrawLine(e, a, c)
	}

	if r.grid != nil {
		chunks := make(map[cellKey]bool)
		seen := make(map[*geom.Segment]bool)
		r.grid.ForEachCell(func(x, y int, segs []*geom.Segment) {
			box(float32(x)*cellSize, float32(y)*cellSize, cellSize, debugCellColor)

			cx, cy := grid.ChunkOf(x, y)
			chunks[cellKey{cx, cy}] = true

			for _, seg := range segs {
				if !seen[seg] {
					seen[seg] = true
					s.DrawLine(toScreen(seg.Start()), toScreen(seg.End()), debugStaticColor)
				}
			}
		})
		chunkSize := cellSize * grid.ChunkSize
		for k := range chunks {
			box(float32(k.x)*chunkSize, float32(k.y)*chunkSize, chunkSize, debugChunkColor)
		}
	}

	for _, seg := range r.segments {
		s.DrawLine(toScreen(seg.Start()), toScreen(seg.End()), debugDynamicColor)
	}
	for _, b := range r.billboards {
		s.DrawLine(toScreen(b.Start()), toScreen(b.End()), debugBillboardColor)
	}

	if r.camera == nil {
		s.DrawText("No camera object assigned", 10, 10, 20, rl.RayWhite)
		return
	}
	dir := rl.Vector2Normalize(r.camera.Direction())
	s.DrawCircle(screenCenter, 0.25*pixelsPerCell, debugCameraColor)
	s.DrawLine(screenCenter, rl.Vector2Add(screenCenter, rl.Vector2Scale(dir, pixelsPerCell)), debugCameraColor)
}
