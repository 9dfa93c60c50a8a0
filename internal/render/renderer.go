// Package render draws a 2.5D first-person view of a 2D world of segments by casting one ray
// per screen column.
package render

import (
	"cmp"
	"fmt"
	"log"
	"runtime"
	"slices"
	"time"

	"doomcast/internal/geom"
	"doomcast/internal/grid"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"
)

const nearPlaneScale = 1000

// FrameStats describes the last DrawScene call.
type FrameStats struct {
	Columns         int
	VisitedCells    int
	Quads           int
	OpaqueHits      int
	TransparentHits int
	MissingTextures int

	Cast   time.Duration
	Planes time.Duration
	Draw   time.Duration
}

// Renderer owns the static grid and the dynamic scene contents. It is not safe for concurrent
// use. DrawScene parallelizes internally and returns only once every worker is done.
type Renderer struct {
	opts      Options
	fogTarget colorful.Color
	textures  TextureSource
	camera    Camera

	grid       *grid.StaticGrid
	segments   []*geom.Segment
	billboards []*geom.Billboard

	planes [lodCount][]uvPlane

	columns   []column
	hitBuffer []columnHit
	sorted    []*geom.Billboard

	stats FrameStats
}

type noTextures struct{}

func (noTextures) Texture(string) (Texture, bool) { return Texture{}, false }

// New creates a renderer. A nil texture source draws nothing textured.
func New(opts Options, textures TextureSource) *Renderer {
	if textures == nil {
		textures = noTextures{}
	}
	r := &Renderer{
		textures: textures,
		planes:   lodPlanes(),
	}
	r.SetOptions(opts)
	return r
}

func (r *Renderer) Options() Options { return r.opts }

func (r *Renderer) SetOptions(opts Options) {
	if opts.MaxTransparentDepth < 0 {
		opts.MaxTransparentDepth = 0
	}
	if opts.WorldUnitScale <= 0 {
		opts.WorldUnitScale = 100
	}
	if opts.MaxTransparentDepth != r.opts.MaxTransparentDepth {
		r.columns = nil
	}
	r.opts = opts
	r.fogTarget = fogTarget(opts.Fog.Color)
}

func (r *Renderer) SetCamera(c Camera) { r.camera = c }

func (r *Renderer) Camera() Camera { return r.camera }

func (r *Renderer) SetStaticGrid(g *grid.StaticGrid) { r.grid = g }

func (r *Renderer) StaticGrid() *grid.StaticGrid { return r.grid }

// ConstructStaticGrid builds and installs a grid from level geometry.
func (r *Renderer) ConstructStaticGrid(segments []*geom.Segment) *grid.StaticGrid {
	r.grid = grid.Construct(segments, grid.DefaultCellSize)
	return r.grid
}

// AddSegment registers a segment that may move between frames.
func (r *Renderer) AddSegment(s *geom.Segment) {
	r.segments = append(r.segments, s)
}

func (r *Renderer) RemoveSegment(s *geom.Segment) {
	r.segments = slices.DeleteFunc(r.segments, func(x *geom.Segment) bool { return x == s })
}

func (r *Renderer) AddBillboard(b *geom.Billboard) {
	r.billboards = append(r.billboards, b)
}

func (r *Renderer) RemoveBillboard(b *geom.Billboard) {
	r.billboards = slices.DeleteFunc(r.billboards, func(x *geom.Billboard) bool { return x == b })
}

func (r *Renderer) Segments() []*geom.Segment     { return r.segments }
func (r *Renderer) Billboards() []*geom.Billboard { return r.billboards }

func (r *Renderer) Stats() FrameStats { return r.stats }

// DrawScene renders one frame onto s.
func (r *Renderer) DrawScene(s Surface) {
	width, height := s.Size()
	r.stats = FrameStats{Columns: width}

	s.FillRect(0, 0, width, height/2, r.opts.CeilingColor)
	s.FillRect(0, height/2, width, height-height/2, r.opts.FloorColor)

	if r.camera == nil {
		s.DrawText("No camera object assigned", 10, 10, 20, rl.RayWhite)
		return
	}
	if width <= 0 || height <= 0 {
		return
	}

	f := r.prepare(width, height)

	started := time.Now()
	r.castColumns(f)
	r.stats.Cast = time.Since(started)

	started = time.Now()
	r.drawVisitedPlanes(s, f)
	r.stats.Planes = time.Since(started)

	started = time.Now()
	for i := range r.columns[:width] {
		col := &r.columns[i]
		if col.hasOpaque {
			r.stats.OpaqueHits++
			r.drawColumn(s, f, i, col.angle, col.opaque)
		}
		for j := len(col.transparent) - 1; j >= 0; j-- {
			r.stats.TransparentHits++
			r.drawColumn(s, f, i, col.angle, col.transparent[j])
		}
	}
	r.stats.Draw = time.Since(started)
}

// prepare splits the dynamic segments, faces and sorts the billboards and sizes the column
// buffers for this frame.
func (r *Renderer) prepare(width, height int) *frame {
	cam := r.camera.Position()
	dir := rl.Vector2Normalize(r.camera.Direction())

	f := &frame{
		width:   width,
		height:  height,
		cam:     cam,
		dir:     dir,
		near:    float32(cosDeg(r.opts.FOV/2)) * nearPlaneScale,
		grid:    r.grid,
		visited: &visitedCells{},
	}

	for _, s := range r.segments {
		if s.Transparent {
			f.transparent = append(f.transparent, s)
		} else {
			f.opaque = append(f.opaque, s)
		}
	}

	facing := geom.FacingAngle(dir)
	r.sorted = append(r.sorted[:0], r.billboards...)
	for _, b := range r.sorted {
		b.Face(facing)
	}
	slices.SortStableFunc(r.sorted, func(a, b *geom.Billboard) int {
		return cmp.Compare(rl.Vector2Distance(a.Midpoint(), cam), rl.Vector2Distance(b.Midpoint(), cam))
	})
	f.billboards = r.sorted

	r.ensureColumns(width)
	return f
}

func (r *Renderer) ensureColumns(width int) {
	if len(r.columns) >= width {
		return
	}
	depth := r.opts.MaxTransparentDepth
	r.columns = make([]column, width)
	r.hitBuffer = make([]columnHit, width*depth)
	for i := range r.columns {
		r.columns[i].transparent = r.hitBuffer[i*depth : i*depth : (i+1)*depth]
	}
	log.Printf("Render: allocated %d columns, transparent depth %d", width, depth)
}

// castColumns runs the rays in parallel bands. Each band writes only its own columns.
func (r *Renderer) castColumns(f *frame) {
	workers := r.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	band := max(1, (f.width+workers-1)/workers)

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < f.width; start += band {
		end := min(start+band, f.width)
		g.Go(func() error {
			return r.castBand(f, start, end)
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("Render: column cast: %v", err)
	}
}

// castBand casts columns [start, end). A panic in one band is reported as an error so the frame
// still completes with the other bands.
func (r *Renderer) castBand(f *frame, start, end int) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("columns %d-%d: %v", start, end, p)
		}
	}()
	for i := start; i < end; i++ {
		r.cast(f, i, &r.columns[i])
	}
	return nil
}

// drawVisitedPlanes draws floors and ceilings of every cell a ray passed through, far to near.
func (r *Renderer) drawVisitedPlanes(s Surface, f *frame) {
	cells := f.visited.keys()
	r.stats.VisitedCells = len(cells)
	if f.grid == nil || r.opts.FloorTexture == "" && r.opts.CeilingTexture == "" {
		return
	}

	size := f.grid.CellSize()
	distance := func(c cellKey) float32 {
		mid := rl.NewVector2((float32(c.x)+0.5)*size, (float32(c.y)+0.5)*size)
		return rl.Vector2Distance(mid, f.cam)
	}
	slices.SortFunc(cells, func(a, b cellKey) int {
		return cmp.Compare(distance(b), distance(a))
	})

	for _, c := range cells {
		r.stats.Quads += r.drawPlanes(s, f, c.x, c.y, size)
	}
}

func (r *Renderer) drawColumn(s Surface, f *frame, x int, angle float32, hit columnHit) {
	tex, ok := r.textures.Texture(hit.seg.Texture)
	if !ok {
		r.stats.MissingTextures++
		return
	}

	lh := lineHeight(f.height, hit.seg.Height, hit.dist, angle, r.opts.WorldUnitScale)
	top := f.height/2 - lh/2 + int(hit.seg.OffsetY*float32(lh))

	u, vStart, vExtent := hit.seg.TextureCoordinate(hit.u, tex.Width, tex.Height)
	src := rl.NewRectangle(
		float32(int(u*tex.Width)),
		float32(int(vStart*tex.Height)),
		1,
		float32(int(vExtent*tex.Height)),
	)
	s.DrawColumn(tex, src, x, top, lh, r.shade(hit.dist))
}
