package render

import (
	"math"
	"testing"

	"doomcast/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type drawnColumn struct {
	x, y, height int
	src          rl.Rectangle
	texWidth     float32
	tint         rl.Color
}

type fakeSurface struct {
	width, height int

	columns []drawnColumn
	quads   [][4]QuadVertex
	lines   int
	circles int
	texts   []string
}

func (s *fakeSurface) Size() (int, int)                     { return s.width, s.height }
func (s *fakeSurface) Clear(rl.Color)                       {}
func (s *fakeSurface) FillRect(_, _, _, _ int, _ rl.Color)  {}
func (s *fakeSurface) DrawLine(_, _ rl.Vector2, _ rl.Color) { s.lines++ }
func (s *fakeSurface) Present()                             {}

func (s *fakeSurface) DrawCircle(rl.Vector2, float32, rl.Color) { s.circles++ }

func (s *fakeSurface) DrawColumn(tex Texture, src rl.Rectangle, x, y, height int, tint rl.Color) {
	s.columns = append(s.columns, drawnColumn{x: x, y: y, height: height, src: src, texWidth: tex.Width, tint: tint})
}

func (s *fakeSurface) DrawQuad(_ Texture, v [4]QuadVertex, _ rl.Color) {
	s.quads = append(s.quads, v)
}

func (s *fakeSurface) DrawText(text string, _, _, _ int, _ rl.Color) {
	s.texts = append(s.texts, text)
}

func (s *fakeSurface) at(x int) []drawnColumn {
	var out []drawnColumn
	for _, c := range s.columns {
		if c.x == x {
			out = append(out, c)
		}
	}
	return out
}

// textures are told apart by width in the recorded draw calls.
type fakeTextures map[string]Texture

func (t fakeTextures) Texture(name string) (Texture, bool) {
	tex, ok := t[name]
	return tex, ok
}

var testTextures = fakeTextures{
	"wall":  {Width: 64, Height: 64},
	"far":   {Width: 10, Height: 10},
	"near":  {Width: 20, Height: 20},
	"bill":  {Width: 30, Height: 30},
	"door":  {Width: 50, Height: 50},
	"floor": {Width: 16, Height: 16},
}

type fakeCamera struct {
	pos, dir rl.Vector2
}

func (c fakeCamera) Position() rl.Vector2  { return c.pos }
func (c fakeCamera) Direction() rl.Vector2 { return c.dir }

// room is a 1000x1000 box of walls with its corner at the origin.
func room() []*geom.Segment {
	walls := []*geom.Segment{
		geom.NewSegmentBetween(rl.NewVector2(0, 0), rl.NewVector2(1000, 0)),
		geom.NewSegmentBetween(rl.NewVector2(1000, 0), rl.NewVector2(1000, 1000)),
		geom.NewSegmentBetween(rl.NewVector2(1000, 1000), rl.NewVector2(0, 1000)),
		geom.NewSegmentBetween(rl.NewVector2(0, 1000), rl.NewVector2(0, 0)),
	}
	for _, w := range walls {
		w.Texture = "wall"
		w.Wrap = geom.WrapLocal
		w.WrapValue = 1
	}
	return walls
}

func vertical(x float32, texture string, transparent bool) *geom.Segment {
	s := geom.NewSegmentBetween(rl.NewVector2(x, 100), rl.NewVector2(x, 900))
	s.Texture = texture
	s.Transparent = transparent
	return s
}

func newTestRenderer(opts Options) *Renderer {
	opts.Workers = 2
	r := New(opts, testTextures)
	r.ConstructStaticGrid(room())
	r.SetCamera(fakeCamera{pos: rl.NewVector2(500, 500), dir: rl.NewVector2(1, 0)})
	return r
}

func widths(cols []drawnColumn) []float32 {
	out := make([]float32, len(cols))
	for i, c := range cols {
		out[i] = c.texWidth
	}
	return out
}

func equalWidths(got, want []float32) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestDrawSceneWithoutCamera(t *testing.T) {
	r := New(DefaultOptions(), testTextures)
	s := &fakeSurface{width: 9, height: 100}
	r.DrawScene(s)

	if len(s.texts) != 1 || s.texts[0] != "No camera object assigned" {
		t.Errorf("expected the missing camera message, got %v", s.texts)
	}
	if len(s.columns) != 0 {
		t.Errorf("expected no columns without a camera, got %d", len(s.columns))
	}
}

func TestDrawSceneCenterColumn(t *testing.T) {
	r := newTestRenderer(DefaultOptions())
	s := &fakeSurface{width: 9, height: 100}
	r.DrawScene(s)

	cols := s.at(4)
	if len(cols) != 1 {
		t.Fatalf("expected one column at the center, got %d", len(cols))
	}
	c := cols[0]
	// 500 units away at a scale of 100 is a depth of 5, so 100/5 pixels tall.
	if c.height != 20 || c.y != 40 {
		t.Errorf("expected a 20px column starting at 40, got %dpx at %d", c.height, c.y)
	}
	if c.src.Width != 1 || c.src.Height != 64 {
		t.Errorf("expected a 1x64 source column, got %vx%v", c.src.Width, c.src.Height)
	}
	if math.Abs(float64(c.src.X-32)) > 1 {
		t.Errorf("expected to sample the middle of the texture, got x=%v", c.src.X)
	}
	if c.tint != rl.White {
		t.Errorf("expected no tint without fog, got %v", c.tint)
	}

	if len(s.columns) != 9 {
		t.Errorf("expected every column to hit a wall, got %d", len(s.columns))
	}
	if st := r.Stats(); st.OpaqueHits != 9 || st.Columns != 9 || st.VisitedCells == 0 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestDrawSceneTransparentBackToFront(t *testing.T) {
	r := newTestRenderer(DefaultOptions())
	r.AddSegment(vertical(700, "near", true))
	r.AddSegment(vertical(800, "far", true))
	b := geom.NewBillboard(rl.NewVector2(600, 500), 50)
	b.Texture = "bill"
	r.AddBillboard(b)

	s := &fakeSurface{width: 9, height: 100}
	r.DrawScene(s)

	got := widths(s.at(4))
	want := []float32{64, 10, 20, 30}
	if !equalWidths(got, want) {
		t.Errorf("expected draw order %v, got %v", want, got)
	}
}

func TestDrawSceneTransparentDepthCap(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxTransparentDepth = 2
	r := newTestRenderer(opts)
	r.AddSegment(vertical(800, "far", true))
	r.AddSegment(vertical(700, "near", true))
	b := geom.NewBillboard(rl.NewVector2(600, 500), 50)
	b.Texture = "bill"
	r.AddBillboard(b)

	s := &fakeSurface{width: 9, height: 100}
	r.DrawScene(s)

	got := widths(s.at(4))
	want := []float32{64, 20, 30}
	if !equalWidths(got, want) {
		t.Errorf("expected the farthest transparent hit to be dropped, want %v, got %v", want, got)
	}
}

func TestDrawSceneDynamicOpaqueOccludes(t *testing.T) {
	r := newTestRenderer(DefaultOptions())
	r.AddSegment(vertical(700, "near", true))
	door := vertical(650, "door", false)
	r.AddSegment(door)
	b := geom.NewBillboard(rl.NewVector2(600, 500), 50)
	b.Texture = "bill"
	r.AddBillboard(b)

	s := &fakeSurface{width: 9, height: 100}
	r.DrawScene(s)

	got := widths(s.at(4))
	want := []float32{50, 30}
	if !equalWidths(got, want) {
		t.Errorf("expected the door and the billboard in front of it, want %v, got %v", want, got)
	}

	r.RemoveSegment(door)
	s = &fakeSurface{width: 9, height: 100}
	r.DrawScene(s)
	if got := widths(s.at(4)); !equalWidths(got, []float32{64, 20, 30}) {
		t.Errorf("expected the wall behind the removed door, got %v", got)
	}
}

func TestBillboardsFaceCamera(t *testing.T) {
	r := newTestRenderer(DefaultOptions())
	b := geom.NewBillboard(rl.NewVector2(600, 500), 50)
	r.AddBillboard(b)
	r.DrawScene(&fakeSurface{width: 9, height: 100})

	d := b.Direction()
	if math.Abs(float64(d.X)) > 1e-3 {
		t.Errorf("expected the billboard to stand perpendicular to the view, direction %v", d)
	}
}

func TestMissingTextureSkipsColumn(t *testing.T) {
	r := newTestRenderer(DefaultOptions())
	r.AddSegment(vertical(700, "nope", false))

	s := &fakeSurface{width: 9, height: 100}
	r.DrawScene(s)
	if len(s.at(4)) != 0 {
		t.Errorf("expected nothing drawn for an unknown texture")
	}
	if r.Stats().MissingTextures == 0 {
		t.Error("expected missing textures to be counted")
	}
}

func TestDrawScenePlanes(t *testing.T) {
	opts := DefaultOptions()
	opts.FloorTexture = "floor"
	r := newTestRenderer(opts)

	s := &fakeSurface{width: 32, height: 100}
	r.DrawScene(s)

	st := r.Stats()
	if st.Quads == 0 || len(s.quads) != st.Quads {
		t.Fatalf("expected floor quads, stats %d, drawn %d", st.Quads, len(s.quads))
	}
	if st.VisitedCells < 5 {
		t.Errorf("expected the rays to cross at least five cells, got %d", st.VisitedCells)
	}
	for _, q := range s.quads {
		for _, v := range q {
			if v.UV.X < 0 || v.UV.X > 1 || v.UV.Y < 0 || v.UV.Y > 1 {
				t.Fatalf("uv out of range: %v", v.UV)
			}
		}
	}
}

func TestWorldToScreenStraightAhead(t *testing.T) {
	r := New(DefaultOptions(), nil)
	f := &frame{width: 200, height: 100, cam: rl.NewVector2(0, 0), dir: rl.NewVector2(1, 0), near: 866}

	p, ok := r.worldToScreen(f, rl.NewVector2(500, 0), floorPlane)
	if !ok || p.X != 100 || p.Y != 60 {
		t.Errorf("floor point ahead: got %v ok=%v, want (100, 60)", p, ok)
	}
	p, _ = r.worldToScreen(f, rl.NewVector2(500, 0), ceilingPlane)
	if p.Y != 40 {
		t.Errorf("ceiling point ahead: got y=%v, want 40", p.Y)
	}
	if _, ok := r.worldToScreen(f, rl.NewVector2(-500, 10), floorPlane); ok {
		t.Error("a point behind the camera should not be visible")
	}
}

func TestDrawDebugGrid(t *testing.T) {
	r := newTestRenderer(DefaultOptions())
	r.AddSegment(vertical(700, "door", false))

	s := &fakeSurface{width: 400, height: 300}
	r.DrawDebugGrid(s, 20)
	if s.lines == 0 || s.circles != 1 {
		t.Errorf("expected lines and one camera marker, got %d lines, %d circles", s.lines, s.circles)
	}
}

func TestCastBandReportsPanics(t *testing.T) {
	r := New(DefaultOptions(), nil)
	r.columns = nil
	if err := r.castBand(&frame{}, 0, 1); err == nil {
		t.Error("expected a failing band to come back as an error")
	}
}
