package render

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// uvPlane is a quad in cell-local unit coordinates, corners in winding order, with the texture
// window it maps to.
type uvPlane struct {
	corners  [4]rl.Vector2
	uv0, uv1 rl.Vector2
}

var unitPlane = uvPlane{
	corners: [4]rl.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
	uv0:     rl.NewVector2(0, 0),
	uv1:     rl.NewVector2(1, 1),
}

// subdivide splits p along its middle lines into four planes.
func subdivide(p uvPlane) [4]uvPlane {
	a, b, c, d := p.corners[0], p.corners[1], p.corners[2], p.corners[3]
	ab := rl.Vector2Lerp(a, b, 0.5)
	bc := rl.Vector2Lerp(b, c, 0.5)
	cd := rl.Vector2Lerp(c, d, 0.5)
	da := rl.Vector2Lerp(d, a, 0.5)
	mid := rl.Vector2Lerp(ab, cd, 0.5)
	uvMid := rl.Vector2Lerp(p.uv0, p.uv1, 0.5)

	return [4]uvPlane{
		{corners: [4]rl.Vector2{a, ab, mid, da}, uv0: p.uv0, uv1: uvMid},
		{corners: [4]rl.Vector2{ab, b, bc, mid}, uv0: rl.NewVector2(uvMid.X, p.uv0.Y), uv1: rl.NewVector2(p.uv1.X, uvMid.Y)},
		{corners: [4]rl.Vector2{mid, bc, c, cd}, uv0: uvMid, uv1: p.uv1},
		{corners: [4]rl.Vector2{da, mid, cd, d}, uv0: rl.NewVector2(p.uv0.X, uvMid.Y), uv1: rl.NewVector2(uvMid.X, p.uv1.Y)},
	}
}

func subdivideAll(planes []uvPlane) []uvPlane {
	out := make([]uvPlane, 0, len(planes)*4)
	for _, p := range planes {
		parts := subdivide(p)
		out = append(out, parts[:]...)
	}
	return out
}

// lodPlanes returns the unit cell planes for every LOD level.
func lodPlanes() [lodCount][]uvPlane {
	var levels [lodCount][]uvPlane
	levels[LODFar] = []uvPlane{unitPlane}
	levels[LODLow] = subdivideAll(levels[LODFar])
	levels[LODMid] = subdivideAll(levels[LODLow])
	levels[LODHigh] = subdivideAll(levels[LODMid])
	return levels
}

type planeKind int

const (
	floorPlane planeKind = iota
	ceilingPlane
)

// worldToScreen projects a point on the floor or ceiling into screen space. ok is false when
// the point lies behind the camera.
func (r *Renderer) worldToScreen(f *frame, p rl.Vector2, kind planeKind) (rl.Vector2, bool) {
	toP := rl.Vector2Subtract(p, f.cam)
	d := rl.Vector2Length(toP)
	n := rl.Vector2Normalize(toP)

	angle := float32(math.Atan2(
		float64(n.X*f.dir.Y-n.Y*f.dir.X),
		float64(rl.Vector2DotProduct(n, f.dir)),
	))

	x := int(float32(f.width/2) - float32(math.Tan(float64(angle)))*f.near)
	lh := lineHeight(f.height, 1, d, angle, r.opts.WorldUnitScale)
	y := f.height/2 + lh/2
	if kind == ceilingPlane {
		y = f.height/2 - lh/2
	}
	return rl.NewVector2(float32(x), float32(y)), math.Abs(float64(angle)) < math.Pi/2
}

// drawPlanes draws the floor and ceiling of cell (x, y) at the LOD its distance calls for.
func (r *Renderer) drawPlanes(s Surface, f *frame, x, y int, cellSize float32) int {
	origin := rl.NewVector2(float32(x)*cellSize, float32(y)*cellSize)
	mid := rl.Vector2AddValue(origin, cellSize/2)
	d := rl.Vector2Distance(mid, f.cam)

	level, ok := r.opts.lodFor(d)
	if !ok {
		return 0
	}

	tint := r.shade(d)
	drawn := 0
	for _, layer := range [...]struct {
		name string
		kind planeKind
	}{
		{r.opts.FloorTexture, floorPlane},
		{r.opts.CeilingTexture, ceilingPlane},
	} {
		if layer.name == "" {
			continue
		}
		tex, ok := r.textures.Texture(layer.name)
		if !ok {
			continue
		}
		for _, p := range r.planes[level] {
			if r.drawPlane(s, f, tex, p, origin, cellSize, layer.kind, tint) {
				drawn++
			}
		}
	}
	return drawn
}

func (r *Renderer) drawPlane(s Surface, f *frame, tex Texture, p uvPlane, origin rl.Vector2, cellSize float32, kind planeKind, tint rl.Color) bool {
	uvs := [4]rl.Vector2{
		p.uv0,
		rl.NewVector2(p.uv1.X, p.uv0.Y),
		p.uv1,
		rl.NewVector2(p.uv0.X, p.uv1.Y),
	}

	var quad [4]QuadVertex
	visible := false
	for i, c := range p.corners {
		pos, front := r.worldToScreen(f, rl.Vector2Add(origin, rl.Vector2Scale(c, cellSize)), kind)
		visible = visible || front
		quad[i] = QuadVertex{Position: pos, UV: uvs[i]}
	}
	if !visible {
		return false
	}
	s.DrawQuad(tex, quad, tint)
	return true
}
