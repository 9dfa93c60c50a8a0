package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// WrapMode controls how a texture is laid out along a segment.
type WrapMode int

const (
	// WrapLocal repeats the texture WrapValue times across the whole segment.
	WrapLocal WrapMode = iota
	// WrapWorld repeats the texture every WrapValue world units.
	WrapWorld
	// WrapSpritesheet samples a fixed cutout of the texture and ignores WrapValue.
	WrapSpritesheet
)

func (m WrapMode) String() string {
	switch m {
	case WrapLocal:
		return "local"
	case WrapWorld:
		return "world"
	case WrapSpritesheet:
		return "spritesheet"
	}
	return "unknown"
}

// ParseWrapMode maps a level-file name to a WrapMode. Unknown names fall back to WrapWorld.
func ParseWrapMode(name string) WrapMode {
	switch name {
	case "local":
		return WrapLocal
	case "spritesheet":
		return WrapSpritesheet
	}
	return WrapWorld
}

// Segment is an oriented 2D line defined by a center, a rotation in degrees and a width.
//
// The endpoints and length are derived from those three values and are refreshed by every
// mutator, so reads never observe stale geometry. Reads are safe from many goroutines as long
// as nobody mutates the segment at the same time.
type Segment struct {
	position rl.Vector2
	rotation float32
	width    float32

	start  rl.Vector2
	end    rl.Vector2
	length float32

	Height       float32 // vertical extent, 1 is a full wall
	OffsetY      float32 // vertical screen offset as a fraction of the projected height
	Transparent  bool
	Texture      string
	Wrap         WrapMode
	WrapValue    float32
	CutoutOffset rl.Vector2 // spritesheet only, in pixels
	CutoutSize   rl.Vector2 // spritesheet only, in pixels
}

// NewSegment creates a segment centered on pos.
func NewSegment(pos rl.Vector2, rotation, width float32) *Segment {
	s := &Segment{
		position:   pos,
		rotation:   rotation,
		width:      width,
		Height:     1,
		Wrap:       WrapWorld,
		WrapValue:  100,
		CutoutSize: rl.NewVector2(100, 100),
	}
	s.refresh()
	return s
}

// NewSegmentBetween creates a segment whose endpoints are a and b.
func NewSegmentBetween(a, b rl.Vector2) *Segment {
	d := rl.Vector2Subtract(b, a)
	center := rl.Vector2Add(a, rl.Vector2Scale(d, 0.5))
	rotation := RadToDeg(float32(-math.Atan2(float64(d.Y), float64(d.X))))
	return NewSegment(center, rotation, rl.Vector2Length(d))
}

func (s *Segment) refresh() {
	angle := float64(DegToRad(s.rotation))
	hw := s.width / 2
	c := float32(math.Cos(angle)) * hw
	sn := float32(math.Sin(angle)) * hw
	s.start = rl.NewVector2(s.position.X-c, s.position.Y+sn)
	s.end = rl.NewVector2(s.position.X+c, s.position.Y-sn)
	s.length = rl.Vector2Distance(s.start, s.end)
}

func (s *Segment) Position() rl.Vector2 { return s.position }
func (s *Segment) Rotation() float32    { return s.rotation }
func (s *Segment) Width() float32       { return s.width }
func (s *Segment) Start() rl.Vector2    { return s.start }
func (s *Segment) End() rl.Vector2      { return s.end }
func (s *Segment) Length() float32      { return s.length }

func (s *Segment) SetPosition(p rl.Vector2) {
	s.position = p
	s.refresh()
}

// Translate moves the segment by d.
func (s *Segment) Translate(d rl.Vector2) {
	s.position = rl.Vector2Add(s.position, d)
	s.refresh()
}

func (s *Segment) SetRotation(deg float32) {
	s.rotation = deg
	s.refresh()
}

func (s *Segment) SetWidth(w float32) {
	s.width = w
	s.refresh()
}

// SetTransform updates position and rotation together with a single refresh.
func (s *Segment) SetTransform(p rl.Vector2, deg float32) {
	s.position = p
	s.rotation = deg
	s.refresh()
}

// Direction returns the unnormalized vector from start to end.
func (s *Segment) Direction() rl.Vector2 {
	return rl.Vector2Subtract(s.end, s.start)
}

// Normal returns the unit normal (dir.Y, -dir.X). Zero-length segments return (0, -1).
func (s *Segment) Normal() rl.Vector2 {
	if s.length < Epsilon {
		return rl.NewVector2(0, -1)
	}
	d := s.Direction()
	return rl.NewVector2(d.Y/s.length, -d.X/s.length)
}

// Midpoint is the center of the segment, equal to its position.
func (s *Segment) Midpoint() rl.Vector2 {
	return rl.Vector2Scale(rl.Vector2Add(s.start, s.end), 0.5)
}

// PointAt returns start + u*(end-start).
func (s *Segment) PointAt(u float32) rl.Vector2 {
	return rl.Vector2Add(s.start, rl.Vector2Scale(s.Direction(), u))
}

// Bounds returns the axis-aligned box spanned by the endpoints.
func (s *Segment) Bounds() Rect {
	minX, maxX := s.start.X, s.end.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := s.start.Y, s.end.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// TextureCoordinate maps the segment parameter u to a texture window. It returns the horizontal
// sample position as a fraction of the texture width, and the vertical start and extent as
// fractions of the texture height.
func (s *Segment) TextureCoordinate(u, textureWidth, textureHeight float32) (uFrac, vStart, vExtent float32) {
	switch s.Wrap {
	case WrapLocal:
		return Frac(u * s.WrapValue), 0, 1
	case WrapSpritesheet:
		if textureWidth <= 0 || textureHeight <= 0 {
			return 0, 0, 1
		}
		t := (1-u)*s.CutoutSize.X/textureWidth + s.CutoutOffset.X/textureWidth
		return Frac(t), s.CutoutOffset.Y / textureHeight, s.CutoutSize.Y / textureHeight
	default:
		repeat := max(0.001, s.WrapValue/max(0.001, s.length))
		return Frac(u / repeat), 0, 1
	}
}
