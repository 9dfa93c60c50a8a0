package physics

import (
	"doomcast/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeSegment
	ShapeRect
	shapeKindCount
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeSegment:
		return "segment"
	case ShapeRect:
		return "rect"
	}
	return "unknown"
}

// Collider is one shape attached to a body. Only the fields for its Kind are meaningful.
// Offset is relative to the owning GameObject's position.
type Collider struct {
	Kind   ShapeKind
	Offset rl.Vector2

	Radius  float32       // circle
	Size    rl.Vector2    // rect, width and height
	Segment *geom.Segment // segment

	// FollowBody moves the wrapped segment with the body. Walls and doors share their segment with
	// the renderer, so moving the body moves what is drawn. The offset is taken from wherever the
	// segment sits the first time the body is placed.
	FollowBody bool

	anchored bool
	center   rl.Vector2
	bounds   geom.Rect
}

func NewCircleCollider(offset rl.Vector2, radius float32) *Collider {
	return &Collider{Kind: ShapeCircle, Offset: offset, Radius: radius}
}

func NewRectCollider(offset, size rl.Vector2) *Collider {
	return &Collider{Kind: ShapeRect, Offset: offset, Size: size}
}

func NewSegmentCollider(seg *geom.Segment) *Collider {
	c := &Collider{Kind: ShapeSegment, Segment: seg, FollowBody: true}
	c.center = seg.Position()
	c.bounds = seg.Bounds()
	return c
}

// recalculate places the collider relative to origin and refreshes its bounds.
func (c *Collider) recalculate(origin rl.Vector2) {
	c.center = rl.Vector2Add(origin, c.Offset)
	switch c.Kind {
	case ShapeCircle:
		c.bounds = geom.RectFromCenter(c.center, c.Radius*2, c.Radius*2)
	case ShapeRect:
		c.bounds = geom.RectFromCenter(c.center, c.Size.X, c.Size.Y)
	case ShapeSegment:
		if c.FollowBody {
			if !c.anchored {
				c.Offset = rl.Vector2Subtract(c.Segment.Position(), origin)
				c.center = c.Segment.Position()
				c.anchored = true
			}
			c.Segment.SetPosition(c.center)
		} else {
			c.center = c.Segment.Position()
		}
		c.bounds = c.Segment.Bounds()
	}
}

func (c *Collider) Center() rl.Vector2 { return c.center }

// Bounds is the cached axis-aligned box used by the broad phase.
func (c *Collider) Bounds() geom.Rect { return c.bounds }

func (c *Collider) rect() geom.Rect {
	return geom.RectFromCenter(c.center, c.Size.X, c.Size.Y)
}

// Collide returns the displacement that moves c out of other.
func (c *Collider) Collide(other *Collider) (rl.Vector2, bool) {
	return dispatch[c.Kind][other.Kind](c, other)
}

// Ray intersects the collider with origin + t*dir, t >= 0.
func (c *Collider) Ray(origin, dir rl.Vector2) (rl.Vector2, bool) {
	switch c.Kind {
	case ShapeCircle:
		p, _, ok := geom.IntersectRayCircle(origin, dir, c.center, c.Radius)
		return p, ok
	case ShapeRect:
		p, _, ok := geom.IntersectRayRect(origin, dir, c.rect())
		return p, ok
	case ShapeSegment:
		hit, ok := geom.IntersectRay(origin, dir, c.Segment)
		return hit.Point, ok
	}
	return rl.Vector2{}, false
}
