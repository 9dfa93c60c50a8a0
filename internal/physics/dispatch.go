package physics

import (
	"doomcast/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type intersectFunc func(a, b *Collider) (rl.Vector2, bool)

// dispatch holds one routine for every ordered shape pair. Entries below the diagonal reuse the
// routine above it with the result negated, so swapping arguments only flips the sign.
var dispatch = [shapeKindCount][shapeKindCount]intersectFunc{
	ShapeCircle: {
		ShapeCircle:  circleCircle,
		ShapeSegment: flip(segmentCircle),
		ShapeRect:    circleRect,
	},
	ShapeSegment: {
		ShapeCircle:  segmentCircle,
		ShapeSegment: segmentSegment,
		ShapeRect:    segmentRect,
	},
	ShapeRect: {
		ShapeCircle:  flip(circleRect),
		ShapeSegment: flip(segmentRect),
		ShapeRect:    rectRect,
	},
}

func flip(fn intersectFunc) intersectFunc {
	return func(a, b *Collider) (rl.Vector2, bool) {
		v, ok := fn(b, a)
		return rl.Vector2Negate(v), ok
	}
}

func circleCircle(a, b *Collider) (rl.Vector2, bool) {
	return geom.CircleCircle(a.center, a.Radius, b.center, b.Radius)
}

func circleRect(a, b *Collider) (rl.Vector2, bool) {
	return geom.CircleRect(a.center, a.Radius, b.rect())
}

func segmentCircle(a, b *Collider) (rl.Vector2, bool) {
	return geom.SegmentCircle(a.Segment, b.center, b.Radius)
}

func segmentSegment(a, b *Collider) (rl.Vector2, bool) {
	return geom.SegmentSegment(a.Segment, b.Segment)
}

func segmentRect(a, b *Collider) (rl.Vector2, bool) {
	return geom.SegmentRect(a.Segment, b.rect())
}

func rectRect(a, b *Collider) (rl.Vector2, bool) {
	return geom.RectRect(a.rect(), b.rect())
}
