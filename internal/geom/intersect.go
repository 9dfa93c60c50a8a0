package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PointTolerance is how close a point must be to a segment to count as touching it.
const PointTolerance = 0.1

// RayHit describes where a ray meets a segment.
type RayHit struct {
	Point    rl.Vector2
	U        float32 // position along the segment, 0 at start and 1 at end
	Distance float32 // distance from the ray origin to Point
}

// IntersectRay intersects the ray origin + t*dir (t >= 0) with seg.
func IntersectRay(origin, dir rl.Vector2, seg *Segment) (RayHit, bool) {
	return IntersectRayLine(origin, dir, seg.start, seg.end)
}

// IntersectRayLine intersects a ray with the segment a-b.
func IntersectRayLine(origin, dir, a, b rl.Vector2) (RayHit, bool) {
	v1 := rl.Vector2Subtract(origin, a)
	v2 := rl.Vector2Subtract(b, a)
	v3 := rl.NewVector2(-dir.Y, dir.X)

	det := rl.Vector2DotProduct(v2, v3)
	if abs(det) < Epsilon {
		return RayHit{}, false
	}

	t := cross(v2, v1) / det
	u := rl.Vector2DotProduct(v1, v3) / det
	if t < 0 || u < 0 || u > 1 {
		return RayHit{}, false
	}

	return RayHit{
		Point:    rl.Vector2Add(origin, rl.Vector2Scale(dir, t)),
		U:        u,
		Distance: t * rl.Vector2Length(dir),
	}, true
}

// IntersectRayCircle returns the first point where the ray enters the circle, or where it
// leaves it when the origin is inside.
func IntersectRayCircle(origin, dir, center rl.Vector2, radius float32) (rl.Vector2, float32, bool) {
	dirLen := rl.Vector2Length(dir)
	if dirLen < Epsilon {
		return rl.Vector2{}, 0, false
	}
	d := rl.Vector2Scale(dir, 1/dirLen)
	oc := rl.Vector2Subtract(origin, center)
	b := rl.Vector2DotProduct(oc, d)
	c := rl.Vector2DotProduct(oc, oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return rl.Vector2{}, 0, false
	}
	root := sqrt(disc)
	t := -b - root
	if t < 0 {
		t = -b + root
	}
	if t < 0 {
		return rl.Vector2{}, 0, false
	}
	return rl.Vector2Add(origin, rl.Vector2Scale(d, t)), t, true
}

// IntersectRayRect is a slab test against an axis-aligned rectangle.
func IntersectRayRect(origin, dir rl.Vector2, r Rect) (rl.Vector2, float32, bool) {
	dirLen := rl.Vector2Length(dir)
	if dirLen < Epsilon {
		return rl.Vector2{}, 0, false
	}
	d := rl.Vector2Scale(dir, 1/dirLen)

	tMin := float32(math.Inf(-1))
	tMax := float32(math.Inf(1))
	lo := r.Min()
	hi := r.Max()
	for _, axis := range [2]struct{ o, d, lo, hi float32 }{
		{origin.X, d.X, lo.X, hi.X},
		{origin.Y, d.Y, lo.Y, hi.Y},
	} {
		if abs(axis.d) < Epsilon {
			if axis.o < axis.lo || axis.o > axis.hi {
				return rl.Vector2{}, 0, false
			}
			continue
		}
		t1 := (axis.lo - axis.o) / axis.d
		t2 := (axis.hi - axis.o) / axis.d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
		if tMin > tMax {
			return rl.Vector2{}, 0, false
		}
	}

	t := tMin
	if t < 0 {
		t = tMax
	}
	if t < 0 {
		return rl.Vector2{}, 0, false
	}
	return rl.Vector2Add(origin, rl.Vector2Scale(d, t)), t, true
}

// Every routine below returns a penetration vector: the displacement to apply to the first
// shape so that it no longer overlaps the second. Swapping the arguments negates the vector.

// CircleCircle tests two circles.
func CircleCircle(ca rl.Vector2, ra float32, cb rl.Vector2, rb float32) (rl.Vector2, bool) {
	d := rl.Vector2Subtract(ca, cb)
	dist := rl.Vector2Length(d)
	depth := ra + rb - dist
	if depth <= 0 {
		return rl.Vector2{}, false
	}
	if dist < Epsilon {
		return rl.NewVector2(depth, 0), true
	}
	return rl.Vector2Scale(d, depth/dist), true
}

// CirclePoint tests a circle against a single point.
func CirclePoint(c rl.Vector2, r float32, p rl.Vector2) (rl.Vector2, bool) {
	return CircleCircle(c, r, p, 0)
}

// CircleRect tests a circle against an axis-aligned rectangle.
func CircleRect(c rl.Vector2, radius float32, r Rect) (rl.Vector2, bool) {
	lo, hi := r.Min(), r.Max()
	closest := rl.NewVector2(Clamp(c.X, lo.X, hi.X), Clamp(c.Y, lo.Y, hi.Y))
	d := rl.Vector2Subtract(c, closest)
	dist := rl.Vector2Length(d)

	if dist >= Epsilon {
		if dist >= radius {
			return rl.Vector2{}, false
		}
		return rl.Vector2Scale(d, (radius-dist)/dist), true
	}

	// Center inside the rectangle: leave through the nearest edge.
	push, _ := exitRect(c, r)
	l := rl.Vector2Length(push)
	if l < Epsilon {
		return rl.NewVector2(radius, 0), true
	}
	return rl.Vector2Scale(push, (l+radius)/l), true
}

// RectPoint tests a rectangle against a point.
func RectPoint(r Rect, p rl.Vector2) (rl.Vector2, bool) {
	if !r.Contains(p) {
		return rl.Vector2{}, false
	}
	push, _ := exitRect(p, r)
	// Moving the point by push would take it out; the rectangle moves the other way.
	return rl.Vector2Negate(push), true
}

// exitRect returns the shortest axis move that takes p out of r.
func exitRect(p rl.Vector2, r Rect) (rl.Vector2, float32) {
	lo, hi := r.Min(), r.Max()
	candidates := [4]rl.Vector2{
		{X: lo.X - p.X},
		{X: hi.X - p.X},
		{Y: lo.Y - p.Y},
		{Y: hi.Y - p.Y},
	}
	best := candidates[0]
	bestLen := abs(best.X)
	for _, c := range candidates[1:] {
		l := abs(c.X) + abs(c.Y)
		if l < bestLen {
			best, bestLen = c, l
		}
	}
	return best, bestLen
}

// RectRect tests two axis-aligned rectangles.
func RectRect(a, b Rect) (rl.Vector2, bool) {
	ca, cb := a.Corners(), b.Corners()
	return separate(ca[:], cb[:], rectAxes[:])
}

var rectAxes = [2]rl.Vector2{{X: 1}, {Y: 1}}

// SegmentCircle tests a segment against a circle.
func SegmentCircle(s *Segment, c rl.Vector2, radius float32) (rl.Vector2, bool) {
	if s.length < Epsilon {
		push, ok := CirclePoint(c, radius, s.start)
		return rl.Vector2Negate(push), ok
	}

	dir := s.Direction()
	t := Clamp(rl.Vector2DotProduct(rl.Vector2Subtract(c, s.start), dir)/(s.length*s.length), 0, 1)
	closest := rl.Vector2Add(s.start, rl.Vector2Scale(dir, t))

	toClosest := rl.Vector2Subtract(closest, c)
	dist := rl.Vector2Length(toClosest)
	if dist > radius {
		return rl.Vector2{}, false
	}

	normal := s.Normal()
	var through rl.Vector2
	if dist < Epsilon {
		through = rl.Vector2Add(c, rl.Vector2Scale(normal, radius))
	} else {
		through = rl.Vector2Add(c, rl.Vector2Scale(toClosest, radius/dist))
	}

	out := rl.Vector2Subtract(through, closest)
	push := rl.Vector2Scale(normal, rl.Vector2DotProduct(out, normal))
	if rl.Vector2Length(push) < Epsilon {
		// Circle sits past an end cap, so the normal carries nothing.
		push = out
	}
	return push, true
}

// SegmentPoint tests whether p lies on the segment within PointTolerance.
func SegmentPoint(s *Segment, p rl.Vector2) (rl.Vector2, bool) {
	d1 := rl.Vector2Distance(p, s.start)
	d2 := rl.Vector2Distance(p, s.end)
	if d1+d2 < s.length-PointTolerance || d1+d2 > s.length+PointTolerance {
		return rl.Vector2{}, false
	}
	normal := s.Normal()
	side := rl.Vector2DotProduct(rl.Vector2Subtract(p, s.start), normal)
	depth := PointTolerance - abs(side)
	if side >= 0 {
		return rl.Vector2Scale(normal, -depth), true
	}
	return rl.Vector2Scale(normal, depth), true
}

// SegmentSegment tests two segments.
func SegmentSegment(a, b *Segment) (rl.Vector2, bool) {
	if _, ok := segmentsCross(a, b); !ok {
		return rl.Vector2{}, false
	}
	pa := [2]rl.Vector2{a.start, a.end}
	pb := [2]rl.Vector2{b.start, b.end}
	axes := [4]rl.Vector2{a.Normal(), b.Normal(), unit(a.Direction()), unit(b.Direction())}
	push, ok := separate(pa[:], pb[:], axes[:])
	if !ok {
		// Crossing at a single point with no measurable overlap.
		return touchPush(a, b), true
	}
	return push, true
}

// touchPush nudges a away from b along the normal of whichever segment orders first, so that
// swapping the arguments only flips the sign. Coincident segments get no push.
func touchPush(a, b *Segment) rl.Vector2 {
	switch compareSegments(a, b) {
	case -1:
		return rl.Vector2Scale(a.Normal(), -PointTolerance)
	case 1:
		return rl.Vector2Scale(b.Normal(), PointTolerance)
	}
	return rl.Vector2{}
}

// compareSegments orders segments by start then end point, X before Y.
func compareSegments(a, b *Segment) int {
	ka := [4]float32{a.start.X, a.start.Y, a.end.X, a.end.Y}
	kb := [4]float32{b.start.X, b.start.Y, b.end.X, b.end.Y}
	for i := range ka {
		switch {
		case ka[i] < kb[i]:
			return -1
		case ka[i] > kb[i]:
			return 1
		}
	}
	return 0
}

// segmentsCross returns the crossing point of two segments, if any.
func segmentsCross(a, b *Segment) (rl.Vector2, bool) {
	r := a.Direction()
	s := b.Direction()
	denom := cross(r, s)
	if abs(denom) < Epsilon {
		// Parallel: overlapping only when collinear and the projections meet.
		qp := rl.Vector2Subtract(b.start, a.start)
		if abs(cross(qp, r)) >= Epsilon {
			return rl.Vector2{}, false
		}
		rr := rl.Vector2DotProduct(r, r)
		if rr < Epsilon {
			return rl.Vector2{}, false
		}
		t0 := rl.Vector2DotProduct(qp, r) / rr
		t1 := t0 + rl.Vector2DotProduct(s, r)/rr
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t1 < 0 || t0 > 1 {
			return rl.Vector2{}, false
		}
		return a.PointAt(Clamp(t0, 0, 1)), true
	}
	qp := rl.Vector2Subtract(b.start, a.start)
	uA := cross(qp, s) / denom
	uB := cross(qp, r) / denom
	if uA < 0 || uA > 1 || uB < 0 || uB > 1 {
		return rl.Vector2{}, false
	}
	return a.PointAt(uA), true
}

// SegmentRect tests a segment against an axis-aligned rectangle.
func SegmentRect(s *Segment, r Rect) (rl.Vector2, bool) {
	if !segmentTouchesRect(s, r) {
		return rl.Vector2{}, false
	}
	pts := [2]rl.Vector2{s.start, s.end}
	axes := [4]rl.Vector2{rectAxes[0], rectAxes[1], s.Normal(), unit(s.Direction())}
	rc := r.Corners()
	push, ok := separate(pts[:], rc[:], axes[:])
	if !ok {
		return rl.Vector2Scale(s.Normal(), PointTolerance), true
	}
	return push, true
}

func segmentTouchesRect(s *Segment, r Rect) bool {
	if r.Contains(s.start) || r.Contains(s.end) {
		return true
	}
	c := r.Corners()
	for i := range c {
		edge := NewSegmentBetween(c[i], c[(i+1)%4])
		if _, ok := segmentsCross(s, edge); ok {
			return true
		}
	}
	return false
}

// separate runs a separating-axis test over the given axes and returns the smallest move of the
// first point set that separates it from the second. Both sets are treated as convex hulls.
func separate(a, b []rl.Vector2, axes []rl.Vector2) (rl.Vector2, bool) {
	var best rl.Vector2
	bestDepth := float32(math.MaxFloat32)
	found := false

	for _, axis := range axes {
		if rl.Vector2Length(axis) < Epsilon {
			continue
		}
		aMin, aMax := project(a, axis)
		bMin, bMax := project(b, axis)
		if aMax < bMin || bMax < aMin {
			return rl.Vector2{}, false
		}
		// Either direction separates; pick the cheaper one.
		pushPos := bMax - aMin
		pushNeg := aMax - bMin
		depth, sign := pushPos, float32(1)
		if pushNeg < pushPos {
			depth, sign = pushNeg, -1
		}
		if depth < bestDepth {
			bestDepth = depth
			best = rl.Vector2Scale(axis, depth*sign)
			found = true
		}
	}
	if !found || bestDepth < Epsilon {
		return rl.Vector2{}, false
	}
	return best, true
}

func project(pts []rl.Vector2, axis rl.Vector2) (float32, float32) {
	lo := float32(math.MaxFloat32)
	hi := float32(-math.MaxFloat32)
	for _, p := range pts {
		v := rl.Vector2DotProduct(p, axis)
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func unit(v rl.Vector2) rl.Vector2 {
	l := rl.Vector2Length(v)
	if l < Epsilon {
		return rl.Vector2{}
	}
	return rl.Vector2Scale(v, 1/l)
}
