package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/constraints"
)

// Epsilon is the determinant magnitude below which two lines are treated as parallel.
const Epsilon = 1e-6

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Frac returns the fractional part of v, always in [0, 1).
func Frac[T constraints.Float](v T) T {
	f := v - T(math.Floor(float64(v)))
	if f >= 1 {
		return 0
	}
	return f
}

func DegToRad(deg float32) float32 {
	return deg * math.Pi / 180
}

func RadToDeg(rad float32) float32 {
	return rad * 180 / math.Pi
}

// cross returns the z component of the 3D cross product of a and b.
func cross(a, b rl.Vector2) float32 {
	return a.X*b.Y - a.Y*b.X
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Rect is an axis-aligned rectangle given by its minimum corner and size.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// RectFromCenter builds a rectangle centered on c.
func RectFromCenter(c rl.Vector2, width, height float32) Rect {
	return Rect{X: c.X - width/2, Y: c.Y - height/2, Width: width, Height: height}
}

func (r Rect) Min() rl.Vector2 { return rl.NewVector2(r.X, r.Y) }

func (r Rect) Max() rl.Vector2 { return rl.NewVector2(r.X+r.Width, r.Y+r.Height) }

func (r Rect) Center() rl.Vector2 {
	return rl.NewVector2(r.X+r.Width/2, r.Y+r.Height/2)
}

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p rl.Vector2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Corners returns the corners in winding order starting at the minimum corner.
func (r Rect) Corners() [4]rl.Vector2 {
	return [4]rl.Vector2{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}
