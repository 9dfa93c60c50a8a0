package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Billboard is a segment that is turned every frame to stay perpendicular to the view direction.
type Billboard struct {
	Segment
}

// NewBillboard creates a billboard of the given width. The texture is stretched once across it.
func NewBillboard(pos rl.Vector2, width float32) *Billboard {
	b := &Billboard{Segment: *NewSegment(pos, 0, width)}
	b.Wrap = WrapLocal
	b.WrapValue = 1
	b.Transparent = true
	return b
}

// FacingAngle returns the rotation, in degrees, that makes a segment perpendicular to dir.
func FacingAngle(dir rl.Vector2) float32 {
	return RadToDeg(float32(math.Atan2(float64(dir.X), float64(dir.Y))))
}

// Face rotates the billboard to the given facing angle in degrees.
func (b *Billboard) Face(deg float32) {
	b.SetRotation(deg)
}
