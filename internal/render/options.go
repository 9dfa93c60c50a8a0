package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// LOD levels for floor and ceiling planes, from the most to the least subdivided.
const (
	LODHigh = iota // 8x8
	LODMid         // 4x4
	LODLow         // 2x2
	LODFar         // 1x1
	lodCount
)

// Fog tints surfaces toward Color between Start and End world units from the camera.
type Fog struct {
	Enabled bool
	Color   rl.Color
	Start   float32
	End     float32
}

type Options struct {
	FOV                 float32 // degrees
	RenderDistance      float32
	WorldUnitScale      float32
	MaxTransparentDepth int

	// LODCutoffs are the distances below which a cell uses LODHigh, LODMid and LODLow. Cells
	// farther than the last entry get no floor or ceiling at all.
	LODCutoffs [lodCount]float32

	FloorTexture   string
	CeilingTexture string

	CeilingColor rl.Color
	FloorColor   rl.Color

	Fog Fog

	// Workers caps the goroutines used by the column pass. Zero means GOMAXPROCS.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		FOV:                 60,
		RenderDistance:      5000,
		WorldUnitScale:      100,
		MaxTransparentDepth: 10,
		LODCutoffs:          [lodCount]float32{300, 1000, 2000, 5000},
		CeilingColor:        rl.NewColor(50, 50, 50, 255),
		FloorColor:          rl.NewColor(30, 35, 30, 255),
		Fog: Fog{
			Color: rl.NewColor(20, 20, 24, 255),
			Start: 400,
			End:   3000,
		},
	}
}

// lodFor picks the plane subdivision for a cell whose center is d units away.
func (o *Options) lodFor(d float32) (int, bool) {
	if d > o.LODCutoffs[LODFar] {
		return 0, false
	}
	for level := LODHigh; level < LODFar; level++ {
		if d < o.LODCutoffs[level] {
			return level, true
		}
	}
	return LODFar, true
}
