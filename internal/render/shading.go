package render

import (
	"doomcast/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// shade returns the tint for a surface d units from the camera. Without fog everything is
// drawn at full brightness.
func (r *Renderer) shade(d float32) rl.Color {
	fog := r.opts.Fog
	if !fog.Enabled || fog.End <= fog.Start {
		return rl.White
	}
	t := geom.Clamp((d-fog.Start)/(fog.End-fog.Start), 0, 1)
	if t == 0 {
		return rl.White
	}

	c := white.BlendLab(r.fogTarget, float64(t)).Clamped()
	red, green, blue := c.RGB255()
	return rl.NewColor(red, green, blue, 255)
}

func fogTarget(c rl.Color) colorful.Color {
	target, ok := colorful.MakeColor(c)
	if !ok {
		return colorful.Color{}
	}
	return target
}
