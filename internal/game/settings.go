package game

import (
	"doomcast/internal/config"
	"doomcast/internal/physics"
	"doomcast/internal/render"
	"doomcast/internal/world"
)

// Settings are the values the debug panel edits live.
type Settings struct {
	FOV              float32 `json:"fov"`
	Fog              bool    `json:"fog"`
	FogEnd           float32 `json:"fogEnd"`
	PlaneDistance    float32 `json:"planeDistance"`
	TransparentDepth int     `json:"transparentDepth"`
	Gravity          float32 `json:"gravity"`
	BruteForce       bool    `json:"bruteForce"`
}

func SettingsFromConfig(cfg config.Config) Settings {
	return Settings{
		FOV:              cfg.Render.FOV,
		Fog:              cfg.Render.Fog,
		FogEnd:           cfg.Render.FogEnd,
		PlaneDistance:    cfg.Render.LODCutoffs[render.LODFar],
		TransparentDepth: cfg.Render.MaxTransparentDepth,
		Gravity:          cfg.Physics.GravityModifier,
		BruteForce:       cfg.Physics.BroadPhase == "brute",
	}
}

// Apply pushes the settings into a running world. The other LOD cutoffs are squeezed below
// PlaneDistance so the levels stay ordered.
func (s Settings) Apply(w *world.World) {
	opts := w.Renderer.Options()
	opts.FOV = s.FOV
	opts.Fog.Enabled = s.Fog
	opts.Fog.End = max(s.FogEnd, opts.Fog.Start+1)
	opts.MaxTransparentDepth = s.TransparentDepth
	opts.LODCutoffs[render.LODFar] = s.PlaneDistance
	for i := render.LODFar - 1; i >= 0; i-- {
		opts.LODCutoffs[i] = min(opts.LODCutoffs[i], opts.LODCutoffs[i+1])
	}
	w.Renderer.SetOptions(opts)

	w.Physics.SetGravity(s.Gravity, w.Physics.Config().GravityDir)
	if s.BruteForce {
		w.Physics.SetBroadPhase(physics.BruteForce)
	} else {
		w.Physics.SetBroadPhase(physics.SweepAndPrune)
	}
}
