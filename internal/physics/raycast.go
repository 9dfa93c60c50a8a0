package physics

import (
	"doomcast/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Body       *Body
	GameObject *engine.GameObject
	Point      rl.Vector2
	Distance   float32
}

// RayCast tests every collider of every body not on an ignored layer and returns all hits in
// registration order. A body with several colliders can appear more than once.
func (p *PhysicsWorld) RayCast(origin, dir rl.Vector2, ignoreLayers ...int) []RaycastHit {
	var hits []RaycastHit
	for _, b := range p.bodies {
		if ignored(b.Layer, ignoreLayers) {
			continue
		}
		for _, c := range b.colliders {
			point, ok := c.Ray(origin, dir)
			if !ok {
				continue
			}
			hits = append(hits, RaycastHit{
				Body:       b,
				GameObject: b.GetGameObject(),
				Point:      point,
				Distance:   rl.Vector2Distance(origin, point),
			})
		}
	}
	return hits
}

// Closest returns the hit nearest the ray origin.
func Closest(hits []RaycastHit) (RaycastHit, bool) {
	if len(hits) == 0 {
		return RaycastHit{}, false
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if h.Distance < best.Distance {
			best = h
		}
	}
	return best, true
}

func ignored(layer int, layers []int) bool {
	for _, l := range layers {
		if l == layer {
			return true
		}
	}
	return false
}
