package engine

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RayHit is the closest object a world ray cast reached.
type RayHit struct {
	GameObject *GameObject
	Point      rl.Vector2
	Distance   float32
}

// WorldAccess is the part of the running world that components may use. Scene.World is nil
// until a world adopts the scene.
type WorldAccess interface {
	Scheduler() *Scheduler
	Now() time.Duration
	Spawn(g *GameObject)
	PlaySound(name string, pos rl.Vector2)
	RayCast(origin, dir rl.Vector2, ignoreLayers ...int) (RayHit, bool)
}
