// Package camera provides the first-person viewpoint, driven by keyboard and mouse.
package camera

import (
	"doomcast/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Intent is one frame of movement input. Forward and Strafe are in [-1, 1], Turn is in degrees.
type Intent struct {
	Forward float32
	Strafe  float32
	Turn    float32
}

// Input produces movement intent for a frame.
type Input interface {
	Read(deltaTime float32) Intent
}

// KeyboardInput reads WASD, the arrow keys and horizontal mouse motion.
type KeyboardInput struct {
	TurnSpeed   float32 // degrees per second for the arrow keys
	MouseFactor float32 // degrees per pixel, 0 disables mouse look
}

func (k KeyboardInput) Read(deltaTime float32) Intent {
	var in Intent
	if rl.IsKeyDown(rl.KeyW) {
		in.Forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Strafe++
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Strafe--
	}
	if rl.IsKeyDown(rl.KeyRight) {
		in.Turn += k.TurnSpeed * deltaTime
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		in.Turn -= k.TurnSpeed * deltaTime
	}
	if k.MouseFactor != 0 && rl.IsCursorHidden() {
		in.Turn += rl.GetMouseDelta().X * k.MouseFactor
	}
	return in
}

// Camera is a component that looks along its GameObject's heading. It implements render.Camera
// and moves the object directly; physics pushes it back out of walls on the next tick.
type Camera struct {
	engine.BaseComponent

	MoveSpeed float32 // world units per second
	Input     Input
	Enabled   bool
}

func New(input Input) *Camera {
	return &Camera{
		MoveSpeed: 250,
		Input:     input,
		Enabled:   true,
	}
}

func (c *Camera) Position() rl.Vector2 {
	if g := c.GetGameObject(); g != nil {
		return g.Transform.Position
	}
	return rl.Vector2{}
}

func (c *Camera) Direction() rl.Vector2 {
	if g := c.GetGameObject(); g != nil {
		return g.Transform.Forward()
	}
	return rl.NewVector2(1, 0)
}

func (c *Camera) Update(deltaTime float32) {
	g := c.GetGameObject()
	if g == nil || c.Input == nil || !c.Enabled {
		return
	}
	c.Apply(c.Input.Read(deltaTime), deltaTime)
}

// Apply turns first, then moves along the new heading. Diagonal movement is normalized.
func (c *Camera) Apply(in Intent, deltaTime float32) {
	g := c.GetGameObject()
	if g == nil {
		return
	}
	if in.Turn != 0 {
		g.Transform.Rotate(in.Turn)
	}

	forward := g.Transform.Forward()
	right := rl.NewVector2(-forward.Y, forward.X)
	move := rl.Vector2Add(rl.Vector2Scale(forward, in.Forward), rl.Vector2Scale(right, in.Strafe))
	if rl.Vector2Length(move) > 1 {
		move = rl.Vector2Normalize(move)
	}
	step := rl.Vector2Scale(move, c.MoveSpeed*deltaTime)
	g.Transform.Translate(step.X, step.Y)
}
