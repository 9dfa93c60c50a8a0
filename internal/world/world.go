// Package world ties the scene, the collision engine, the renderer, the task scheduler and audio
// into one running game world.
package world

import (
	"log"
	"time"

	"doomcast/internal/audio"
	"doomcast/internal/camera"
	"doomcast/internal/components"
	"doomcast/internal/engine"
	"doomcast/internal/physics"
	"doomcast/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SoundSource resolves sound names. The asset manager implements it.
type SoundSource interface {
	Sound(name string) (rl.Sound, bool)
}

// Options are the collaborators a World is built from. Every field but Physics and Render may be
// left zero.
type Options struct {
	Physics  physics.Config
	Render   render.Options
	Clock    physics.Clock
	Textures render.TextureSource
	Sounds   SoundSource
	Audio    *audio.Manager

	// Input steers the player camera. Fire and Launch poll the player's shooter. Nil disables them.
	Input  camera.Input
	Fire   func() bool
	Launch func() bool
}

// World implements engine.WorldAccess for the objects in its scene.
type World struct {
	Scene     *engine.Scene
	Physics   *physics.PhysicsWorld
	Renderer  *render.Renderer
	Audio     *audio.Manager
	Player    *engine.GameObject
	Camera    *camera.Camera
	Level     string

	scheduler *engine.Scheduler
	clock     physics.Clock
	sounds    SoundSource
	ticks     int

	input        camera.Input
	fire, launch func() bool
}

func New(opts Options) *World {
	clock := opts.Clock
	if clock == nil {
		clock = physics.NewSystemClock()
	}
	w := &World{
		Scene:     engine.NewScene("Main"),
		Physics:   physics.NewPhysicsWorld(opts.Physics, clock),
		Renderer:  render.New(opts.Render, opts.Textures),
		Audio:     opts.Audio,
		scheduler: engine.NewScheduler(),
		clock:     clock,
		sounds:    opts.Sounds,
		input:     opts.Input,
		fire:      opts.Fire,
		launch:    opts.Launch,
	}
	w.Scene.World = w
	return w
}

func (w *World) Scheduler() *engine.Scheduler { return w.scheduler }

func (w *World) Now() time.Duration { return w.clock.Now() }

// PhysicsTicks counts the physics ticks that ran since the world was created.
func (w *World) PhysicsTicks() int { return w.ticks }

// Spawn adds g to the scene, registers its body and render geometry and starts it.
func (w *World) Spawn(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	w.register(g)
	g.Start()
}

func (w *World) register(g *engine.GameObject) {
	for _, c := range g.Components() {
		switch c := c.(type) {
		case *physics.Body:
			w.Physics.AddBody(c)
		case *components.SegmentRenderer:
			w.Renderer.AddSegment(c.Segment)
		case *components.Sprite:
			w.Renderer.AddBillboard(c.Billboard)
		}
	}
}

func (w *World) unregister(g *engine.GameObject) {
	for _, c := range g.Components() {
		switch c := c.(type) {
		case *physics.Body:
			w.Physics.RemoveBody(c)
		case *components.SegmentRenderer:
			w.Renderer.RemoveSegment(c.Segment)
		case *components.Sprite:
			w.Renderer.RemoveBillboard(c.Billboard)
			if a := c.Animator(); a != nil {
				a.Stop()
			}
		case *components.Patrol:
			c.Stop()
		}
	}
}

// SetPlayer makes g the object the view and the audio listener follow. g should carry a
// camera.Camera.
func (w *World) SetPlayer(g *engine.GameObject) {
	w.Player = g
	w.Camera = engine.GetComponent[*camera.Camera](g)
	if w.Camera != nil {
		w.Renderer.SetCamera(w.Camera)
	}
}

// PlaySound plays a named sound at a world position. Unknown names and a missing audio manager
// are ignored.
func (w *World) PlaySound(name string, pos rl.Vector2) {
	if w.Audio == nil || w.sounds == nil {
		return
	}
	s, ok := w.sounds.Sound(name)
	if !ok {
		return
	}
	w.Audio.PlayAt(s, pos)
}

// RayCast returns the closest hit of a physics ray.
func (w *World) RayCast(origin, dir rl.Vector2, ignoreLayers ...int) (engine.RayHit, bool) {
	hit, ok := physics.Closest(w.Physics.RayCast(origin, dir, ignoreLayers...))
	if !ok {
		return engine.RayHit{}, false
	}
	return engine.RayHit{GameObject: hit.GameObject, Point: hit.Point, Distance: hit.Distance}, true
}

// Update advances one frame: components, then physics if a tick is due, then tasks, then the
// removal of destroyed objects. Physics runs on its own fixed cadence and may skip frames.
func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
	if w.Physics.Update() {
		w.ticks++
	}
	w.scheduler.Tick(w.clock.Now())

	for _, g := range w.Scene.Reap() {
		w.unregister(g)
	}

	if w.Audio != nil {
		if w.Camera != nil {
			w.Audio.SetListener(w.Camera.Position(), w.Camera.Direction())
		}
		w.Audio.Update()
	}
}

// Draw renders the first-person view.
func (w *World) Draw(s render.Surface) {
	w.Renderer.DrawScene(s)
}

// DrawMap renders the top-down debug view.
func (w *World) DrawMap(s render.Surface, pixelsPerCell float32) {
	w.Renderer.DrawDebugGrid(s, pixelsPerCell)
}

// Clear drops every object, body and task. Static level geometry is released too.
func (w *World) Clear() {
	for _, g := range w.Scene.GameObjects {
		w.unregister(g)
	}
	w.Scene = engine.NewScene("Main")
	w.Scene.World = w
	w.scheduler.Clear()
	w.Renderer.SetStaticGrid(nil)
	w.Player, w.Camera = nil, nil
	w.Renderer.SetCamera(nil)
	log.Println("World: cleared")
}
