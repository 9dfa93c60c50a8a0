package engine

import (
	"math"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

// Transform is a position on the ground plane plus a heading in degrees.
type Transform struct {
	Position rl.Vector2
	Rotation float32
	Scale    rl.Vector2
}

func (t *Transform) Translate(dx, dy float32) {
	t.Position.X += dx
	t.Position.Y += dy
}

func (t *Transform) Rotate(deg float32) {
	t.Rotation = float32(math.Mod(float64(t.Rotation+deg), 360))
}

// Forward is the unit heading vector (cos, sin) of Rotation.
func (t *Transform) Forward() rl.Vector2 {
	rad := float64(t.Rotation) * math.Pi / 180
	return rl.NewVector2(float32(math.Cos(rad)), float32(math.Sin(rad)))
}

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	components []Component
	started    bool
	destroyed  bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Scale: rl.Vector2{X: 1, Y: 1},
		},
		components: make([]Component, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
	if g.started {
		c.Start()
	}
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active || g.destroyed {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

// Position and SetPosition let tweens drive the object directly.
func (g *GameObject) Position() rl.Vector2 {
	return g.Transform.Position
}

func (g *GameObject) SetPosition(p rl.Vector2) {
	g.Transform.Position = p
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Destroy flags the object for removal. Physics still delivers exit callbacks for it on the next
// tick and the scene drops it on the following Reap.
func (g *GameObject) Destroy() {
	g.destroyed = true
}

func (g *GameObject) ToBeDestroyed() bool {
	return g.destroyed
}

func (g *GameObject) String() string {
	return g.Name
}
