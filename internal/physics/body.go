package physics

import (
	"math"

	"doomcast/internal/engine"
	"doomcast/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Body is the physics component of a GameObject. Forces are displacements per tick: each tick the
// owner is moved by the accumulated force, which then decays by Drag.
type Body struct {
	engine.BaseComponent

	Mass        float32
	Drag        float32
	AngularDrag float32
	MaxForce    float32 // 0 means unlimited
	MaxTorque   float32 // 0 means unlimited
	Kinematic   bool    // never moved by collision resolution
	Layer       int

	UsesGravity        bool
	StopOnCollision    bool
	ReflectOnCollision bool
	ImpartForce        bool
	PassThrough        bool // reports collisions but never resolves them

	id        uint64
	force     rl.Vector2
	torque    float32
	colliders []*Collider
	bounds    geom.Rect
}

func NewBody() *Body {
	return &Body{Mass: 1}
}

func (b *Body) AddCollider(c *Collider) *Collider {
	b.colliders = append(b.colliders, c)
	if parent := b.GetGameObject(); parent != nil {
		b.recalculate()
	}
	return c
}

func (b *Body) AddCircleCollider(offset rl.Vector2, radius float32) *Collider {
	return b.AddCollider(NewCircleCollider(offset, radius))
}

func (b *Body) AddRectCollider(offset, size rl.Vector2) *Collider {
	return b.AddCollider(NewRectCollider(offset, size))
}

func (b *Body) AddSegmentCollider(seg *geom.Segment) *Collider {
	return b.AddCollider(NewSegmentCollider(seg))
}

func (b *Body) Colliders() []*Collider { return b.colliders }

func (b *Body) ClearColliders() {
	b.colliders = nil
	b.bounds = geom.Rect{}
}

// Bounds is the union of every collider's cached bounds.
func (b *Body) Bounds() geom.Rect { return b.bounds }

func (b *Body) Force() rl.Vector2 { return b.force }
func (b *Body) Torque() float32   { return b.torque }

// AddForce adds dir*magnitude to the accumulated force, capped at MaxForce.
func (b *Body) AddForce(dir rl.Vector2, magnitude float32) {
	b.force = rl.Vector2Add(b.force, rl.Vector2Scale(dir, magnitude))
	if b.MaxForce > 0 && rl.Vector2Length(b.force) > b.MaxForce {
		b.force = rl.Vector2Scale(rl.Vector2Normalize(b.force), b.MaxForce)
	}
}

// AddTorque adds rotation in degrees per tick, capped at MaxTorque.
func (b *Body) AddTorque(t float32) {
	b.torque += t
	if b.MaxTorque > 0 {
		b.torque = geom.Clamp(b.torque, -b.MaxTorque, b.MaxTorque)
	}
}

func (b *Body) StopForces() {
	b.force = rl.Vector2{}
	b.torque = 0
}

func (b *Body) ReduceForces(prop float32) {
	b.force = rl.Vector2Scale(b.force, prop)
}

// ImpartForces hands prop of this body's force to other.
func (b *Body) ImpartForces(other *Body, prop float32) {
	other.AddForce(b.force, prop)
}

// ReflectForces mirrors the force about the penetration normal.
func (b *Body) ReflectForces(impulse rl.Vector2) {
	if rl.Vector2Length(impulse) < geom.Epsilon {
		return
	}
	b.force = rl.Vector2Reflect(b.force, rl.Vector2Normalize(impulse))
}

func (b *Body) applyGravity(modifier float32, dir rl.Vector2) {
	b.AddForce(dir, modifier)
}

// integrate moves the owner by one tick of force and torque, then applies drag.
func (b *Body) integrate() {
	parent := b.GetGameObject()
	if parent == nil {
		return
	}

	if b.torque != 0 {
		parent.Transform.Rotate(b.torque)
		sign := float32(math.Copysign(1, float64(b.torque)))
		b.torque -= sign * b.AngularDrag
		if b.torque*sign < 0 {
			b.torque = 0
		}
	}

	parent.Transform.Translate(b.force.X, b.force.Y)
	length := rl.Vector2Length(b.force)
	if length <= b.Drag {
		b.force = rl.Vector2{}
	} else if length > 0 {
		b.force = rl.Vector2Scale(b.force, (length-b.Drag)/length)
	}
}

func (b *Body) recalculate() {
	parent := b.GetGameObject()
	if parent == nil || len(b.colliders) == 0 {
		return
	}
	origin := parent.Transform.Position
	for i, c := range b.colliders {
		c.recalculate(origin)
		if i == 0 {
			b.bounds = c.bounds
			continue
		}
		b.bounds = union(b.bounds, c.bounds)
	}
}

func (b *Body) destroyed() bool {
	parent := b.GetGameObject()
	return parent != nil && parent.ToBeDestroyed()
}

func (b *Body) translate(v rl.Vector2) {
	if parent := b.GetGameObject(); parent != nil {
		parent.Transform.Translate(v.X, v.Y)
	}
}

func (b *Body) String() string {
	if parent := b.GetGameObject(); parent != nil {
		return parent.Name
	}
	return "body"
}

func union(a, b geom.Rect) geom.Rect {
	minX, minY := min(a.X, b.X), min(a.Y, b.Y)
	maxX, maxY := max(a.X+a.Width, b.X+b.Width), max(a.Y+a.Height, b.Y+b.Height)
	return geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
