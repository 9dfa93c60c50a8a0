package components

import (
	"doomcast/internal/engine"
)

// Pickup disappears when something tagged Collector touches it. Pair it with a PassThrough
// body so it never blocks movement.
type Pickup struct {
	engine.BaseComponent

	Collector string
	Sound     string

	Collected engine.EventWithArg[*engine.GameObject]
}

func NewPickup() *Pickup {
	return &Pickup{Collector: "player"}
}

func (p *Pickup) OnCollisionEnter(other *engine.GameObject) {
	g := p.GetGameObject()
	if other == nil || g == nil || g.ToBeDestroyed() || !other.HasTag(p.Collector) {
		return
	}
	if w := worldOf(p); w != nil && p.Sound != "" {
		w.PlaySound(p.Sound, g.Transform.Position)
	}
	p.Collected.Invoke(other)
	g.Destroy()
}

func (p *Pickup) OnCollisionExit(other *engine.GameObject) {}
