package components

import (
	"time"

	"doomcast/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Patrol walks its GameObject back and forth between its spawn point and spawn+Offset.
type Patrol struct {
	engine.BaseComponent

	Offset   rl.Vector2
	Duration time.Duration
	Ease     engine.EaseFunc

	legs   int
	handle engine.Handle
	home   rl.Vector2
}

func NewPatrol(offset rl.Vector2, duration time.Duration) *Patrol {
	return &Patrol{Offset: offset, Duration: duration, Ease: engine.Eases["sineInOut"]}
}

func (p *Patrol) Start() {
	g := p.GetGameObject()
	if g == nil {
		return
	}
	p.home = g.Transform.Position
	p.leg(rl.Vector2Add(p.home, p.Offset))
}

// Legs is the number of completed trips in either direction.
func (p *Patrol) Legs() int { return p.legs }

func (p *Patrol) leg(to rl.Vector2) {
	w := worldOf(p)
	g := p.GetGameObject()
	if w == nil || g == nil || g.ToBeDestroyed() {
		return
	}
	from := g.Transform.Position
	p.handle = w.Scheduler().Add(engine.NewMoveTween(g, to, p.Duration).
		SetEase(p.Ease).
		OnComplete(func() {
			p.legs++
			p.leg(from)
		}))
}

func (p *Patrol) Stop() {
	p.handle.Cancel()
}
