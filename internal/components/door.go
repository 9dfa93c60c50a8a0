package components

import (
	"time"

	"doomcast/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpening
	DoorOpen
	DoorClosing
)

func (s DoorState) String() string {
	switch s {
	case DoorClosed:
		return "closed"
	case DoorOpening:
		return "opening"
	case DoorOpen:
		return "open"
	case DoorClosing:
		return "closing"
	}
	return "unknown"
}

// Door slides its GameObject by Slide when something tagged Trigger touches it, waits HoldOpen
// and slides back. Put it next to a kinematic body with a segment collider so the drawn segment
// moves along.
type Door struct {
	engine.BaseComponent

	Slide    rl.Vector2
	Duration time.Duration
	HoldOpen time.Duration
	Trigger  string
	Ease     engine.EaseFunc
	Sound    string

	state  DoorState
	closed rl.Vector2

	StateChanged engine.EventWithArg[DoorState]
}

func NewDoor(slide rl.Vector2) *Door {
	return &Door{
		Slide:    slide,
		Duration: 600 * time.Millisecond,
		HoldOpen: 2 * time.Second,
		Trigger:  "player",
		Ease:     engine.Eases["quadInOut"],
	}
}

func (d *Door) Start() {
	if g := d.GetGameObject(); g != nil {
		d.closed = g.Transform.Position
	}
}

func (d *Door) State() DoorState { return d.state }

func (d *Door) OnCollisionEnter(other *engine.GameObject) {
	if other == nil || !other.HasTag(d.Trigger) {
		return
	}
	d.Open()
}

func (d *Door) OnCollisionExit(other *engine.GameObject) {}

// Open starts opening a closed door. It reports whether anything happened.
func (d *Door) Open() bool {
	w := worldOf(d)
	if w == nil || d.state != DoorClosed {
		return false
	}
	g := d.GetGameObject()
	if d.Sound != "" {
		w.PlaySound(d.Sound, g.Transform.Position)
	}
	d.setState(DoorOpening)
	w.Scheduler().Add(engine.NewMoveTween(g, rl.Vector2Add(d.closed, d.Slide), d.Duration).
		SetEase(d.Ease).
		OnComplete(func() {
			d.setState(DoorOpen)
			w.Scheduler().After(d.HoldOpen, d.close)
		}))
	return true
}

func (d *Door) close() {
	w := worldOf(d)
	if w == nil {
		return
	}
	d.setState(DoorClosing)
	w.Scheduler().Add(engine.NewMoveTween(d.GetGameObject(), d.closed, d.Duration).
		SetEase(d.Ease).
		OnComplete(func() { d.setState(DoorClosed) }))
}

func (d *Door) setState(s DoorState) {
	d.state = s
	d.StateChanged.Invoke(s)
}
