package engine

import (
	"time"

	"doomcast/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type AnimationMode int

const (
	PlayOnce AnimationMode = iota
	PlayLoop
)

// Keyframe is a spritesheet cutout plus the vertical screen offset to apply while it shows.
type Keyframe struct {
	Offset        rl.Vector2
	Size          rl.Vector2
	ScreenOffsetY float32
}

type SpriteAnimation struct {
	Name     string
	Texture  string
	Duration time.Duration
	Mode     AnimationMode
	Frames   []Keyframe
}

// Frame returns the keyframe shown elapsed after the animation started. ok is false once a
// PlayOnce animation has run past its last frame.
func (a *SpriteAnimation) Frame(elapsed time.Duration) (Keyframe, bool) {
	if len(a.Frames) == 0 || a.Duration <= 0 {
		return Keyframe{}, false
	}
	if a.Mode == PlayLoop {
		elapsed %= a.Duration
	}
	idx := int(float64(elapsed) / float64(a.Duration) * float64(len(a.Frames)))
	if idx >= len(a.Frames) {
		return Keyframe{}, false
	}
	return a.Frames[max(idx, 0)], true
}

// Animator plays sprite animations on a segment by switching it to spritesheet wrapping and moving
// its cutout. It is a Task and stays scheduled until Stop is called.
type Animator struct {
	target  *geom.Segment
	current *SpriteAnimation
	start   time.Duration
	pending bool
	stopped bool

	OnFinished EventWithArg[string]
}

func NewAnimator(target *geom.Segment) *Animator {
	return &Animator{target: target}
}

// Play switches to anim. The animation clock starts on the next step.
func (a *Animator) Play(anim *SpriteAnimation) {
	a.current = anim
	a.pending = true
	a.target.Texture = anim.Texture
	a.target.Wrap = geom.WrapSpritesheet
}

// Playing returns the name of the current animation, or "" when idle.
func (a *Animator) Playing() string {
	if a.current == nil {
		return ""
	}
	return a.current.Name
}

func (a *Animator) Stop() {
	a.stopped = true
}

func (a *Animator) Step(now time.Duration) bool {
	if a.stopped {
		return false
	}
	if a.current == nil {
		return true
	}
	if a.pending {
		a.pending = false
		a.start = now
	}

	frame, ok := a.current.Frame(now - a.start)
	if !ok {
		name := a.current.Name
		a.current = nil
		a.OnFinished.Invoke(name)
		return true
	}
	a.target.CutoutOffset = frame.Offset
	a.target.CutoutSize = frame.Size
	a.target.OffsetY = frame.ScreenOffsetY
	return true
}
