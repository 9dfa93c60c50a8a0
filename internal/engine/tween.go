package engine

import (
	"time"

	"github.com/gen2brain/raylib-go/easings"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// EaseFunc has the raylib easings signature: time, begin, change, duration.
type EaseFunc func(t, b, c, d float32) float32

// Eases maps level-file names to easing curves.
var Eases = map[string]EaseFunc{
	"linear":       easings.LinearNone,
	"sineIn":       easings.SineIn,
	"sineOut":      easings.SineOut,
	"sineInOut":    easings.SineInOut,
	"quadIn":       easings.QuadIn,
	"quadOut":      easings.QuadOut,
	"quadInOut":    easings.QuadInOut,
	"cubicIn":      easings.CubicIn,
	"cubicOut":     easings.CubicOut,
	"cubicInOut":   easings.CubicInOut,
	"expoIn":       easings.ExpoIn,
	"expoOut":      easings.ExpoOut,
	"expoInOut":    easings.ExpoInOut,
	"circIn":       easings.CircIn,
	"circOut":      easings.CircOut,
	"circInOut":    easings.CircInOut,
	"backIn":       easings.BackIn,
	"backOut":      easings.BackOut,
	"backInOut":    easings.BackInOut,
	"elasticIn":    easings.ElasticIn,
	"elasticOut":   easings.ElasticOut,
	"elasticInOut": easings.ElasticInOut,
	"bounceIn":     easings.BounceIn,
	"bounceOut":    easings.BounceOut,
	"bounceInOut":  easings.BounceInOut,
}

// Positioner is anything a MoveTo tween can drive.
type Positioner interface {
	Position() rl.Vector2
	SetPosition(p rl.Vector2)
}

// Tween interpolates a float from one value to another over a duration. It is a Task; add it to a
// Scheduler to run it. The value handed to onUpdate is already eased.
type Tween struct {
	from, to   float32
	duration   time.Duration
	ease       EaseFunc
	onUpdate   func(v float32)
	onComplete func()

	captureStart func()

	start   time.Duration
	started bool
}

// NewValueTween reports from on its first step and to on its last.
func NewValueTween(from, to float32, duration time.Duration, onUpdate func(v float32)) *Tween {
	return &Tween{
		from:     from,
		to:       to,
		duration: duration,
		ease:     easings.LinearNone,
		onUpdate: onUpdate,
	}
}

// NewMoveTween moves target from its current position to dest. The start position is captured on
// the first step.
func NewMoveTween(target Positioner, dest rl.Vector2, duration time.Duration) *Tween {
	var origin rl.Vector2
	tw := NewValueTween(0, 1, duration, nil)
	tw.onUpdate = func(v float32) {
		target.SetPosition(rl.Vector2Lerp(origin, dest, v))
	}
	tw.captureStart = func() { origin = target.Position() }
	return tw
}

func (tw *Tween) SetEase(ease EaseFunc) *Tween {
	if ease != nil {
		tw.ease = ease
	}
	return tw
}

func (tw *Tween) OnComplete(fn func()) *Tween {
	tw.onComplete = fn
	return tw
}

func (tw *Tween) Step(now time.Duration) bool {
	if !tw.started {
		tw.started = true
		tw.start = now
		if tw.captureStart != nil {
			tw.captureStart()
		}
		tw.emit(tw.from)
	}

	var t float32 = 1
	if tw.duration > 0 {
		t = float32(now-tw.start) / float32(tw.duration)
	}
	if t >= 1 {
		tw.emit(tw.to)
		if tw.onComplete != nil {
			tw.onComplete()
		}
		return false
	}

	tw.emit(tw.from + (tw.to-tw.from)*tw.ease(t, 0, 1, 1))
	return true
}

func (tw *Tween) emit(v float32) {
	if tw.onUpdate != nil {
		tw.onUpdate(v)
	}
}
