package components

import (
	"doomcast/internal/engine"
	"doomcast/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// worldOf returns the world a component's object lives in, or nil when it is not spawned yet.
func worldOf(c engine.Component) engine.WorldAccess {
	g := c.GetGameObject()
	if g == nil || g.Scene == nil {
		return nil
	}
	return g.Scene.World
}

// Sprite keeps a billboard on its GameObject and optionally animates it from a spritesheet.
type Sprite struct {
	engine.BaseComponent

	Billboard *geom.Billboard
	Offset    rl.Vector2

	animations map[string]*engine.SpriteAnimation
	animator   *engine.Animator
	autoplay   string
}

func NewSprite(texture string, width float32) *Sprite {
	b := geom.NewBillboard(rl.Vector2{}, width)
	b.Texture = texture
	return &Sprite{Billboard: b, animations: make(map[string]*engine.SpriteAnimation)}
}

func (s *Sprite) AddAnimation(a *engine.SpriteAnimation) {
	s.animations[a.Name] = a
}

// Autoplay sets the animation started when the sprite is spawned.
func (s *Sprite) Autoplay(name string) {
	s.autoplay = name
}

func (s *Sprite) Start() {
	s.sync()
	if len(s.animations) == 0 {
		return
	}
	w := worldOf(s)
	if w == nil {
		return
	}
	s.animator = engine.NewAnimator(&s.Billboard.Segment)
	w.Scheduler().Add(s.animator)
	if s.autoplay != "" {
		s.Play(s.autoplay)
	}
}

// Play switches to a named animation. Unknown names are ignored.
func (s *Sprite) Play(name string) bool {
	a, ok := s.animations[name]
	if !ok || s.animator == nil {
		return false
	}
	s.animator.Play(a)
	return true
}

func (s *Sprite) Animator() *engine.Animator { return s.animator }

func (s *Sprite) Update(deltaTime float32) {
	s.sync()
	if g := s.GetGameObject(); g != nil && g.ToBeDestroyed() && s.animator != nil {
		s.animator.Stop()
	}
}

func (s *Sprite) sync() {
	if g := s.GetGameObject(); g != nil {
		s.Billboard.SetPosition(rl.Vector2Add(g.Transform.Position, s.Offset))
	}
}

// SegmentRenderer marks a segment owned by a GameObject for the renderer's dynamic list. The
// segment itself is moved by a segment collider that follows the body.
type SegmentRenderer struct {
	engine.BaseComponent
	Segment *geom.Segment
}

func NewSegmentRenderer(seg *geom.Segment) *SegmentRenderer {
	return &SegmentRenderer{Segment: seg}
}
