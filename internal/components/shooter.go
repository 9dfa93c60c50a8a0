package components

import (
	"fmt"
	"time"

	"doomcast/internal/engine"
	"doomcast/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TargetTag marks objects that shots destroy.
const TargetTag = "target"

// ShotResult describes one hitscan shot.
type ShotResult struct {
	Hit      bool
	Target   *engine.GameObject
	Point    rl.Vector2
	Distance float32
}

// Shooter fires hitscan shots along its GameObject's heading and can launch projectiles.
type Shooter struct {
	engine.BaseComponent

	Cooldown     time.Duration
	IgnoreLayers []int
	HitSound     string

	ProjectileSpeed  float32
	ProjectileSprite string

	// Fire and Launch poll input each frame. Nil disables them.
	Fire   func() bool
	Launch func() bool

	lastShot time.Duration
	fired    bool
	launched int

	Shot engine.EventWithArg[ShotResult]
}

func NewShooter() *Shooter {
	return &Shooter{
		Cooldown:        150 * time.Millisecond,
		ProjectileSpeed: 12,
		Fire:            func() bool { return rl.IsMouseButtonDown(rl.MouseLeftButton) },
		Launch:          func() bool { return rl.IsMouseButtonPressed(rl.MouseRightButton) },
	}
}

func (s *Shooter) Update(deltaTime float32) {
	if s.Fire != nil && s.Fire() {
		s.Shoot()
	}
	if s.Launch != nil && s.Launch() {
		s.LaunchProjectile()
	}
}

func (s *Shooter) ready(now time.Duration) bool {
	return !s.fired || now-s.lastShot >= s.Cooldown
}

// Shoot casts a ray from the object along its heading. The closest object tagged TargetTag that
// the ray reaches first is destroyed.
func (s *Shooter) Shoot() (ShotResult, bool) {
	w := worldOf(s)
	g := s.GetGameObject()
	if w == nil || g == nil {
		return ShotResult{}, false
	}
	now := w.Now()
	if !s.ready(now) {
		return ShotResult{}, false
	}
	s.lastShot = now
	s.fired = true

	var res ShotResult
	hit, ok := w.RayCast(g.Transform.Position, g.Transform.Forward(), s.IgnoreLayers...)
	if ok {
		res = ShotResult{Hit: true, Target: hit.GameObject, Point: hit.Point, Distance: hit.Distance}
		if hit.GameObject != nil && hit.GameObject.HasTag(TargetTag) {
			hit.GameObject.Destroy()
			if s.HitSound != "" {
				w.PlaySound(s.HitSound, hit.Point)
			}
		}
	}
	s.Shot.Invoke(res)
	return res, true
}

// LaunchProjectile spawns a projectile just in front of the object.
func (s *Shooter) LaunchProjectile() *engine.GameObject {
	w := worldOf(s)
	g := s.GetGameObject()
	if w == nil || g == nil {
		return nil
	}
	s.launched++

	dir := g.Transform.Forward()
	p := engine.NewGameObject(fmt.Sprintf("Projectile_%d", s.launched))
	p.Tags = []string{"projectile"}
	p.Transform.Position = rl.Vector2Add(g.Transform.Position, rl.Vector2Scale(dir, 40))

	body := physics.NewBody()
	body.Mass = 0.1
	body.Drag = 0.01
	body.PassThrough = true
	body.AddCircleCollider(rl.Vector2{}, 5)
	body.AddForce(dir, s.ProjectileSpeed)
	p.AddComponent(body)

	if s.ProjectileSprite != "" {
		p.AddComponent(NewSprite(s.ProjectileSprite, 20))
	}
	p.AddComponent(NewProjectile(2 * time.Second))

	w.Spawn(p)
	return p
}

// Projectile destroys itself on its first contact with anything that is not tagged Ignore, and
// destroys what it hit when that is a target. It also expires after Lifetime.
type Projectile struct {
	engine.BaseComponent

	Lifetime time.Duration
	Ignore   string

	age time.Duration
}

func NewProjectile(lifetime time.Duration) *Projectile {
	return &Projectile{Lifetime: lifetime, Ignore: "player"}
}

func (p *Projectile) Update(deltaTime float32) {
	p.age += time.Duration(float64(deltaTime) * float64(time.Second))
	if g := p.GetGameObject(); g != nil && p.Lifetime > 0 && p.age >= p.Lifetime {
		g.Destroy()
	}
}

func (p *Projectile) OnCollisionEnter(other *engine.GameObject) {
	g := p.GetGameObject()
	if g == nil || other == nil || g.ToBeDestroyed() || other.HasTag(p.Ignore) || other.HasTag("projectile") {
		return
	}
	if other.HasTag(TargetTag) {
		other.Destroy()
	}
	g.Destroy()
}

func (p *Projectile) OnCollisionExit(other *engine.GameObject) {}
