package components

import (
	"testing"
	"time"

	"doomcast/internal/engine"
	"doomcast/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type fakeWorld struct {
	scene     *engine.Scene
	scheduler *engine.Scheduler
	now       time.Duration
	spawned   []*engine.GameObject
	sounds    []string
	hit       engine.RayHit
	hitOK     bool
	ignored   []int
}

func newFakeWorld() *fakeWorld {
	w := &fakeWorld{scene: engine.NewScene("test"), scheduler: engine.NewScheduler()}
	w.scene.World = w
	return w
}

func (w *fakeWorld) Scheduler() *engine.Scheduler { return w.scheduler }
func (w *fakeWorld) Now() time.Duration           { return w.now }
func (w *fakeWorld) Spawn(g *engine.GameObject) {
	w.scene.AddGameObject(g)
	g.Start()
	w.spawned = append(w.spawned, g)
}
func (w *fakeWorld) PlaySound(name string, _ rl.Vector2) { w.sounds = append(w.sounds, name) }
func (w *fakeWorld) RayCast(_, _ rl.Vector2, ignore ...int) (engine.RayHit, bool) {
	w.ignored = ignore
	return w.hit, w.hitOK
}

// advance ticks the scheduler in 10ms steps.
func (w *fakeWorld) advance(d time.Duration) {
	end := w.now + d
	for w.now < end {
		w.now += 10 * time.Millisecond
		w.scheduler.Tick(w.now)
	}
}

func tagged(name string, tags ...string) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Tags = tags
	return g
}

func TestDoorOpensAndCloses(t *testing.T) {
	w := newFakeWorld()
	g := tagged("door")
	g.Transform.Position = rl.NewVector2(100, 0)
	door := NewDoor(rl.NewVector2(0, -80))
	door.Duration = 100 * time.Millisecond
	door.HoldOpen = 200 * time.Millisecond
	door.Sound = "door.wav"
	g.AddComponent(door)

	var states []DoorState
	door.StateChanged.AddListener(func(s DoorState) { states = append(states, s) })
	w.Spawn(g)

	door.OnCollisionEnter(tagged("crate"))
	if door.State() != DoorClosed {
		t.Fatal("only the trigger tag should open the door")
	}

	door.OnCollisionEnter(tagged("hero", "player"))
	if door.State() != DoorOpening || len(w.sounds) != 1 {
		t.Fatalf("expected the door to start opening with a sound, state %v sounds %v", door.State(), w.sounds)
	}
	if door.Open() {
		t.Error("an opening door must not restart")
	}

	w.advance(150 * time.Millisecond)
	if door.State() != DoorOpen || g.Transform.Position != rl.NewVector2(100, -80) {
		t.Fatalf("expected an open door at (100,-80), got %v at %v", door.State(), g.Transform.Position)
	}

	w.advance(500 * time.Millisecond)
	if door.State() != DoorClosed || g.Transform.Position != rl.NewVector2(100, 0) {
		t.Fatalf("expected the door back home, got %v at %v", door.State(), g.Transform.Position)
	}

	want := []DoorState{DoorOpening, DoorOpen, DoorClosing, DoorClosed}
	if len(states) != len(want) {
		t.Fatalf("expected states %v, got %v", want, states)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("state %d: got %v, want %v", i, states[i], want[i])
		}
	}
}

func TestPickupCollectedOnce(t *testing.T) {
	w := newFakeWorld()
	g := tagged("coin")
	p := NewPickup()
	p.Sound = "coin.wav"
	g.AddComponent(p)
	w.Spawn(g)

	count := 0
	p.Collected.AddListener(func(*engine.GameObject) { count++ })

	p.OnCollisionEnter(tagged("ball"))
	if g.ToBeDestroyed() {
		t.Fatal("a non-collector must not pick it up")
	}
	hero := tagged("hero", "player")
	p.OnCollisionEnter(hero)
	p.OnCollisionEnter(hero)
	if !g.ToBeDestroyed() || count != 1 || len(w.sounds) != 1 {
		t.Errorf("expected one collection, destroyed=%v count=%d sounds=%v", g.ToBeDestroyed(), count, w.sounds)
	}
}

func TestShooterDestroysTargets(t *testing.T) {
	w := newFakeWorld()
	player := tagged("player", "player")
	s := NewShooter()
	s.Fire, s.Launch = nil, nil
	s.IgnoreLayers = []int{1}
	player.AddComponent(s)
	w.Spawn(player)

	target := tagged("imp", TargetTag)
	w.hit = engine.RayHit{GameObject: target, Point: rl.NewVector2(50, 0), Distance: 50}
	w.hitOK = true

	res, fired := s.Shoot()
	if !fired || !res.Hit || res.Target != target || !target.ToBeDestroyed() {
		t.Fatalf("expected the target to be hit and destroyed, got %+v fired=%v", res, fired)
	}
	if len(w.ignored) != 1 || w.ignored[0] != 1 {
		t.Errorf("expected the shooter's ignore layers to reach the ray cast, got %v", w.ignored)
	}

	if _, fired := s.Shoot(); fired {
		t.Error("expected the cooldown to block an immediate second shot")
	}
	w.now += s.Cooldown
	wall := tagged("wall")
	w.hit = engine.RayHit{GameObject: wall}
	if res, fired := s.Shoot(); !fired || wall.ToBeDestroyed() || res.Target != wall {
		t.Errorf("walls are reported but never destroyed, got %+v fired=%v", res, fired)
	}
}

func TestLaunchProjectile(t *testing.T) {
	w := newFakeWorld()
	player := tagged("player", "player")
	player.Transform.Rotation = 90
	s := NewShooter()
	s.Fire, s.Launch = nil, nil
	s.ProjectileSprite = "ball.png"
	player.AddComponent(s)
	w.Spawn(player)

	p := s.LaunchProjectile()
	if p == nil || len(w.spawned) != 2 {
		t.Fatalf("expected a spawned projectile, got %d spawned", len(w.spawned))
	}
	body := engine.GetComponent[*physics.Body](p)
	if body == nil || !body.PassThrough || len(body.Colliders()) != 1 {
		t.Fatal("expected a pass-through body with one collider")
	}
	if f := body.Force(); f.Y <= 0 || f.X > 1e-3 || f.X < -1e-3 {
		t.Errorf("expected the projectile to fly along the heading (0,1), force %v", f)
	}
	if sp := engine.GetComponent[*Sprite](p); sp == nil || sp.Billboard.Position() != p.Transform.Position {
		t.Error("expected the sprite to start at the projectile")
	}

	proj := engine.GetComponent[*Projectile](p)
	proj.OnCollisionEnter(player)
	if p.ToBeDestroyed() {
		t.Fatal("projectiles ignore their shooter")
	}
	target := tagged("imp", TargetTag)
	proj.OnCollisionEnter(target)
	if !p.ToBeDestroyed() || !target.ToBeDestroyed() {
		t.Error("expected both the projectile and the target to be destroyed")
	}
}

func TestProjectileExpires(t *testing.T) {
	g := tagged("shot")
	p := NewProjectile(time.Second)
	g.AddComponent(p)
	g.Update(0.6)
	if g.ToBeDestroyed() {
		t.Fatal("expired early")
	}
	g.Update(0.6)
	if !g.ToBeDestroyed() {
		t.Error("expected the projectile to expire after its lifetime")
	}
}

func TestPatrolPingPongs(t *testing.T) {
	w := newFakeWorld()
	g := tagged("guard")
	g.Transform.Position = rl.NewVector2(0, 0)
	p := NewPatrol(rl.NewVector2(100, 0), 100*time.Millisecond)
	p.Ease = engine.Eases["linear"]
	g.AddComponent(p)
	w.Spawn(g)

	// The next leg is queued during the tick that completes the current one.
	w.advance(110 * time.Millisecond)
	if p.Legs() != 1 || g.Transform.Position != rl.NewVector2(100, 0) {
		t.Fatalf("expected one leg ending at (100,0), got %d at %v", p.Legs(), g.Transform.Position)
	}
	w.advance(110 * time.Millisecond)
	if p.Legs() != 2 || g.Transform.Position != rl.NewVector2(0, 0) {
		t.Fatalf("expected to walk back home, got %d at %v", p.Legs(), g.Transform.Position)
	}

	p.Stop()
	w.advance(300 * time.Millisecond)
	if p.Legs() != 2 {
		t.Errorf("a stopped patrol kept walking, %d legs", p.Legs())
	}
}

func TestSpriteAnimates(t *testing.T) {
	w := newFakeWorld()
	g := tagged("torch")
	g.Transform.Position = rl.NewVector2(30, 40)
	sp := NewSprite("torch.png", 50)
	sp.AddAnimation(&engine.SpriteAnimation{
		Name:     "burn",
		Texture:  "torch_sheet.png",
		Duration: 100 * time.Millisecond,
		Mode:     engine.PlayLoop,
		Frames: []engine.Keyframe{
			{Offset: rl.NewVector2(0, 0), Size: rl.NewVector2(32, 32)},
			{Offset: rl.NewVector2(32, 0), Size: rl.NewVector2(32, 32)},
		},
	})
	sp.Autoplay("burn")
	g.AddComponent(sp)
	w.Spawn(g)

	if sp.Billboard.Position() != g.Transform.Position {
		t.Errorf("billboard at %v, want %v", sp.Billboard.Position(), g.Transform.Position)
	}
	if sp.Animator() == nil || sp.Animator().Playing() != "burn" || sp.Billboard.Texture != "torch_sheet.png" {
		t.Fatal("expected the autoplay animation to start")
	}
	if sp.Play("missing") {
		t.Error("unknown animations must be ignored")
	}

	w.advance(10 * time.Millisecond) // first step starts the clock
	w.advance(60 * time.Millisecond)
	if sp.Billboard.CutoutOffset.X != 32 {
		t.Errorf("expected the second frame after 60ms, cutout %v", sp.Billboard.CutoutOffset)
	}

	g.Transform.Position = rl.NewVector2(0, 0)
	g.Update(0.016)
	if sp.Billboard.Position() != (rl.Vector2{}) {
		t.Error("expected the billboard to follow its object")
	}
}

func TestScriptsRegistered(t *testing.T) {
	for _, name := range []string{"Door", "Pickup", "Patrol", "Projectile", "Shooter"} {
		c, err := engine.CreateScript(name, map[string]any{"duration": 0.5, "ease": "linear"})
		if err != nil || c == nil {
			t.Errorf("script %s: %v", name, err)
		}
	}
	d, _ := engine.CreateScript("Door", map[string]any{"slideY": -90.0, "holdOpen": 1.5, "trigger": "key"})
	door := d.(*Door)
	if door.Slide != rl.NewVector2(0, -90) || door.HoldOpen != 1500*time.Millisecond || door.Trigger != "key" {
		t.Errorf("door props not applied: %+v", door)
	}
}
