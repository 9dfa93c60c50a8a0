package world

import (
	"encoding/json"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"doomcast/internal/audio"
	"doomcast/internal/components"
	"doomcast/internal/engine"
	"doomcast/internal/physics"
	"doomcast/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

type fakeTextures struct{}

func (fakeTextures) Texture(name string) (render.Texture, bool) {
	return render.Texture{Width: 64, Height: 64}, name != ""
}

type fakeSounds map[string]uint32

func (s fakeSounds) Sound(name string) (rl.Sound, bool) {
	id, ok := s[name]
	var snd rl.Sound
	snd.FrameCount = id
	return snd, ok
}

type fakeDevice struct {
	plays []uint32
}

func (d *fakeDevice) Play(s rl.Sound)             { d.plays = append(d.plays, s.FrameCount) }
func (d *fakeDevice) Stop(rl.Sound)               {}
func (d *fakeDevice) IsPlaying(rl.Sound) bool     { return true }
func (d *fakeDevice) SetVolume(rl.Sound, float32) {}
func (d *fakeDevice) SetPan(rl.Sound, float32)    {}

type fakeSurface struct {
	width, height int
	columns       int
}

func (s *fakeSurface) Size() (int, int)                         { return s.width, s.height }
func (s *fakeSurface) Clear(rl.Color)                           {}
func (s *fakeSurface) FillRect(_, _, _, _ int, _ rl.Color)      {}
func (s *fakeSurface) DrawLine(_, _ rl.Vector2, _ rl.Color)     {}
func (s *fakeSurface) DrawCircle(rl.Vector2, float32, rl.Color) {}
func (s *fakeSurface) DrawText(string, int, int, int, rl.Color) {}
func (s *fakeSurface) Present()                                 {}

func (s *fakeSurface) DrawQuad(render.Texture, [4]render.QuadVertex, rl.Color) {}

func (s *fakeSurface) DrawColumn(render.Texture, rl.Rectangle, int, int, int, rl.Color) {
	s.columns++
}

type harness struct {
	w      *World
	clock  *fakeClock
	device *fakeDevice
}

func newHarness() *harness {
	clock := &fakeClock{}
	device := &fakeDevice{}
	cfg := physics.DefaultConfig()
	cfg.GravityModifier = 0
	opts := render.DefaultOptions()
	opts.Workers = 1
	w := New(Options{
		Physics:  cfg,
		Render:   opts,
		Clock:    clock,
		Textures: fakeTextures{},
		Sounds:   fakeSounds{"coin": 7, "door": 8},
		Audio:    audio.NewManager(device, 1000),
	})
	return &harness{w: w, clock: clock, device: device}
}

// step advances the clock past one physics tick and updates the world.
func (h *harness) step(n int) {
	for range n {
		h.clock.now += 10 * time.Millisecond
		h.w.Update(0.01)
	}
}

func roomWalls() []WallDef {
	corners := [][2]float32{{0, 0}, {1000, 0}, {1000, 1000}, {0, 1000}}
	walls := make([]WallDef, 0, len(corners))
	for i, c := range corners {
		walls = append(walls, WallDef{From: c, To: corners[(i+1)%len(corners)], Texture: "wall.png"})
	}
	return walls
}

func rawComponents(t *testing.T, parts ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, len(parts))
	for i, p := range parts {
		if !json.Valid([]byte(p)) {
			t.Fatalf("invalid component json %s", p)
		}
		out[i] = json.RawMessage(p)
	}
	return out
}

func near(a, b rl.Vector2, eps float32) bool {
	return rl.Vector2Distance(a, b) <= eps
}

func TestBuildLevelWiresEverything(t *testing.T) {
	h := newHarness()
	err := h.w.BuildLevel(LevelFile{
		Name:  "room",
		Walls: roomWalls(),
		Player: PlayerDef{
			Position: [2]float32{500, 500},
		},
		Objects: []ObjectDef{{
			Name:     "torch",
			Position: [2]float32{300, 300},
			Components: rawComponents(t,
				`{"type":"Sprite","texture":"torch.png","width":40}`,
				`{"type":"Body","kinematic":true,"colliders":[{"shape":"circle","radius":10}]}`,
			),
		}},
	})
	if err != nil {
		t.Fatalf("BuildLevel: %v", err)
	}

	w := h.w
	if w.Player == nil || w.Camera == nil || w.Renderer.Camera() == nil {
		t.Fatal("expected a player with a camera driving the renderer")
	}
	if g := w.Renderer.StaticGrid(); g == nil || g.SegmentCount() != 4 {
		t.Fatal("expected the four walls in the static grid")
	}
	// four walls, the torch and the player
	if n := len(w.Physics.Bodies()); n != 6 {
		t.Errorf("expected 6 bodies, got %d", n)
	}
	if n := len(w.Renderer.Billboards()); n != 1 {
		t.Errorf("expected the torch billboard, got %d", n)
	}
	if w.Scene.FindByName("torch") == nil {
		t.Error("torch missing from the scene")
	}

	s := &fakeSurface{width: 9, height: 100}
	w.Draw(s)
	if s.columns < 9 {
		t.Errorf("expected every column to draw a wall, got %d", s.columns)
	}
}

func TestPlayerPushedOutOfWall(t *testing.T) {
	h := newHarness()
	if err := h.w.BuildLevel(LevelFile{Walls: roomWalls(), Player: PlayerDef{Position: [2]float32{500, 990}, Radius: 16}}); err != nil {
		t.Fatal(err)
	}
	walls := h.w.Scene.FindByTag("wall")
	before := make([]rl.Vector2, len(walls))
	for i, g := range walls {
		before[i] = g.Transform.Position
	}

	h.step(1)
	if h.w.PhysicsTicks() != 1 {
		t.Fatalf("expected one physics tick, got %d", h.w.PhysicsTicks())
	}
	if y := h.w.Player.Transform.Position.Y; y > 984.01 {
		t.Errorf("expected the player to be pushed to y<=984, got %v", y)
	}
	for i, g := range walls {
		if g.Transform.Position != before[i] {
			t.Errorf("kinematic wall %s moved from %v to %v", g.Name, before[i], g.Transform.Position)
		}
	}
}

func TestPhysicsCadenceIndependentOfFrames(t *testing.T) {
	h := newHarness()
	if err := h.w.BuildLevel(LevelFile{Walls: roomWalls(), Player: PlayerDef{Position: [2]float32{500, 500}}}); err != nil {
		t.Fatal(err)
	}
	// Frames 1ms apart only tick physics once more than 5ms have passed.
	for range 11 {
		h.clock.now += time.Millisecond
		h.w.Update(0.001)
	}
	if n := h.w.PhysicsTicks(); n != 1 {
		t.Errorf("expected 1 tick over 11ms of 1ms frames, got %d", n)
	}
}

func TestPickupCollectedAndReaped(t *testing.T) {
	h := newHarness()
	err := h.w.BuildLevel(LevelFile{
		Walls:  roomWalls(),
		Player: PlayerDef{Position: [2]float32{500, 500}},
		Objects: []ObjectDef{{
			Name:     "coin",
			Position: [2]float32{510, 500},
			Components: rawComponents(t,
				`{"type":"Sprite","texture":"coin.png","width":20}`,
				`{"type":"Body","passThrough":true,"colliders":[{"shape":"circle","radius":10}]}`,
				`{"type":"Script","name":"Pickup","props":{"sound":"coin"}}`,
			),
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	bodies := len(h.w.Physics.Bodies())

	h.step(1)
	if h.w.Scene.FindByName("coin") != nil {
		t.Fatal("expected the coin to be collected and reaped")
	}
	if n := len(h.w.Renderer.Billboards()); n != 0 {
		t.Errorf("expected the coin billboard to be removed, %d left", n)
	}
	if n := len(h.w.Physics.Bodies()); n != bodies-1 {
		t.Errorf("expected %d bodies after reaping, got %d", bodies-1, n)
	}
	if len(h.device.plays) != 1 || h.device.plays[0] != 7 {
		t.Errorf("expected the coin sound once, got %v", h.device.plays)
	}
	if p := h.w.Player.Transform.Position; p != rl.NewVector2(500, 500) {
		t.Errorf("a pass-through pickup must not push the player, now at %v", p)
	}
}

func TestShootingDestroysTarget(t *testing.T) {
	h := newHarness()
	err := h.w.BuildLevel(LevelFile{
		Walls:  roomWalls(),
		Player: PlayerDef{Position: [2]float32{500, 500}},
		Objects: []ObjectDef{{
			Name:     "imp",
			Tags:     []string{components.TargetTag},
			Position: [2]float32{800, 500},
			Components: rawComponents(t,
				`{"type":"Sprite","texture":"imp.png","width":40}`,
				`{"type":"Body","kinematic":true,"colliders":[{"shape":"circle","radius":20}]}`,
			),
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	hit, ok := h.w.RayCast(rl.NewVector2(500, 500), rl.NewVector2(1, 0), LayerPlayer)
	if !ok || hit.GameObject.Name != "imp" || math.Abs(float64(hit.Distance-280)) > 1e-2 {
		t.Fatalf("expected to hit the imp at 280, got %v at %v", hit.GameObject, hit.Distance)
	}

	shooter := engine.GetComponent[*components.Shooter](h.w.Player)
	res, fired := shooter.Shoot()
	if !fired || res.Target == nil || res.Target.Name != "imp" {
		t.Fatalf("expected the shot to hit the imp, got %+v", res)
	}
	h.step(1)
	if h.w.Scene.FindByName("imp") != nil || len(h.w.Renderer.Billboards()) != 0 {
		t.Error("expected the imp to be removed")
	}

	hit, ok = h.w.RayCast(rl.NewVector2(500, 500), rl.NewVector2(1, 0), LayerPlayer)
	if !ok || !hit.GameObject.HasTag("wall") || math.Abs(float64(hit.Distance-500)) > 1e-2 {
		t.Errorf("expected the ray to reach the wall at 500, got %v at %v", hit.GameObject, hit.Distance)
	}
}

func TestDoorOpensForPlayer(t *testing.T) {
	h := newHarness()
	err := h.w.BuildLevel(LevelFile{
		Walls:  roomWalls(),
		Player: PlayerDef{Position: [2]float32{690, 500}, Radius: 16},
		Objects: []ObjectDef{{
			Name:     "door",
			Position: [2]float32{700, 500},
			Components: rawComponents(t,
				`{"type":"Segment","from":[0,-100],"to":[0,100],"texture":"door.png"}`,
				`{"type":"Body","kinematic":true,"colliders":[{"shape":"segment"}]}`,
				`{"type":"Script","name":"Door","props":{"slideY":-200,"duration":0.2,"holdOpen":5,"sound":"door"}}`,
			),
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	g := h.w.Scene.FindByName("door")
	door := engine.GetComponent[*components.Door](g)
	seg := engine.GetComponent[*components.SegmentRenderer](g).Segment
	if len(h.w.Renderer.Segments()) != 1 {
		t.Fatalf("expected the door segment to be dynamic, got %d", len(h.w.Renderer.Segments()))
	}

	h.step(1)
	if door.State() != components.DoorOpening {
		t.Fatalf("expected the player to open the door, state %v", door.State())
	}
	if h.w.Player.Transform.Position.X > 684.01 {
		t.Errorf("expected the door to push the player back, x=%v", h.w.Player.Transform.Position.X)
	}

	h.step(40)
	if door.State() != components.DoorOpen {
		t.Fatalf("expected an open door, state %v", door.State())
	}
	if !near(g.Transform.Position, rl.NewVector2(700, 300), 1e-3) || !near(seg.Position(), rl.NewVector2(700, 300), 1e-3) {
		t.Errorf("expected the door and its segment at (700,300), got %v and %v", g.Transform.Position, seg.Position())
	}
	if len(h.device.plays) != 1 || h.device.plays[0] != 8 {
		t.Errorf("expected the door sound once, got %v", h.device.plays)
	}
}

func TestBuildLevelReportsBadObjects(t *testing.T) {
	h := newHarness()
	err := h.w.BuildLevel(LevelFile{
		Walls:  roomWalls(),
		Player: PlayerDef{Position: [2]float32{500, 500}},
		Objects: []ObjectDef{
			{Name: "laser", Components: rawComponents(t, `{"type":"Laser"}`)},
			{Name: "ghost", Components: rawComponents(t, `{"type":"Script","name":"Ghost"}`)},
			{Name: "loose", Components: rawComponents(t, `{"type":"Body","colliders":[{"shape":"segment"}]}`)},
			{Name: "crate", Position: [2]float32{200, 200}, Components: rawComponents(t, `{"type":"Body","colliders":[{"shape":"rect","size":[20,20]}]}`)},
		},
	})
	if err == nil {
		t.Fatal("expected an error for the broken objects")
	}
	for _, name := range []string{"laser", "ghost", "loose"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %s", err, name)
		}
		if h.w.Scene.FindByName(name) != nil {
			t.Errorf("broken object %s should not be spawned", name)
		}
	}
	if h.w.Scene.FindByName("crate") == nil || h.w.Player == nil {
		t.Error("valid objects should still load")
	}
}

func TestLoadLevel(t *testing.T) {
	h := newHarness()
	if err := h.w.LoadLevel(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected a wrapped not-exist error, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := h.w.LoadLevel(bad); err == nil || !strings.Contains(err.Error(), "parse level") {
		t.Errorf("expected a parse error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "level.json")
	data := `{
		"name": "tiny",
		"floorTexture": "floor.png",
		"player": {"position": [50, 50], "rotation": 90},
		"walls": [
			{"from": [0, 0], "to": [100, 0], "texture": "a.png", "wrap": "local", "wrapValue": 2},
			{"from": [100, 0], "to": [100, 100], "texture": "a.png", "height": 0.5}
		],
		"objects": [
			{"name": "guard", "position": [20, 20], "components": [
				{"type": "Sprite", "texture": "guard.png", "width": 30, "autoplay": "walk",
				 "animations": [{"name": "walk", "texture": "guard_sheet.png", "duration": 0.5, "loop": true,
				   "frames": [{"offset": [0, 0], "size": [32, 32]}, {"offset": [32, 0], "size": [32, 32]}]}]},
				{"type": "Script", "name": "Patrol", "props": {"dx": 40, "duration": 1}}
			]}
		]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := h.w.LoadLevel(path); err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if h.w.Level != path || h.w.Renderer.Options().FloorTexture != "floor.png" {
		t.Error("expected the level path and floor texture to be recorded")
	}
	if d := h.w.Camera.Direction(); !near(d, rl.NewVector2(0, 1), 1e-5) {
		t.Errorf("player rotation 90 should face +y, got %v", d)
	}
	guard := h.w.Scene.FindByName("guard")
	sp := engine.GetComponent[*components.Sprite](guard)
	if sp == nil || sp.Animator() == nil || sp.Animator().Playing() != "walk" {
		t.Fatal("expected the guard to start its walk animation")
	}

	h.step(120)
	if p := engine.GetComponent[*components.Patrol](guard); p == nil || p.Legs() == 0 {
		t.Error("expected the guard to finish a patrol leg")
	}

	// Reloading replaces everything.
	if err := h.w.LoadLevel(path); err != nil {
		t.Fatal(err)
	}
	if n := len(h.w.Scene.FindByTag("wall")); n != 2 {
		t.Errorf("expected two walls after reload, got %d", n)
	}
	if n := len(h.w.Renderer.Billboards()); n != 1 {
		t.Errorf("expected the old billboards to be released, got %d", n)
	}
}

func TestDemoLevelLoads(t *testing.T) {
	h := newHarness()
	if err := h.w.LoadLevel(filepath.Join("..", "..", "assets", "levels", "demo.json")); err != nil {
		t.Fatalf("demo level: %v", err)
	}
	w := h.w
	if g := w.Renderer.StaticGrid(); g == nil || g.SegmentCount() != 7 {
		t.Fatal("expected seven static walls")
	}
	if n := len(w.Renderer.Segments()); n != 2 {
		t.Errorf("expected the window and the door as dynamic segments, got %d", n)
	}
	if n := len(w.Renderer.Billboards()); n != 5 {
		t.Errorf("expected 5 billboards, got %d", n)
	}
	// seven walls, seven objects and the player
	if n := len(w.Physics.Bodies()); n != 15 {
		t.Errorf("expected 15 bodies, got %d", n)
	}
	if w.Player == nil {
		t.Fatal("expected a player")
	}
	h.step(10)
	if len(w.Renderer.Billboards()) != 5 {
		t.Error("nothing should be collected while the player stands still")
	}
}
