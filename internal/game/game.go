// Package game runs the window loop: input, the world update, the first-person view and the
// debug overlays.
package game

import (
	"fmt"
	"log"
	"time"

	"doomcast/internal/assets"
	"doomcast/internal/audio"
	"doomcast/internal/camera"
	"doomcast/internal/config"
	"doomcast/internal/render"
	"doomcast/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	mapPixelsPerCell = 24
	messageSeconds   = 3
)

type Game struct {
	cfg      config.Config
	World    *world.World
	Assets   *assets.Manager
	Audio    *audio.Manager
	surface  *render.RaylibSurface
	settings Settings

	showPanel bool
	showMap   bool
	captured  bool

	message     string
	messageTime float64

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func New(cfg config.Config) *Game {
	return &Game{
		cfg:      cfg,
		settings: SettingsFromConfig(cfg),
		surface:  render.NewRaylibSurface(),
	}
}

func (g *Game) Run() {
	prefs := LoadPrefs(prefsFile)
	width, height := g.cfg.Window.Width, g.cfg.Window.Height
	if prefs != nil && prefs.WindowWidth > 0 && prefs.WindowHeight > 0 {
		width, height = prefs.WindowWidth, prefs.WindowHeight
	}

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable)
	rl.InitWindow(int32(width), int32(height), g.cfg.Window.Title)
	defer rl.CloseWindow()
	if prefs != nil && (prefs.WindowX != 0 || prefs.WindowY != 0) {
		rl.SetWindowPosition(prefs.WindowX, prefs.WindowY)
	}
	rl.SetTargetFPS(int32(g.cfg.Window.TargetFPS))

	if g.cfg.Audio.Enabled {
		rl.InitAudioDevice()
		defer rl.CloseAudioDevice()
		g.Audio = audio.NewManager(nil, g.cfg.Audio.Falloff)
		g.Audio.MasterVolume = g.cfg.Audio.MasterVolume
	}

	g.Assets = assets.New(g.cfg.AssetRoot)
	defer g.Assets.Unload()

	g.World = world.New(world.Options{
		Physics:  g.cfg.PhysicsConfig(),
		Render:   g.cfg.RenderOptions(),
		Textures: g.Assets,
		Sounds:   g.Assets,
		Audio:    g.Audio,
		Input:    camera.KeyboardInput{TurnSpeed: 120, MouseFactor: 0.15},
		Fire:     func() bool { return g.captured && rl.IsMouseButtonDown(rl.MouseLeftButton) },
		Launch:   func() bool { return g.captured && rl.IsMouseButtonPressed(rl.MouseRightButton) },
	})
	initRayguiStyle(g.cfg.AssetRoot)

	level := g.cfg.Level
	if prefs != nil {
		g.showPanel, g.showMap = prefs.ShowPanel, prefs.ShowMap
		if prefs.Settings != (Settings{}) {
			g.settings = prefs.Settings
		}
		if prefs.Level != "" {
			level = prefs.Level
		}
	}
	g.loadLevel(level)
	g.setCaptured(true)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}

	pos := rl.GetWindowPosition()
	err := SavePrefs(prefsFile, Prefs{
		WindowWidth:  rl.GetScreenWidth(),
		WindowHeight: rl.GetScreenHeight(),
		WindowX:      int(pos.X),
		WindowY:      int(pos.Y),
		Level:        g.World.Level,
		ShowPanel:    g.showPanel,
		ShowMap:      g.showMap,
		Settings:     g.settings,
	})
	if err != nil {
		log.Printf("Failed to save prefs: %v", err)
	}
}

// loadLevel replaces the world with the level at path. A level that only partly loads keeps the
// objects that did.
func (g *Game) loadLevel(path string) {
	if err := g.World.LoadLevel(path); err != nil {
		log.Printf("Level %s: %v", path, err)
		g.notify(fmt.Sprintf("Level errors, see log: %s", path))
	} else {
		g.notify(fmt.Sprintf("Loaded: %s", path))
	}
	g.settings.Apply(g.World)
}

func (g *Game) notify(msg string) {
	g.message = msg
	g.messageTime = rl.GetTime()
}

func (g *Game) setCaptured(captured bool) {
	g.captured = captured
	if captured {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	if rl.IsKeyPressed(rl.KeyF1) {
		g.showPanel = !g.showPanel
		if g.showPanel {
			g.setCaptured(false)
		}
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		g.showMap = !g.showMap
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.setCaptured(!g.captured)
	}
	if rl.IsKeyPressed(rl.KeyF5) && g.World.Level != "" {
		g.loadLevel(g.World.Level)
	}
	g.handleFileDrop()

	g.World.Update(deltaTime)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) Draw() {
	rl.BeginDrawing()

	drawStart := time.Now()
	if g.showMap {
		g.World.DrawMap(g.surface, mapPixelsPerCell)
	} else {
		g.World.Draw(g.surface)
	}
	g.surface.Present()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	rl.DrawText("WASD to move, mouse or arrows to turn, LMB to shoot", 10, 10, 20, rl.LightGray)
	rl.DrawText("F1 settings, F2 map, F5 reload, Tab release mouse", 10, 35, 20, rl.LightGray)
	rl.DrawFPS(10, 60)
	rl.DrawText(fmt.Sprintf("Update: %.2f ms  Draw: %.2f ms", g.updateMs, g.drawMs), 10, 85, 16, rl.Green)

	if !g.showMap {
		cx, cy := int32(rl.GetScreenWidth()/2), int32(rl.GetScreenHeight()/2)
		rl.DrawLine(cx-6, cy, cx+6, cy, rl.RayWhite)
		rl.DrawLine(cx, cy-6, cx, cy+6, rl.RayWhite)
	}

	if g.message != "" && rl.GetTime()-g.messageTime < messageSeconds {
		drawTextEx(panelFont, g.message, 10, int32(rl.GetScreenHeight()-30), 18, colorAccentLight)
	}

	if g.showPanel {
		if s, changed := g.drawPanel(); changed {
			g.settings = s
			g.settings.Apply(g.World)
		}
	}
}
