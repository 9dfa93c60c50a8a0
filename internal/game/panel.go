package game

import (
	"fmt"
	"log"
	"path/filepath"

	"doomcast/internal/physics"
	"doomcast/internal/render"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Panel fonts. Both are optional; raygui and raylib fall back to the default font.
var (
	panelFont     rl.Font
	panelFontMono rl.Font
	fontsLoaded   bool
)

// Dark indigo theme
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 230)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)

	colorAccent        = rl.NewColor(108, 99, 255, 255)
	colorAccentLight   = rl.NewColor(167, 139, 250, 255)
	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)
)

const (
	panelWidth  = 300
	panelMargin = 10
	rowHeight   = 24
)

// initRayguiStyle loads the panel fonts from assetRoot/fonts and applies the theme.
func initRayguiStyle(assetRoot string) {
	if !fontsLoaded {
		fontsLoaded = true

		panelFont = rl.LoadFontEx(filepath.Join(assetRoot, "fonts", "Outfit-Regular.ttf"), 48, nil)
		if panelFont.Texture.ID > 0 {
			rl.SetTextureFilter(panelFont.Texture, rl.FilterBilinear)
			gui.SetFont(panelFont)
			log.Println("Loaded Outfit-Regular font")
		}

		panelFontMono = rl.LoadFontEx(filepath.Join(assetRoot, "fonts", "JetBrainsMono-Regular.ttf"), 48, nil)
		if panelFontMono.Texture.ID > 0 {
			rl.SetTextureFilter(panelFontMono.Texture, rl.FilterBilinear)
			log.Println("Loaded JetBrainsMono font")
		}
	}

	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(rl.NewColor(40, 40, 55, 255)))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// drawTextEx draws text using the specified font scaled to the requested size
func drawTextEx(font rl.Font, text string, x, y int32, size float32, color rl.Color) {
	if font.Texture.ID > 0 {
		rl.DrawTextEx(font, text, rl.Vector2{X: float32(x), Y: float32(y)}, size, 0, color)
	} else {
		rl.DrawText(text, x, y, int32(size), color)
	}
}

// statLines formats the frame and tick statistics shown under the panel controls.
func statLines(fs render.FrameStats, ts physics.TickStats, ticks int) []string {
	return []string{
		fmt.Sprintf("Columns:  %d  cells %d  quads %d", fs.Columns, fs.VisitedCells, fs.Quads),
		fmt.Sprintf("Hits:     %d opaque  %d transparent", fs.OpaqueHits, fs.TransparentHits),
		fmt.Sprintf("Cast:     %.2f ms", float64(fs.Cast.Microseconds())/1000.0),
		fmt.Sprintf("Planes:   %.2f ms", float64(fs.Planes.Microseconds())/1000.0),
		fmt.Sprintf("Draw:     %.2f ms", float64(fs.Draw.Microseconds())/1000.0),
		fmt.Sprintf("Bodies:   %d  pairs %d/%d", ts.Bodies, ts.Colliding, ts.Candidates),
		fmt.Sprintf("Physics:  %.2f ms  tick %d", float64(ts.Duration.Microseconds())/1000.0, ticks),
	}
}

// drawPanel draws the settings panel and returns the edited settings. changed reports whether
// any control moved.
func (g *Game) drawPanel() (s Settings, changed bool) {
	s = g.settings
	x := float32(rl.GetScreenWidth() - panelWidth - panelMargin)
	y := float32(panelMargin)

	stats := statLines(g.World.Renderer.Stats(), g.World.Physics.Stats(), g.World.PhysicsTicks())
	height := float32(rowHeight*(8+len(stats)) + panelMargin*2)
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: panelWidth, Height: height}, colorBgPanel)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: panelWidth, Height: height}, 1, colorAccent)

	drawTextEx(panelFont, "Settings", int32(x+panelMargin), int32(y+panelMargin), 18, colorAccentLight)
	y += rowHeight + panelMargin

	labelX := int32(x + panelMargin)
	sliderX := x + 110
	sliderW := float32(panelWidth - 110 - 50)
	slider := func(label string, value, lo, hi float32) float32 {
		drawTextEx(panelFont, label, labelX, int32(y+4), 15, colorTextSecondary)
		v := gui.Slider(rl.Rectangle{X: sliderX, Y: y, Width: sliderW, Height: rowHeight - 6},
			"", fmt.Sprintf("%.0f", value), value, lo, hi)
		y += rowHeight
		return v
	}
	check := func(label string, value bool) bool {
		v := gui.CheckBox(rl.Rectangle{X: float32(labelX), Y: y + 2, Width: 16, Height: 16}, label, value)
		y += rowHeight
		return v
	}

	s.FOV = slider("FOV", s.FOV, 30, 120)
	s.PlaneDistance = slider("Plane dist", s.PlaneDistance, 50, 2000)
	s.Fog = check("Fog", s.Fog)
	s.FogEnd = slider("Fog end", s.FogEnd, 100, 3000)
	s.TransparentDepth = int(slider("Glass depth", float32(s.TransparentDepth), 0, 8) + 0.5)
	s.Gravity = slider("Gravity", s.Gravity, 0, 20)
	s.BruteForce = check("Brute-force broad phase", s.BruteForce)

	y += panelMargin
	for _, line := range stats {
		drawTextEx(panelFontMono, line, labelX, int32(y), 14, colorTextMuted)
		y += rowHeight - 4
	}

	return s, s != g.settings
}
