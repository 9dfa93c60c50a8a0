package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Texture is a loaded image the surface can sample from.
type Texture struct {
	Width  float32
	Height float32
	Handle rl.Texture2D
}

// TextureSource resolves texture names used by segments and render options.
type TextureSource interface {
	Texture(name string) (Texture, bool)
}

// QuadVertex is a screen-space vertex with normalized texture coordinates.
type QuadVertex struct {
	Position rl.Vector2
	UV       rl.Vector2
}

// Surface is the drawing target of the renderer. Calls come from a single goroutine.
type Surface interface {
	Size() (width, height int)
	Clear(c rl.Color)
	FillRect(x, y, width, height int, c rl.Color)
	DrawLine(a, b rl.Vector2, c rl.Color)
	DrawCircle(center rl.Vector2, radius float32, c rl.Color)
	// DrawColumn stretches src over the 1-pixel wide screen column at x, from y to y+height.
	DrawColumn(tex Texture, src rl.Rectangle, x, y, height int, tint rl.Color)
	DrawQuad(tex Texture, v [4]QuadVertex, tint rl.Color)
	DrawText(text string, x, y, size int, c rl.Color)
	Present()
}

// Camera is the viewpoint the scene is rendered from.
type Camera interface {
	Position() rl.Vector2
	Direction() rl.Vector2
}
