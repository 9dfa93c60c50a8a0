package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaylibSurface draws to the current raylib render target. The caller owns BeginDrawing and
// EndDrawing.
type RaylibSurface struct{}

func NewRaylibSurface() *RaylibSurface {
	return &RaylibSurface{}
}

func (s *RaylibSurface) Size() (int, int) {
	return int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
}

func (s *RaylibSurface) Clear(c rl.Color) {
	rl.ClearBackground(c)
}

func (s *RaylibSurface) FillRect(x, y, width, height int, c rl.Color) {
	rl.DrawRectangle(int32(x), int32(y), int32(width), int32(height), c)
}

func (s *RaylibSurface) DrawLine(a, b rl.Vector2, c rl.Color) {
	rl.DrawLineV(a, b, c)
}

func (s *RaylibSurface) DrawCircle(center rl.Vector2, radius float32, c rl.Color) {
	rl.DrawCircleLines(int32(center.X), int32(center.Y), radius, c)
}

func (s *RaylibSurface) DrawColumn(tex Texture, src rl.Rectangle, x, y, height int, tint rl.Color) {
	dst := rl.NewRectangle(float32(x), float32(y), 1, float32(height))
	rl.DrawTexturePro(tex.Handle, src, dst, rl.Vector2{}, 0, tint)
}

// DrawQuad submits a textured quad straight to rlgl. Culling is off because projected floor
// quads can come out in either winding.
func (s *RaylibSurface) DrawQuad(tex Texture, v [4]QuadVertex, tint rl.Color) {
	rl.DisableBackfaceCulling()
	rl.SetTexture(tex.Handle.ID)
	rl.Begin(rl.Quads)
	rl.Color4ub(tint.R, tint.G, tint.B, tint.A)
	for _, vert := range v {
		rl.TexCoord2f(vert.UV.X, vert.UV.Y)
		rl.Vertex2f(vert.Position.X, vert.Position.Y)
	}
	rl.End()
	rl.SetTexture(0)
	rl.EnableBackfaceCulling()
}

func (s *RaylibSurface) DrawText(text string, x, y, size int, c rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), c)
}

func (s *RaylibSurface) Present() {
	rl.DrawRenderBatchActive()
}
