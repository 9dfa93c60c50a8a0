// Package assets caches textures and sounds loaded from an asset root.
package assets

import (
	"log"
	"os"
	"path/filepath"

	"doomcast/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Manager struct {
	root     string
	textures map[string]render.Texture
	missing  map[string]bool
	sounds   map[string]rl.Sound

	loadTexture   func(path string) rl.Texture2D
	unloadTexture func(rl.Texture2D)
	loadSound     func(path string) rl.Sound
	unloadSound   func(rl.Sound)
}

// New creates a manager that resolves names relative to root. Nothing is loaded until first use,
// and loading needs an open raylib window.
func New(root string) *Manager {
	return &Manager{
		root:          root,
		textures:      make(map[string]render.Texture),
		missing:       make(map[string]bool),
		sounds:        make(map[string]rl.Sound),
		loadTexture:   rl.LoadTexture,
		unloadTexture: rl.UnloadTexture,
		loadSound:     rl.LoadSound,
		unloadSound:   rl.UnloadSound,
	}
}

func (m *Manager) Root() string { return m.root }

// Path resolves an asset name against the root. Absolute names are returned unchanged.
func (m *Manager) Path(name string) string {
	if filepath.IsAbs(name) || m.root == "" {
		return name
	}
	return filepath.Join(m.root, name)
}

// Texture returns the texture for name, loading it on first use. Names that fail to load are
// remembered and reported once.
func (m *Manager) Texture(name string) (render.Texture, bool) {
	if tex, ok := m.textures[name]; ok {
		return tex, true
	}
	if name == "" || m.missing[name] {
		return render.Texture{}, false
	}

	path := m.Path(name)
	if _, err := os.Stat(path); err != nil {
		log.Printf("Assets: texture %s: %v", name, err)
		m.missing[name] = true
		return render.Texture{}, false
	}

	handle := m.loadTexture(path)
	if handle.ID == 0 {
		log.Printf("Assets: texture %s could not be decoded", name)
		m.missing[name] = true
		return render.Texture{}, false
	}

	tex := render.Texture{Width: float32(handle.Width), Height: float32(handle.Height), Handle: handle}
	m.textures[name] = tex
	return tex, true
}

// Sound returns the sound for name, loading it on first use.
func (m *Manager) Sound(name string) (rl.Sound, bool) {
	if s, ok := m.sounds[name]; ok {
		return s, true
	}
	if name == "" || m.missing[name] {
		return rl.Sound{}, false
	}

	path := m.Path(name)
	if _, err := os.Stat(path); err != nil {
		log.Printf("Assets: sound %s: %v", name, err)
		m.missing[name] = true
		return rl.Sound{}, false
	}

	s := m.loadSound(path)
	m.sounds[name] = s
	return s, true
}

func (m *Manager) TextureCount() int { return len(m.textures) }

// Unload releases everything loaded so far. The manager can be used again afterwards.
func (m *Manager) Unload() {
	for _, tex := range m.textures {
		m.unloadTexture(tex.Handle)
	}
	for _, s := range m.sounds {
		m.unloadSound(s)
	}
	m.textures = make(map[string]render.Texture)
	m.sounds = make(map[string]rl.Sound)
	m.missing = make(map[string]bool)
}
