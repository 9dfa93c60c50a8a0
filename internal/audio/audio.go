// Package audio plays positional sounds on the ground plane. Volume falls off with distance from
// the listener and pan follows the angle to the listener's right.
package audio

import (
	"math"
	"sync"

	"doomcast/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Listener is the ear of the world, usually the camera.
type Listener struct {
	Position rl.Vector2
	Forward  rl.Vector2
}

// Right is the listener's right hand side in y-down world coordinates.
func (l Listener) Right() rl.Vector2 {
	return rl.NewVector2(-l.Forward.Y, l.Forward.X)
}

// Source is a sound placed in the world.
type Source struct {
	ID          uint64
	Position    rl.Vector2
	Sound       rl.Sound
	Volume      float32
	MaxDistance float32
	Loop        bool
	Spatial     bool
	OneShot     bool // removed once it stops playing
	playing     bool
}

// Device is the playback backend. Raylib implements it in production.
type Device interface {
	Play(s rl.Sound)
	Stop(s rl.Sound)
	IsPlaying(s rl.Sound) bool
	SetVolume(s rl.Sound, v float32)
	SetPan(s rl.Sound, pan float32)
}

type raylibDevice struct{}

func (raylibDevice) Play(s rl.Sound)                 { rl.PlaySound(s) }
func (raylibDevice) Stop(s rl.Sound)                 { rl.StopSound(s) }
func (raylibDevice) IsPlaying(s rl.Sound) bool       { return rl.IsSoundPlaying(s) }
func (raylibDevice) SetVolume(s rl.Sound, v float32) { rl.SetSoundVolume(s, v) }
func (raylibDevice) SetPan(s rl.Sound, pan float32)  { rl.SetSoundPan(s, pan) }

// Manager owns the playing sources. It does not own the sounds, those belong to the asset cache.
type Manager struct {
	mu       sync.Mutex
	device   Device
	listener Listener
	sources  map[uint64]*Source
	nextID   uint64

	MasterVolume float32
	MaxDistance  float32
}

// NewManager creates a manager on device. A nil device means raylib, whose audio device the
// caller opens with rl.InitAudioDevice.
func NewManager(device Device, maxDistance float32) *Manager {
	if device == nil {
		device = raylibDevice{}
	}
	return &Manager{
		device:       device,
		listener:     Listener{Forward: rl.NewVector2(1, 0)},
		sources:      make(map[uint64]*Source),
		MasterVolume: 1,
		MaxDistance:  maxDistance,
	}
}

// SetListener updates the listener. A zero forward vector keeps the previous heading.
func (m *Manager) SetListener(pos, forward rl.Vector2) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listener.Position = pos
	if rl.Vector2Length(forward) > 0.001 {
		m.listener.Forward = rl.Vector2Normalize(forward)
	}
}

// Add registers a source without starting it.
func (m *Manager) Add(sound rl.Sound, pos rl.Vector2) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.sources[m.nextID] = &Source{
		ID:          m.nextID,
		Position:    pos,
		Sound:       sound,
		Volume:      1,
		MaxDistance: m.MaxDistance,
		Spatial:     true,
	}
	return m.nextID
}

// PlayAt starts a one-shot sound at pos.
func (m *Manager) PlayAt(sound rl.Sound, pos rl.Vector2) uint64 {
	id := m.Add(sound, pos)
	m.mu.Lock()
	defer m.mu.Unlock()

	src := m.sources[id]
	src.OneShot = true
	m.apply(src)
	m.device.Play(src.Sound)
	src.playing = true
	return id
}

func (m *Manager) Play(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if src, ok := m.sources[id]; ok {
		m.apply(src)
		m.device.Play(src.Sound)
		src.playing = true
	}
}

func (m *Manager) Stop(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if src, ok := m.sources[id]; ok {
		m.device.Stop(src.Sound)
		src.playing = false
	}
}

// Source returns a copy of the source state.
func (m *Manager) Source(id uint64) (Source, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.sources[id]
	if !ok {
		return Source{}, false
	}
	return *src, true
}

func (m *Manager) SetSourcePosition(id uint64, pos rl.Vector2) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if src, ok := m.sources[id]; ok {
		src.Position = pos
	}
}

func (m *Manager) SetSourceLoop(id uint64, loop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if src, ok := m.sources[id]; ok {
		src.Loop = loop
	}
}

func (m *Manager) Remove(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if src, ok := m.sources[id]; ok {
		m.device.Stop(src.Sound)
		delete(m.sources, id)
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sources)
}

// Update refreshes volume and pan of every playing source, restarts loops and drops finished
// one-shots.
func (m *Manager) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, src := range m.sources {
		if !src.playing {
			continue
		}
		if !m.device.IsPlaying(src.Sound) {
			if !src.Loop {
				src.playing = false
				if src.OneShot {
					delete(m.sources, id)
				}
				continue
			}
			m.device.Play(src.Sound)
		}
		m.apply(src)
	}
}

func (m *Manager) apply(src *Source) {
	volume, pan := src.Volume, float32(0.5)
	if src.Spatial {
		volume, pan = Spatialize(m.listener, src.Position, src.Volume, src.MaxDistance)
	}
	m.device.SetVolume(src.Sound, volume*m.MasterVolume)
	m.device.SetPan(src.Sound, pan)
}

// Spatialize returns the volume and pan for a sound at pos. Pan is 0 on the far left, 0.5 in
// front and 1 on the far right. Sounds behind the listener are slightly quieter.
func Spatialize(l Listener, pos rl.Vector2, volume, maxDistance float32) (float32, float32) {
	toSource := rl.Vector2Subtract(pos, l.Position)
	distance := rl.Vector2Length(toSource)

	if maxDistance > 0 {
		if distance >= maxDistance {
			return 0, 0.5
		}
		volume *= 1 - distance/maxDistance
	}
	if distance < 0.001 {
		return volume, 0.5
	}

	dir := rl.Vector2Scale(toSource, 1/distance)
	pan := geom.Clamp(0.5+rl.Vector2DotProduct(dir, l.Right())*0.5, 0, 1)

	if front := rl.Vector2DotProduct(dir, l.Forward); front < 0 {
		volume *= 0.7 + 0.3*float32(math.Abs(float64(front)))
	}
	return volume, pan
}
