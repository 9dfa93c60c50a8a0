// Package config holds the settings for the game binary: window, render, physics and asset paths.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"doomcast/internal/physics"
	"doomcast/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Environment variables read by ApplyEnv.
const (
	EnvGravityModifier = "DOOMCAST_GRAVITY_MODIFIER"
	EnvGravityDir      = "DOOMCAST_GRAVITY_DIR"
	EnvTickMS          = "DOOMCAST_TICK_MS"
	EnvFOV             = "DOOMCAST_FOV"
)

type Config struct {
	Window  WindowConfig  `json:"window"`
	Render  RenderConfig  `json:"render"`
	Physics PhysicsConfig `json:"physics"`
	Audio   AudioConfig   `json:"audio"`

	// AssetRoot is prepended to every texture and sound path.
	AssetRoot string `json:"assetRoot"`
	// Level is the level file loaded at startup.
	Level string `json:"level"`
}

type WindowConfig struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Title     string `json:"title"`
	TargetFPS int    `json:"targetFps"`
}

type RenderConfig struct {
	FOV                 float32    `json:"fov"`
	RenderDistance      float32    `json:"renderDistance"`
	MaxTransparentDepth int        `json:"maxTransparentDepth"`
	LODCutoffs          [4]float32 `json:"lodCutoffs"`
	FloorTexture        string     `json:"floorTexture"`
	CeilingTexture      string     `json:"ceilingTexture"`
	Fog                 bool       `json:"fog"`
	FogStart            float32    `json:"fogStart"`
	FogEnd              float32    `json:"fogEnd"`
	Workers             int        `json:"workers"`
}

type PhysicsConfig struct {
	TickMS          int        `json:"tickMs"`
	GravityModifier float32    `json:"gravityModifier"`
	GravityDir      [2]float32 `json:"gravityDir"`
	// BroadPhase is "sap" or "brute".
	BroadPhase string `json:"broadPhase"`
}

type AudioConfig struct {
	Enabled      bool    `json:"enabled"`
	MasterVolume float32 `json:"masterVolume"`
	// Falloff is the distance at which a positional sound becomes silent.
	Falloff float32 `json:"falloff"`
}

func DefaultConfig() Config {
	ro := render.DefaultOptions()
	po := physics.DefaultConfig()
	return Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "doomcast",
			TargetFPS: 60,
		},
		Render: RenderConfig{
			FOV:                 ro.FOV,
			RenderDistance:      ro.RenderDistance,
			MaxTransparentDepth: ro.MaxTransparentDepth,
			LODCutoffs:          ro.LODCutoffs,
			FogStart:            ro.Fog.Start,
			FogEnd:              ro.Fog.End,
		},
		Physics: PhysicsConfig{
			TickMS:          int(po.TickInterval / time.Millisecond),
			GravityModifier: po.GravityModifier,
			GravityDir:      [2]float32{po.GravityDir.X, po.GravityDir.Y},
			BroadPhase:      "sap",
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 1,
			Falloff:      1500,
		},
		AssetRoot: "assets",
		Level:     "assets/levels/demo.json",
	}
}

// Load overlays the JSON file at path on top of DefaultConfig. Fields missing from the file keep
// their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from DOOMCAST_* environment variables. Malformed values are reported
// and leave the field unchanged.
func (c *Config) ApplyEnv() error {
	var errs []error

	if v, ok := os.LookupEnv(EnvGravityModifier); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvGravityModifier, err))
		} else {
			c.Physics.GravityModifier = float32(f)
		}
	}

	if v, ok := os.LookupEnv(EnvGravityDir); ok {
		dir, err := parseVector(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvGravityDir, err))
		} else {
			c.Physics.GravityDir = dir
		}
	}

	if v, ok := os.LookupEnv(EnvTickMS); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", EnvTickMS, err))
		case n <= 0:
			errs = append(errs, fmt.Errorf("%s: tick must be positive, got %d", EnvTickMS, n))
		default:
			c.Physics.TickMS = n
		}
	}

	if v, ok := os.LookupEnv(EnvFOV); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvFOV, err))
		} else {
			c.Render.FOV = float32(f)
		}
	}

	return errors.Join(errs...)
}

func parseVector(s string) ([2]float32, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return [2]float32{}, fmt.Errorf("want \"x,y\", got %q", s)
	}
	var out [2]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return [2]float32{}, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// Validate reports settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov %v out of (0, 180)", c.Render.FOV))
	}
	if c.Physics.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("physics tick %dms", c.Physics.TickMS))
	}
	switch c.Physics.BroadPhase {
	case "", "sap", "brute":
	default:
		errs = append(errs, fmt.Errorf("unknown broad phase %q", c.Physics.BroadPhase))
	}
	return errors.Join(errs...)
}

// RenderOptions converts the render section for the renderer.
func (c Config) RenderOptions() render.Options {
	o := render.DefaultOptions()
	o.FOV = c.Render.FOV
	o.RenderDistance = c.Render.RenderDistance
	o.MaxTransparentDepth = c.Render.MaxTransparentDepth
	o.LODCutoffs = c.Render.LODCutoffs
	o.FloorTexture = c.Render.FloorTexture
	o.CeilingTexture = c.Render.CeilingTexture
	o.Fog.Enabled = c.Render.Fog
	o.Fog.Start = c.Render.FogStart
	o.Fog.End = c.Render.FogEnd
	o.Workers = c.Render.Workers
	return o
}

// PhysicsConfig converts the physics section for the physics world.
func (c Config) PhysicsConfig() physics.Config {
	p := physics.DefaultConfig()
	p.TickInterval = time.Duration(c.Physics.TickMS) * time.Millisecond
	p.GravityModifier = c.Physics.GravityModifier
	p.GravityDir = rl.NewVector2(c.Physics.GravityDir[0], c.Physics.GravityDir[1])
	if c.Physics.BroadPhase == "brute" {
		p.BroadPhase = physics.BruteForce
	}
	return p
}
