package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"doomcast/internal/camera"
	"doomcast/internal/components"
	"doomcast/internal/engine"
	"doomcast/internal/geom"
	"doomcast/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Collision layers used by level objects.
const (
	LayerDefault = 0
	LayerPlayer  = 1
	LayerWall    = 2
)

// PlayerTag marks the player object. Doors and pickups trigger on it by default.
const PlayerTag = "player"

// --- JSON types ---

type LevelFile struct {
	Name           string      `json:"name"`
	FloorTexture   string      `json:"floorTexture,omitempty"`
	CeilingTexture string      `json:"ceilingTexture,omitempty"`
	Player         PlayerDef   `json:"player"`
	Walls          []WallDef   `json:"walls"`
	Objects        []ObjectDef `json:"objects"`
}

type PlayerDef struct {
	Position  [2]float32 `json:"position"`
	Rotation  float32    `json:"rotation"`
	Radius    float32    `json:"radius,omitempty"`
	MoveSpeed float32    `json:"moveSpeed,omitempty"`
}

// WallDef is a static segment. Walls go into the render grid and get a kinematic body.
type WallDef struct {
	From      [2]float32 `json:"from"`
	To        [2]float32 `json:"to"`
	Texture   string     `json:"texture"`
	Wrap      string     `json:"wrap,omitempty"`
	WrapValue float32    `json:"wrapValue,omitempty"`
	Height    float32    `json:"height,omitempty"`
}

type ObjectDef struct {
	Name       string            `json:"name"`
	Tags       []string          `json:"tags,omitempty"`
	Position   [2]float32        `json:"position"`
	Rotation   float32           `json:"rotation"`
	Components []json.RawMessage `json:"components"`
}

type componentHeader struct {
	Type string `json:"type"`
}

// segmentDef endpoints are relative to the object position.
type segmentDef struct {
	From        [2]float32 `json:"from"`
	To          [2]float32 `json:"to"`
	Texture     string     `json:"texture"`
	Transparent bool       `json:"transparent,omitempty"`
	Wrap        string     `json:"wrap,omitempty"`
	WrapValue   float32    `json:"wrapValue,omitempty"`
	Height      float32    `json:"height,omitempty"`
	OffsetY     float32    `json:"offsetY,omitempty"`
}

type keyframeDef struct {
	Offset        [2]float32 `json:"offset"`
	Size          [2]float32 `json:"size"`
	ScreenOffsetY float32    `json:"screenOffsetY,omitempty"`
}

type animationDef struct {
	Name     string        `json:"name"`
	Texture  string        `json:"texture"`
	Duration float32       `json:"duration"` // seconds
	Loop     bool          `json:"loop,omitempty"`
	Frames   []keyframeDef `json:"frames"`
}

type spriteDef struct {
	Texture    string         `json:"texture"`
	Width      float32        `json:"width"`
	Height     float32        `json:"height,omitempty"`
	Offset     [2]float32     `json:"offset,omitempty"`
	Animations []animationDef `json:"animations,omitempty"`
	Autoplay   string         `json:"autoplay,omitempty"`
}

type colliderDef struct {
	Shape  string     `json:"shape"` // circle, rect or segment
	Offset [2]float32 `json:"offset,omitempty"`
	Radius float32    `json:"radius,omitempty"`
	Size   [2]float32 `json:"size,omitempty"`
}

type bodyDef struct {
	Mass               float32       `json:"mass,omitempty"`
	Drag               float32       `json:"drag,omitempty"`
	Kinematic          bool          `json:"kinematic,omitempty"`
	Layer              int           `json:"layer,omitempty"`
	PassThrough        bool          `json:"passThrough,omitempty"`
	UsesGravity        bool          `json:"gravity,omitempty"`
	StopOnCollision    bool          `json:"stopOnCollision,omitempty"`
	ReflectOnCollision bool          `json:"reflectOnCollision,omitempty"`
	ImpartForce        bool          `json:"impartForce,omitempty"`
	Colliders          []colliderDef `json:"colliders"`
}

type scriptDef struct {
	Name  string         `json:"name"`
	Props map[string]any `json:"props,omitempty"`
}

func vec(v [2]float32) rl.Vector2 {
	return rl.NewVector2(v[0], v[1])
}

// --- Loading ---

// LoadLevel replaces the world contents with a level file.
func (w *World) LoadLevel(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read level: %w", err)
	}

	var lf LevelFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return fmt.Errorf("parse level %s: %w", path, err)
	}

	err = w.BuildLevel(lf)
	w.Level = path
	if err != nil {
		return fmt.Errorf("build level %s: %w", path, err)
	}
	return nil
}

// BuildLevel replaces the world contents with an already decoded level. Objects that fail to
// build are skipped and reported together in the returned error; the rest of the level loads.
func (w *World) BuildLevel(lf LevelFile) error {
	started := time.Now()
	w.Clear()

	opts := w.Renderer.Options()
	if lf.FloorTexture != "" {
		opts.FloorTexture = lf.FloorTexture
	}
	if lf.CeilingTexture != "" {
		opts.CeilingTexture = lf.CeilingTexture
	}
	w.Renderer.SetOptions(opts)
	w.Physics.SetLayerCollision(LayerWall, LayerWall, false)

	walls := make([]*geom.Segment, 0, len(lf.Walls))
	for i, def := range lf.Walls {
		seg := geom.NewSegmentBetween(vec(def.From), vec(def.To))
		seg.Texture = def.Texture
		applyWrap(seg, def.Wrap, def.WrapValue)
		if def.Height > 0 {
			seg.Height = def.Height
		}
		walls = append(walls, seg)

		g := engine.NewGameObject(fmt.Sprintf("Wall_%d", i))
		g.Tags = []string{"wall"}
		g.Transform.Position = seg.Position()
		body := physics.NewBody()
		body.Kinematic = true
		body.Layer = LayerWall
		g.AddComponent(body)
		body.AddSegmentCollider(seg)
		w.Spawn(g)
	}
	g := w.Renderer.ConstructStaticGrid(walls)

	var errs []error
	for _, def := range lf.Objects {
		obj, err := w.buildObject(def)
		if err != nil {
			errs = append(errs, fmt.Errorf("object %q: %w", def.Name, err))
			continue
		}
		w.Spawn(obj)
	}

	w.spawnPlayer(lf.Player)

	log.Printf("World: level %q, %d walls in %d cells, %d objects, built in %v",
		lf.Name, len(walls), g.CellCount(), len(w.Scene.GameObjects)-len(walls), time.Since(started).Round(time.Microsecond))
	return errors.Join(errs...)
}

func applyWrap(seg *geom.Segment, mode string, value float32) {
	if mode != "" {
		seg.Wrap = geom.ParseWrapMode(mode)
	}
	if value > 0 {
		seg.WrapValue = value
	}
}

func (w *World) spawnPlayer(def PlayerDef) {
	g := engine.NewGameObject("Player")
	g.Tags = []string{PlayerTag}
	g.Transform.Position = vec(def.Position)
	g.Transform.Rotation = def.Rotation

	cam := camera.New(w.input)
	if def.MoveSpeed > 0 {
		cam.MoveSpeed = def.MoveSpeed
	}
	g.AddComponent(cam)

	radius := def.Radius
	if radius <= 0 {
		radius = 16
	}
	body := physics.NewBody()
	body.Layer = LayerPlayer
	body.StopOnCollision = true
	g.AddComponent(body)
	body.AddCircleCollider(rl.Vector2{}, radius)

	shooter := components.NewShooter()
	shooter.Fire, shooter.Launch = w.fire, w.launch
	shooter.IgnoreLayers = []int{LayerPlayer}
	g.AddComponent(shooter)

	w.Spawn(g)
	w.SetPlayer(g)
}

func (w *World) buildObject(def ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	g.Transform.Position = vec(def.Position)
	g.Transform.Rotation = def.Rotation

	var seg *geom.Segment
	for _, raw := range def.Components {
		var header componentHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("component header: %w", err)
		}

		var err error
		switch header.Type {
		case "Segment":
			seg, err = loadSegment(g, raw)
		case "Sprite":
			err = loadSprite(g, raw)
		case "Body":
			err = loadBody(g, raw, seg)
		case "Script":
			err = loadScript(g, raw)
		default:
			err = fmt.Errorf("unknown component type %q", header.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", header.Type, err)
		}
	}
	return g, nil
}

func loadSegment(g *engine.GameObject, raw json.RawMessage) (*geom.Segment, error) {
	var def segmentDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, err
	}
	origin := g.Transform.Position
	seg := geom.NewSegmentBetween(rl.Vector2Add(origin, vec(def.From)), rl.Vector2Add(origin, vec(def.To)))
	seg.Texture = def.Texture
	seg.Transparent = def.Transparent
	seg.OffsetY = def.OffsetY
	applyWrap(seg, def.Wrap, def.WrapValue)
	if def.Height > 0 {
		seg.Height = def.Height
	}
	g.AddComponent(components.NewSegmentRenderer(seg))
	return seg, nil
}

func loadSprite(g *engine.GameObject, raw json.RawMessage) error {
	var def spriteDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return err
	}
	if def.Width <= 0 {
		return errors.New("sprite width must be positive")
	}
	sp := components.NewSprite(def.Texture, def.Width)
	sp.Offset = vec(def.Offset)
	if def.Height > 0 {
		sp.Billboard.Height = def.Height
	}
	for _, a := range def.Animations {
		anim := &engine.SpriteAnimation{
			Name:     a.Name,
			Texture:  a.Texture,
			Duration: time.Duration(float64(a.Duration) * float64(time.Second)),
			Mode:     engine.PlayOnce,
		}
		if a.Loop {
			anim.Mode = engine.PlayLoop
		}
		for _, f := range a.Frames {
			anim.Frames = append(anim.Frames, engine.Keyframe{
				Offset:        vec(f.Offset),
				Size:          vec(f.Size),
				ScreenOffsetY: f.ScreenOffsetY,
			})
		}
		sp.AddAnimation(anim)
	}
	if def.Autoplay != "" {
		sp.Autoplay(def.Autoplay)
	}
	g.AddComponent(sp)
	return nil
}

// loadBody builds a body. A segment collider wraps the object's Segment component, which must come
// before the Body in the component list.
func loadBody(g *engine.GameObject, raw json.RawMessage, seg *geom.Segment) error {
	var def bodyDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return err
	}
	body := physics.NewBody()
	if def.Mass > 0 {
		body.Mass = def.Mass
	}
	body.Drag = def.Drag
	body.Kinematic = def.Kinematic
	body.Layer = def.Layer
	body.PassThrough = def.PassThrough
	body.UsesGravity = def.UsesGravity
	body.StopOnCollision = def.StopOnCollision
	body.ReflectOnCollision = def.ReflectOnCollision
	body.ImpartForce = def.ImpartForce
	g.AddComponent(body)

	for _, c := range def.Colliders {
		switch c.Shape {
		case "circle":
			if c.Radius <= 0 {
				return errors.New("circle collider needs a positive radius")
			}
			body.AddCircleCollider(vec(c.Offset), c.Radius)
		case "rect":
			body.AddRectCollider(vec(c.Offset), vec(c.Size))
		case "segment":
			if seg == nil {
				return errors.New("segment collider without a Segment component")
			}
			body.AddSegmentCollider(seg)
		default:
			return fmt.Errorf("unknown collider shape %q", c.Shape)
		}
	}
	return nil
}

func loadScript(g *engine.GameObject, raw json.RawMessage) error {
	var def scriptDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return err
	}
	comp, err := engine.CreateScript(def.Name, def.Props)
	if err != nil {
		return err
	}
	g.AddComponent(comp)
	return nil
}
