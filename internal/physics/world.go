package physics

import (
	"log"
	"time"

	"doomcast/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Config struct {
	TickInterval    time.Duration
	GravityModifier float32
	GravityDir      rl.Vector2
	BroadPhase      BroadPhase
}

func DefaultConfig() Config {
	return Config{
		TickInterval:    5 * time.Millisecond,
		GravityModifier: 0.1,
		GravityDir:      rl.NewVector2(0, 1),
		BroadPhase:      SweepAndPrune,
	}
}

// TickStats describes the most recent tick.
type TickStats struct {
	Bodies     int
	Candidates int
	Colliding  int
	Duration   time.Duration
}

type layerKey struct {
	a, b int
}

func makeLayerKey(a, b int) layerKey {
	if a > b {
		a, b = b, a
	}
	return layerKey{a, b}
}

// PhysicsWorld runs the fixed-interval collision simulation. It is single-threaded and must be
// driven from the same goroutine that mutates transforms. Collision callbacks must not add or
// remove bodies; flag the GameObject with Destroy and let the next tick drop it.
type PhysicsWorld struct {
	cfg   Config
	clock Clock

	bodies []*Body
	nextID uint64

	colliding []CollisionPair
	known     map[pairKey]struct{}
	layers    map[layerKey]bool

	lastUpdate      time.Duration
	lastLoggedCount int
	stats           TickStats
}

func NewPhysicsWorld(cfg Config, clock Clock) *PhysicsWorld {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	if cfg.BroadPhase == nil {
		cfg.BroadPhase = SweepAndPrune
	}
	if clock == nil {
		clock = NewSystemClock()
	}
	log.Printf("Physics: tick %v, gravity %.2f toward (%.0f, %.0f)", cfg.TickInterval, cfg.GravityModifier, cfg.GravityDir.X, cfg.GravityDir.Y)
	return &PhysicsWorld{
		cfg:        cfg,
		clock:      clock,
		known:      make(map[pairKey]struct{}),
		layers:     make(map[layerKey]bool),
		lastUpdate: clock.Now(),
	}
}

func (p *PhysicsWorld) Config() Config { return p.cfg }

func (p *PhysicsWorld) SetGravity(modifier float32, dir rl.Vector2) {
	p.cfg.GravityModifier = modifier
	p.cfg.GravityDir = dir
}

func (p *PhysicsWorld) SetBroadPhase(bp BroadPhase) {
	if bp != nil {
		p.cfg.BroadPhase = bp
	}
}

// AddBody registers a body. Adding the same body twice is a no-op.
func (p *PhysicsWorld) AddBody(b *Body) {
	if b.id != 0 {
		for _, existing := range p.bodies {
			if existing == b {
				return
			}
		}
	}
	p.nextID++
	b.id = p.nextID
	b.recalculate()
	p.bodies = append(p.bodies, b)

	if n := len(p.bodies); n%100 == 0 && n != p.lastLoggedCount {
		p.lastLoggedCount = n
		log.Printf("Physics: %d bodies", n)
	}
}

// RemoveBody unregisters a body. Partners of any pair it was part of get one exit callback.
func (p *PhysicsWorld) RemoveBody(b *Body) {
	for i, existing := range p.bodies {
		if existing == b {
			p.bodies = append(p.bodies[:i], p.bodies[i+1:]...)
			break
		}
	}

	kept := p.colliding[:0]
	for _, pair := range p.colliding {
		switch b {
		case pair.A:
			notifyExit(pair.B, pair.A)
		case pair.B:
			notifyExit(pair.A, pair.B)
		default:
			kept = append(kept, pair)
			continue
		}
		delete(p.known, pair.key())
	}
	p.colliding = kept
}

func (p *PhysicsWorld) Bodies() []*Body { return p.bodies }

// CollidingPairs returns the pairs currently in contact.
func (p *PhysicsWorld) CollidingPairs() []CollisionPair {
	out := make([]CollisionPair, len(p.colliding))
	copy(out, p.colliding)
	return out
}

func (p *PhysicsWorld) IsColliding(a, b *Body) bool {
	_, ok := p.known[keyOf(a, b)]
	return ok
}

func (p *PhysicsWorld) Stats() TickStats { return p.stats }

// SetLayerCollision enables or disables collisions between two layers. Order does not matter.
func (p *PhysicsWorld) SetLayerCollision(a, b int, enabled bool) {
	p.layers[makeLayerKey(a, b)] = enabled
}

func (p *PhysicsWorld) canCollide(a, b *Body) bool {
	if enabled, ok := p.layers[makeLayerKey(a.Layer, b.Layer)]; ok {
		return enabled
	}
	return true
}

// WillTick reports whether enough time has passed for Update to run a tick.
func (p *PhysicsWorld) WillTick() bool {
	return p.clock.Now()-p.lastUpdate > p.cfg.TickInterval
}

// Update runs at most one tick if the interval has elapsed and reports whether it did.
func (p *PhysicsWorld) Update() bool {
	if !p.WillTick() {
		return false
	}
	p.lastUpdate = p.clock.Now()
	p.Step()
	return true
}

// Step runs one tick unconditionally.
func (p *PhysicsWorld) Step() {
	started := time.Now()

	for _, b := range p.bodies {
		if b.UsesGravity {
			b.applyGravity(p.cfg.GravityModifier, p.cfg.GravityDir)
		}
		b.integrate()
		b.recalculate()
	}

	p.persistedPass()
	p.pruneDestroyed()

	candidates := p.cfg.BroadPhase(p.bodies, p.IsColliding)
	p.narrowPass(candidates)

	p.stats = TickStats{
		Bodies:     len(p.bodies),
		Candidates: len(candidates),
		Colliding:  len(p.colliding),
		Duration:   time.Since(started),
	}
}

func (p *PhysicsWorld) persistedPass() {
	kept := p.colliding[:0]
	for _, pair := range p.colliding {
		aGone, bGone := pair.A.destroyed(), pair.B.destroyed()
		if aGone || bGone {
			if aGone {
				notifyExit(pair.B, pair.A)
			}
			if bGone {
				notifyExit(pair.A, pair.B)
			}
			delete(p.known, pair.key())
			continue
		}

		impulse, ok := p.check(pair.A, pair.B)
		if !ok {
			notifyExit(pair.A, pair.B)
			notifyExit(pair.B, pair.A)
			delete(p.known, pair.key())
			continue
		}

		notifyStay(pair.A, pair.B)
		notifyStay(pair.B, pair.A)
		if !pair.A.PassThrough && !pair.B.PassThrough {
			separatePair(pair.A, pair.B, impulse)
		}
		kept = append(kept, pair)
	}
	for i := len(kept); i < len(p.colliding); i++ {
		p.colliding[i] = CollisionPair{}
	}
	p.colliding = kept
}

func (p *PhysicsWorld) pruneDestroyed() {
	kept := p.bodies[:0]
	for _, b := range p.bodies {
		if !b.destroyed() {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(p.bodies); i++ {
		p.bodies[i] = nil
	}
	p.bodies = kept
}

func (p *PhysicsWorld) narrowPass(candidates []CollisionPair) {
	for _, pair := range candidates {
		if _, ok := p.known[pair.key()]; ok {
			continue
		}
		impulse, ok := p.check(pair.A, pair.B)
		if !ok {
			continue
		}
		a, b := pair.A, pair.B

		if !a.PassThrough && !b.PassThrough {
			shareB := massShare(a, b)
			if a.ImpartForce {
				a.ImpartForces(b, shareB)
				a.ReduceForces(1 - shareB)
			}
			separatePair(a, b, impulse)
			if a.StopOnCollision {
				a.StopForces()
			}
			if b.StopOnCollision {
				b.StopForces()
			}
		}

		notifyEnter(a, b)
		notifyEnter(b, a)
		p.colliding = append(p.colliding, pair)
		p.known[pair.key()] = struct{}{}

		if a.ReflectOnCollision {
			a.ReflectForces(impulse)
		}
		if b.ReflectOnCollision {
			b.ReflectForces(impulse)
		}
	}
}

// check runs the layer filter and then every collider of a against every collider of b, returning
// the first penetration vector found. The vector moves a out of b.
func (p *PhysicsWorld) check(a, b *Body) (rl.Vector2, bool) {
	if !p.canCollide(a, b) {
		return rl.Vector2{}, false
	}
	for _, ca := range a.colliders {
		for _, cb := range b.colliders {
			if impulse, ok := ca.Collide(cb); ok {
				return impulse, true
			}
		}
	}
	return rl.Vector2{}, false
}

// massShare is the fraction of the separation that b absorbs. A kinematic a makes b absorb all of it.
func massShare(a, b *Body) float32 {
	if a.Kinematic {
		return 1
	}
	total := a.Mass + b.Mass
	if total <= 0 {
		return 0.5
	}
	return a.Mass / total
}

// separatePair moves b by -impulse*share and a by the remainder. Kinematic bodies never move.
func separatePair(a, b *Body, impulse rl.Vector2) {
	shareB := massShare(a, b)
	shareA := 1 - shareB
	if b.Kinematic {
		shareA = 1
	}
	if !b.Kinematic {
		b.translate(rl.Vector2Scale(impulse, -shareB))
	}
	if !a.Kinematic {
		a.translate(rl.Vector2Scale(impulse, shareA))
	}
	a.recalculate()
	b.recalculate()
}

func notifyEnter(b, other *Body) {
	parent, otherParent := b.GetGameObject(), other.GetGameObject()
	if parent == nil {
		return
	}
	for _, comp := range parent.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionEnter(otherParent)
		}
	}
}

func notifyStay(b, other *Body) {
	parent, otherParent := b.GetGameObject(), other.GetGameObject()
	if parent == nil {
		return
	}
	for _, comp := range parent.Components() {
		if handler, ok := comp.(engine.CollisionStayHandler); ok {
			handler.OnCollisionStay(otherParent)
		}
	}
}

func notifyExit(b, other *Body) {
	parent, otherParent := b.GetGameObject(), other.GetGameObject()
	if parent == nil {
		return
	}
	for _, comp := range parent.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionExit(otherParent)
		}
	}
}
