package components

import (
	"time"

	"doomcast/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterScript("Door", doorFactory)
	engine.RegisterScript("Pickup", pickupFactory)
	engine.RegisterScript("Patrol", patrolFactory)
	engine.RegisterScript("Projectile", projectileFactory)
	engine.RegisterScript("Shooter", shooterFactory)
}

// propSeconds reads a duration given in seconds.
func propSeconds(props map[string]any, key string, def time.Duration) time.Duration {
	v, ok := props[key].(float64)
	if !ok {
		return def
	}
	return time.Duration(v * float64(time.Second))
}

func propEase(props map[string]any, def engine.EaseFunc) engine.EaseFunc {
	if ease, ok := engine.Eases[engine.PropString(props, "ease", "")]; ok {
		return ease
	}
	return def
}

func doorFactory(props map[string]any) engine.Component {
	d := NewDoor(rl.NewVector2(engine.PropFloat(props, "slideX", 0), engine.PropFloat(props, "slideY", 0)))
	d.Duration = propSeconds(props, "duration", d.Duration)
	d.HoldOpen = propSeconds(props, "holdOpen", d.HoldOpen)
	d.Trigger = engine.PropString(props, "trigger", d.Trigger)
	d.Sound = engine.PropString(props, "sound", "")
	d.Ease = propEase(props, d.Ease)
	return d
}

func pickupFactory(props map[string]any) engine.Component {
	p := NewPickup()
	p.Collector = engine.PropString(props, "collector", p.Collector)
	p.Sound = engine.PropString(props, "sound", "")
	return p
}

func patrolFactory(props map[string]any) engine.Component {
	p := NewPatrol(
		rl.NewVector2(engine.PropFloat(props, "dx", 0), engine.PropFloat(props, "dy", 0)),
		propSeconds(props, "duration", 2*time.Second),
	)
	p.Ease = propEase(props, p.Ease)
	return p
}

func projectileFactory(props map[string]any) engine.Component {
	return NewProjectile(propSeconds(props, "lifetime", 2*time.Second))
}

func shooterFactory(props map[string]any) engine.Component {
	s := NewShooter()
	s.Cooldown = propSeconds(props, "cooldown", s.Cooldown)
	s.HitSound = engine.PropString(props, "hitSound", "")
	s.ProjectileSprite = engine.PropString(props, "projectileSprite", "")
	s.ProjectileSpeed = engine.PropFloat(props, "projectileSpeed", s.ProjectileSpeed)
	return s
}
