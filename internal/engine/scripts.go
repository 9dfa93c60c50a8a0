package engine

import (
	"fmt"
	"sort"
)

// ScriptFactory creates a Component from level-file props.
type ScriptFactory func(props map[string]any) Component

var scriptRegistry = map[string]ScriptFactory{}

// RegisterScript registers a named script factory. Registering a name twice panics.
func RegisterScript(name string, factory ScriptFactory) {
	if _, exists := scriptRegistry[name]; exists {
		panic(fmt.Sprintf("script %q already registered", name))
	}
	scriptRegistry[name] = factory
}

// CreateScript looks up a registered script by name and creates it with the given props.
func CreateScript(name string, props map[string]any) (Component, error) {
	factory, ok := scriptRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown script %q", name)
	}
	return factory(props), nil
}

// GetRegisteredScripts returns the sorted names of all registered scripts.
func GetRegisteredScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PropFloat reads a numeric prop decoded from JSON, falling back to def.
func PropFloat(props map[string]any, key string, def float32) float32 {
	if v, ok := props[key].(float64); ok {
		return float32(v)
	}
	return def
}

// PropString reads a string prop, falling back to def.
func PropString(props map[string]any, key, def string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return def
}
