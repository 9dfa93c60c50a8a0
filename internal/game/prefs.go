package game

import (
	"encoding/json"
	"fmt"
	"os"
)

// Prefs hold window placement and debug view state saved between sessions.
type Prefs struct {
	WindowWidth  int      `json:"windowWidth"`
	WindowHeight int      `json:"windowHeight"`
	WindowX      int      `json:"windowX"`
	WindowY      int      `json:"windowY"`
	Level        string   `json:"level"`
	ShowPanel    bool     `json:"showPanel"`
	ShowMap      bool     `json:"showMap"`
	Settings     Settings `json:"settings"`
}

const prefsFile = ".doomcast_prefs.json"

// LoadPrefs reads preferences from path. A missing or unreadable file yields nil.
func LoadPrefs(path string) *Prefs {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var prefs Prefs
	if err := json.Unmarshal(data, &prefs); err != nil {
		fmt.Printf("Failed to parse prefs: %v\n", err)
		return nil
	}
	return &prefs
}

func SavePrefs(path string, prefs Prefs) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
