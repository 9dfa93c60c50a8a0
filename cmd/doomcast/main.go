package main

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"doomcast/internal/config"
	"doomcast/internal/game"
)

const defaultConfigFile = "doomcast.json"

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Config: %v", err)
	}
	game.New(cfg).Run()
}

// loadConfig reads the config file named by the first argument, or doomcast.json when present,
// then applies environment overrides.
func loadConfig(args []string) (config.Config, error) {
	path, explicit := defaultConfigFile, false
	if len(args) > 0 {
		path, explicit = args[0], true
	}

	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		cfg, err = config.DefaultConfig(), nil
	}
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
