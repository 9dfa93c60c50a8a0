package game

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type dropKind int

const (
	dropUnsupported dropKind = iota
	dropLevel
	dropTexture
	dropSound
)

// classifyDrop maps a dropped file to what the game does with it and, for assets, the
// subdirectory of the asset root it is copied into.
func classifyDrop(path string) (dropKind, string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return dropLevel, ""
	case ".png", ".jpg", ".bmp":
		return dropTexture, "textures"
	case ".wav", ".ogg", ".mp3":
		return dropSound, "sounds"
	}
	return dropUnsupported, ""
}

// handleFileDrop loads dropped levels and imports dropped textures and sounds
func (g *Game) handleFileDrop() {
	if !rl.IsFileDropped() {
		return
	}

	files := rl.LoadDroppedFiles()
	defer rl.UnloadDroppedFiles()

	for _, file := range files {
		kind, dir := classifyDrop(file)
		switch kind {
		case dropLevel:
			g.loadLevel(file)
		case dropTexture, dropSound:
			dst, err := importAsset(file, filepath.Join(g.cfg.AssetRoot, dir))
			if err != nil {
				g.notify(fmt.Sprintf("Import failed: %v", err))
				continue
			}
			g.notify(fmt.Sprintf("Imported: %s", dst))
		default:
			g.notify(fmt.Sprintf("Unsupported file type: %s", filepath.Ext(file)))
		}
	}
}

// importAsset copies src into dstDir, creating it if needed, and returns the new path.
func importAsset(src, dstDir string) (string, error) {
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dstDir, err)
	}
	dst := filepath.Join(dstDir, filepath.Base(src))
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	return dst, nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
