// Package assets loads the player and monster sprites, falling back to
// solid squares when image files are missing.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
)

// Locations relative to the asset root.
const (
	MonsterDir = "monsters"
	PlayerFile = "characters/player.png"
)

// ErrNoSprites is returned when a directory holds no loadable images.
var ErrNoSprites = errors.New("no sprite images found")

// Fallback colours, matching the squares drawn when sprites are missing.
var (
	PlayerColor  = color.RGBA{R: 255, A: 255}
	MonsterColor = color.RGBA{B: 255, A: 255}
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
}

// Set is the loaded sprite set. Monsters always holds at least one image.
type Set struct {
	Player   image.Image
	Monsters []image.Image
	// Fallback is true when any sprite was replaced by a solid square.
	Fallback bool
}

// Load reads the sprites under root. Missing or unreadable files are
// logged and replaced by solid squares of size tile.
func Load(root string, tile int) Set {
	var set Set

	player, err := LoadImage(filepath.Join(root, PlayerFile))
	if err != nil {
		log.Printf("Player image unavailable (%v), using a red square", err)
		player = Solid(tile, PlayerColor)
		set.Fallback = true
	}
	set.Player = player

	monsters, err := LoadSprites(filepath.Join(root, MonsterDir))
	if err != nil {
		log.Printf("Monster images unavailable (%v), using blue squares", err)
		monsters = []image.Image{Solid(tile, MonsterColor)}
		set.Fallback = true
	}
	set.Monsters = monsters

	return set
}

// LoadImage decodes a PNG, JPEG, GIF or BMP file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// LoadSprites decodes every image file in dir in name order. Files that
// fail to decode are logged and skipped.
func LoadSprites(dir string) ([]image.Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read sprite dir: %w", err)
	}

	var sprites []image.Image
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		img, err := LoadImage(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("Error loading sprite %s: %v", entry.Name(), err)
			continue
		}
		sprites = append(sprites, img)
	}

	if len(sprites) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoSprites)
	}
	return sprites, nil
}

// Solid returns a size x size image filled with c.
func Solid(size int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}
