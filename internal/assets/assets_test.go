package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, path string, size int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, Solid(size, color.RGBA{G: 200, A: 255})); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func writeBMP(t *testing.T, path string, size int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	if err := bmp.Encode(f, Solid(size, color.RGBA{R: 10, G: 20, B: 30, A: 255})); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
}

func TestLoadSprites(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a_slime.png"), 8)
	writeBMP(t, filepath.Join(dir, "b_bat.BMP"), 4)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "c_broken.png"), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	sprites, err := LoadSprites(dir)
	if err != nil {
		t.Fatalf("LoadSprites() error = %v", err)
	}
	if len(sprites) != 2 {
		t.Fatalf("loaded %d sprites, want 2", len(sprites))
	}

	// Name order: the png first, then the bmp.
	if got := sprites[0].Bounds().Dx(); got != 8 {
		t.Errorf("first sprite width = %d, want 8", got)
	}
	if got := sprites[1].Bounds().Dx(); got != 4 {
		t.Errorf("second sprite width = %d, want 4", got)
	}
}

func TestLoadSprites_Empty(t *testing.T) {
	_, err := LoadSprites(t.TempDir())
	if !errors.Is(err, ErrNoSprites) {
		t.Errorf("LoadSprites(empty) error = %v, want ErrNoSprites", err)
	}

	_, err = LoadSprites(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("LoadSprites(missing) should fail")
	}
}

func TestLoad_Fallbacks(t *testing.T) {
	set := Load(filepath.Join(t.TempDir(), "nowhere"), 80)

	if !set.Fallback {
		t.Error("Fallback should be set when nothing loads")
	}
	if len(set.Monsters) != 1 {
		t.Fatalf("fallback monsters = %d, want 1", len(set.Monsters))
	}

	if got := set.Player.Bounds(); got != image.Rect(0, 0, 80, 80) {
		t.Errorf("fallback player bounds = %v, want 80x80", got)
	}
	r, g, b, _ := set.Monsters[0].At(10, 10).RGBA()
	if r != 0 || g != 0 || b != 0xffff {
		t.Errorf("fallback monster colour = (%d,%d,%d), want blue", r, g, b)
	}
}

func TestLoad_FromDisk(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, PlayerFile), 16)
	writePNG(t, filepath.Join(root, MonsterDir, "ghost.png"), 16)
	writePNG(t, filepath.Join(root, MonsterDir, "orc.png"), 16)

	set := Load(root, 80)

	if set.Fallback {
		t.Error("Fallback should not be set when every sprite loads")
	}
	if len(set.Monsters) != 2 {
		t.Errorf("monsters = %d, want 2", len(set.Monsters))
	}
	if got := set.Player.Bounds().Dx(); got != 16 {
		t.Errorf("player width = %d, want 16", got)
	}
}
