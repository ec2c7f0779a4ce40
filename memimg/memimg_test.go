package memimg

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hoshinonyaruko/snake-board/board"
)

// writeArrow 写一张左半红右半白的图 用来检查旋转
func writeArrow(t *testing.T, path string, size int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x < size/2 {
				img.Set(x, y, color.NRGBA{255, 0, 0, 255})
			} else {
				img.Set(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func isRed(c color.Color) bool {
	r, g, _, _ := c.RGBA()
	return r > 0xc000 && g < 0x4000
}

func TestLoadTiles(t *testing.T) {
	Reset()
	dir := t.TempDir()
	writeArrow(t, filepath.Join(dir, "head.png"), 40)
	writeArrow(t, filepath.Join(dir, "wall.png"), 40)
	writeArrow(t, filepath.Join(dir, "readme.png"), 40)

	if err := LoadTiles(dir, 10); err != nil {
		t.Fatalf("LoadTiles: %v", err)
	}

	wall, ok := GetTile(board.Wall)
	if !ok {
		t.Fatal("Expected wall tile")
	}
	if b := wall.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Errorf("Expected 10x10 tile, got %v", b)
	}
	if _, ok := GetTile(board.Food); ok {
		t.Error("Did not expect a food tile")
	}

	// 朝右的图左半边是红色 朝上的图(逆时针转90度)下半边是红色
	right, _ := GetTile(board.HeadRight)
	up, ok := GetTile(board.HeadUp)
	if !ok {
		t.Fatal("Expected rotated head tile")
	}
	if !isRed(right.At(1, 5)) || isRed(right.At(8, 5)) {
		t.Error("Right-facing head tile has unexpected layout")
	}
	if !isRed(up.At(5, 8)) || isRed(up.At(5, 1)) {
		t.Error("Up-facing head tile is not rotated counter-clockwise")
	}
	for _, sym := range []byte{board.HeadLeft, board.HeadDown} {
		if _, ok := GetTile(sym); !ok {
			t.Errorf("Expected tile for %q", sym)
		}
	}
}

func TestLoadTilesBadImage(t *testing.T) {
	Reset()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "food.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LoadTiles(dir, 10); err == nil {
		t.Error("Expected decode error")
	}
}

func TestWatchTiles(t *testing.T) {
	Reset()
	dir := t.TempDir()
	done := make(chan struct{})
	errc := make(chan error, 1)
	go func() { errc <- WatchTiles(dir, 8, done) }()

	// 等待 watcher 就绪
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		writeArrow(t, filepath.Join(dir, "food.png"), 16)
		if _, ok := GetTile(board.Food); ok {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	close(done)
	if err := <-errc; err != nil {
		t.Fatalf("WatchTiles: %v", err)
	}
	if _, ok := GetTile(board.Food); !ok {
		t.Error("Expected food tile to be hot loaded")
	}
}
