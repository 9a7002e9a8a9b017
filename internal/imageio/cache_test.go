package imageio

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createTestImage writes a solid PNG into the test's temp dir and returns
// its path
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-image.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, createInMemoryImage(width, height, c)); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func cacheLen(c *Cache) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

func TestCache_Load(t *testing.T) {
	path := createTestImage(t, 40, 30, color.NRGBA{255, 0, 0, 255})
	cache := NewCache()

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if cacheLen(cache) != 1 {
		t.Errorf("entries: got %d, want 1", cacheLen(cache))
	}

	// Second load comes from the cache even after the file is gone
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}
	if _, err := cache.Load(path); err != nil {
		t.Errorf("cached Load failed: %v", err)
	}
}

func TestCache_LoadMissing(t *testing.T) {
	cache := NewCache()
	if _, err := cache.Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
	if cacheLen(cache) != 0 {
		t.Errorf("failed load was cached")
	}
}

func TestCache_LoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := NewCache().Load(path); err == nil {
		t.Error("expected error for invalid image")
	}
}

func TestCache_Evict(t *testing.T) {
	path := createTestImage(t, 10, 10, color.White)
	cache := NewCache()

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(path)
	if cacheLen(cache) != 0 {
		t.Errorf("entries after Evict: got %d, want 0", cacheLen(cache))
	}
	cache.Evict("never-loaded")
}

func TestCache_EvictReloadsFromDisk(t *testing.T) {
	path := createTestImage(t, 10, 10, color.White)
	cache := NewCache()

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := Save(createInMemoryImage(25, 15, color.Black), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	img, _ := cache.Load(path)
	if img.Bounds().Dx() != 10 {
		t.Fatalf("cached image should still be returned before Evict")
	}

	cache.Evict(path)
	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 25 || img.Bounds().Dy() != 15 {
		t.Errorf("after Evict: got %v, want 25x15", img.Bounds())
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	path := createTestImage(t, 20, 20, color.White)
	cache := NewCache()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				t.Errorf("concurrent Load failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if cacheLen(cache) != 1 {
		t.Errorf("entries: got %d, want 1", cacheLen(cache))
	}
}

func TestLoadInfo(t *testing.T) {
	path := createTestImage(t, 64, 48, color.NRGBA{0, 128, 255, 255})

	info, err := LoadInfo(NewCache(), path)
	if err != nil {
		t.Fatalf("LoadInfo failed: %v", err)
	}
	if info.Width != 64 || info.Height != 48 {
		t.Errorf("dimensions: got %dx%d, want 64x48", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %q, want png", info.Format)
	}
	if info.ColorDepth != "8-bit" {
		t.Errorf("ColorDepth: got %q, want 8-bit", info.ColorDepth)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d", info.FileSizeBytes)
	}
}

func TestLoadDimensions(t *testing.T) {
	path := createTestImage(t, 13, 7, color.Black)

	dims, err := LoadDimensions(NewCache(), path)
	if err != nil {
		t.Fatalf("LoadDimensions failed: %v", err)
	}
	if dims.Width != 13 || dims.Height != 7 {
		t.Errorf("got %dx%d, want 13x7", dims.Width, dims.Height)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in, suffix, want string
	}{
		{"shapes.png", "_annotated", "shapes_annotated.png"},
		{"/tmp/a/photo.jpg", "_annotated", "/tmp/a/photo_annotated.jpg"},
		{"scan.webp", "_out", "scan_out.png"},
		{"noext", "_annotated", "noext_annotated.png"},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.in, tt.suffix); got != tt.want {
			t.Errorf("OutputPath(%q, %q): got %q, want %q", tt.in, tt.suffix, got, tt.want)
		}
	}
}
