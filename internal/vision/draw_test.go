package vision

import (
	"image"
	"image/color"
	"testing"
)

func TestDrawRectangle_Thickness2(t *testing.T) {
	img := createFilledImage(50, 50, color.White, color.White, image.Rectangle{})
	red := color.NRGBA{255, 0, 0, 255}

	drawRectangle(img, image.Rect(10, 10, 30, 30), red, 2)

	tests := []struct {
		name string
		p    image.Point
		want bool
	}{
		{"top outer row", image.Pt(20, 9), true},
		{"top row", image.Pt(20, 10), true},
		{"below top band", image.Pt(20, 11), false},
		{"bottom row", image.Pt(20, 29), true},
		{"above bottom band", image.Pt(20, 27), false},
		{"left column", image.Pt(10, 20), true},
		{"right column", image.Pt(29, 20), true},
		{"outer corner", image.Pt(9, 9), true},
		{"interior", image.Pt(20, 20), false},
		{"outside", image.Pt(31, 20), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := img.NRGBAAt(tt.p.X, tt.p.Y) == red
			if got != tt.want {
				t.Errorf("pixel %v red: got %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestDrawRectangle_Thickness1(t *testing.T) {
	img := createFilledImage(20, 20, color.White, color.White, image.Rectangle{})
	blue := color.NRGBA{0, 0, 255, 255}

	drawRectangle(img, image.Rect(5, 5, 10, 10), blue, 1)

	count := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if img.NRGBAAt(x, y) == blue {
				count++
			}
		}
	}
	// 5x5 outline
	if count != 16 {
		t.Errorf("outline pixels: got %d, want 16", count)
	}
}

func TestDrawRectangle_ClipsAtEdge(t *testing.T) {
	img := createFilledImage(20, 20, color.White, color.White, image.Rectangle{})
	drawRectangle(img, image.Rect(0, 0, 25, 25), color.Black, 2)

	if img.NRGBAAt(0, 0) != (color.NRGBA{0, 0, 0, 255}) {
		t.Error("visible corner not drawn")
	}
}

func TestDrawRectangle_Filled(t *testing.T) {
	img := createFilledImage(20, 20, color.White, color.White, image.Rectangle{})
	drawRectangle(img, image.Rect(5, 5, 10, 10), color.Black, -1)

	if img.NRGBAAt(7, 7) != (color.NRGBA{0, 0, 0, 255}) {
		t.Error("interior not filled")
	}
	if img.NRGBAAt(10, 10) != (color.NRGBA{255, 255, 255, 255}) {
		t.Error("fill leaked past Max")
	}
}

func TestTextBounds(t *testing.T) {
	got := TextBounds("ab", image.Pt(5, 30), 2)
	want := image.Rect(5, 30-11*2, 5+7*2*2, 30+2*2)
	if got != want {
		t.Errorf("TextBounds: got %v, want %v", got, want)
	}

	if got := TextBounds("", image.Pt(5, 30), 2); !got.Empty() {
		t.Errorf("empty text: got %v, want empty", got)
	}
	if a, b := TextBounds("x", image.Pt(0, 20), 0), TextBounds("x", image.Pt(0, 20), 1); a != b {
		t.Errorf("scale 0 should behave as 1: got %v and %v", a, b)
	}
}

func TestPutText(t *testing.T) {
	img := createFilledImage(120, 60, color.White, color.White, image.Rectangle{})
	blue := color.NRGBA{0, 0, 255, 255}
	org := image.Pt(10, 40)

	putText(img, "Red Circle", org, blue, 2)

	bounds := TextBounds("Red Circle", org, 2)
	inside, outside := 0, 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 120; x++ {
			if img.NRGBAAt(x, y) != blue {
				continue
			}
			if (image.Point{x, y}).In(bounds) {
				inside++
			} else {
				outside++
			}
		}
	}
	if inside == 0 {
		t.Error("no text pixels drawn")
	}
	if outside != 0 {
		t.Errorf("%d text pixels outside %v", outside, bounds)
	}
}

func TestPutText_Empty(t *testing.T) {
	img := createFilledImage(10, 10, color.White, color.White, image.Rectangle{})
	putText(img, "", image.Pt(0, 5), color.Black, 1)
	putText(nil, "x", image.Pt(0, 5), color.Black, 1)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if img.NRGBAAt(x, y) != (color.NRGBA{255, 255, 255, 255}) {
				t.Fatalf("pixel (%d,%d) changed", x, y)
			}
		}
	}
}
