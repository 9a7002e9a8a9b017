package vision

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// labelFace is the bitmap font used for labels. Its glyphs are magnified with
// nearest-neighbor scaling so they stay crisp at any scale.
var labelFace = basicfont.Face7x13

// drawRectangle outlines r, whose Max corner is exclusive, with lines of the
// given thickness centered on the outermost pixel rows and columns of r.
// A negative thickness fills r.
func drawRectangle(dst draw.Image, r image.Rectangle, c color.Color, thickness int) {
	if dst == nil || r.Empty() {
		return
	}
	src := image.NewUniform(c)
	if thickness < 0 {
		draw.Draw(dst, r, src, image.Point{}, draw.Src)
		return
	}
	if thickness == 0 {
		thickness = 1
	}

	lo := thickness / 2
	hi := (thickness - 1) / 2
	x0, y0 := r.Min.X, r.Min.Y
	x1, y1 := r.Max.X-1, r.Max.Y-1

	sides := []image.Rectangle{
		image.Rect(x0-lo, y0-lo, x1+hi+1, y0+hi+1), // top
		image.Rect(x0-lo, y1-lo, x1+hi+1, y1+hi+1), // bottom
		image.Rect(x0-lo, y0-lo, x0+hi+1, y1+hi+1), // left
		image.Rect(x1-lo, y0-lo, x1+hi+1, y1+hi+1), // right
	}
	for _, side := range sides {
		draw.Draw(dst, side, src, image.Point{}, draw.Src)
	}
}

// TextBounds returns the rectangle PutText covers when drawing text with its
// baseline starting at org, magnified by scale.
func TextBounds(text string, org image.Point, scale int) image.Rectangle {
	if text == "" {
		return image.Rectangle{Min: org, Max: org}
	}
	if scale < 1 {
		scale = 1
	}
	m := labelFace.Metrics()
	width := font.MeasureString(labelFace, text).Ceil()
	return image.Rect(
		org.X,
		org.Y-m.Ascent.Ceil()*scale,
		org.X+width*scale,
		org.Y+m.Descent.Ceil()*scale,
	)
}

// putText renders text once at native size into an alpha mask, magnifies the
// mask and composites c through it onto dst.
func putText(dst draw.Image, text string, org image.Point, c color.Color, scale int) {
	if dst == nil || text == "" {
		return
	}
	if scale < 1 {
		scale = 1
	}

	m := labelFace.Metrics()
	ascent := m.Ascent.Ceil()
	width := font.MeasureString(labelFace, text).Ceil()
	height := ascent + m.Descent.Ceil()
	if width <= 0 || height <= 0 {
		return
	}

	glyphs := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.Opaque,
		Face: labelFace,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(text)

	var mask image.Image = glyphs
	if scale > 1 {
		mask = imaging.Resize(glyphs, width*scale, height*scale, imaging.NearestNeighbor)
	}

	draw.DrawMask(dst, TextBounds(text, org, scale), image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}
