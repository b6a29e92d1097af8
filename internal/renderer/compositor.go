package renderer

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/ivlev/shell2sprite/internal/source"
	"github.com/ivlev/shell2sprite/internal/system"
)

// Compositor is the pixel side of the conversion: the sheet layout only
// asks it to load resources and stack them
type Compositor interface {
	Load(name string) (image.Image, error)
	// Composite draws overlay over base at (x, y) and returns a new image
	// with the bounds of base. Neither input is modified.
	Composite(base, overlay image.Image, x, y int) image.Image
}

// DrawCompositor composites with golang.org/x/image/draw on pooled RGBA canvases
type DrawCompositor struct {
	Source source.Source
}

// NewDrawCompositor creates a compositor reading resources from src
func NewDrawCompositor(src source.Source) *DrawCompositor {
	return &DrawCompositor{Source: src}
}

func (c *DrawCompositor) Load(name string) (image.Image, error) {
	return c.Source.Load(name)
}

func (c *DrawCompositor) Composite(base, overlay image.Image, x, y int) image.Image {
	bounds := base.Bounds()
	dst := system.GetImage(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), base, bounds.Min, draw.Src)
	draw.Copy(dst, image.Pt(x, y), overlay, overlay.Bounds(), draw.Over, nil)
	return dst
}

// release returns canvases produced by DrawCompositor to the pool
func release(img image.Image) {
	if rgba, ok := img.(*image.RGBA); ok {
		system.PutImage(rgba)
	}
}
