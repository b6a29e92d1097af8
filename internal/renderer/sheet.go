package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/ivlev/shell2sprite/internal/shell"
)

var ErrNoImages = errors.New("no registered images")

// ImageList yields registered images indexed by id
type ImageList interface {
	Images() []shell.Image
}

// Sheet is a single horizontal strip of equally sized cells, cell id at x = CellWidth*id
type Sheet struct {
	CellWidth  int
	CellHeight int
	Count      int
	Canvas     *image.RGBA
}

// Position returns the top-left sheet coordinate of cell id
func (s *Sheet) Position(id int) [2]int {
	return [2]int{s.CellWidth * id, 0}
}

// Framesize returns the cell size
func (s *Sheet) Framesize() [2]int {
	return [2]int{s.CellWidth, s.CellHeight}
}

// Layout renders every registered image into its cell.
// The cell size is taken from image 0; other images are assumed to match and are clipped otherwise.
func Layout(ctx context.Context, list ImageList, comp Compositor) (*Sheet, error) {
	images := list.Images()
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	var sheet *Sheet
	for id, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rendered, err := Render(img, comp)
		if err != nil {
			return nil, fmt.Errorf("image %d %s: %w", id, img, err)
		}

		if sheet == nil {
			b := rendered.Bounds()
			sheet = &Sheet{
				CellWidth:  b.Dx(),
				CellHeight: b.Dy(),
				Count:      len(images),
				Canvas:     image.NewRGBA(image.Rect(0, 0, b.Dx()*len(images), b.Dy())),
			}
		}

		pos := sheet.Position(id)
		cell := image.Rect(pos[0], pos[1], pos[0]+sheet.CellWidth, pos[1]+sheet.CellHeight)
		draw.Draw(sheet.Canvas, cell, rendered, rendered.Bounds().Min, draw.Src)
		if img.Len() > 1 {
			release(rendered)
		}
	}

	return sheet, nil
}

// Render stacks the overlays of img bottom to top. The first overlay is the canvas,
// so its own offset is ignored.
func Render(img shell.Image, comp Compositor) (image.Image, error) {
	overlays := img.Overlays()
	if len(overlays) == 0 {
		return nil, fmt.Errorf("empty image")
	}

	cur, err := comp.Load(overlays[0].Resource)
	if err != nil {
		return nil, err
	}

	for i, o := range overlays[1:] {
		top, err := comp.Load(o.Resource)
		if err != nil {
			return nil, err
		}
		next := comp.Composite(cur, top, o.X, o.Y)
		if i > 0 {
			release(cur)
		}
		cur = next
	}
	return cur, nil
}

// Save writes the sheet as PNG
func (s *Sheet) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, s.Canvas); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
