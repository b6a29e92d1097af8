package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/image/colornames"
)

const cell = 64

const surfacesTxt = `charset,UTF-8

descript
{
version,1
}

// базовая поза: тело + моргание
surface0
{
element0,overlay,body.png,0,0
collision0,8,8,56,56,Head
animation0.interval,sometimes
animation0.pattern0,overlay,100,80,20,16
animation0.pattern1,overlay,101,80,20,16
animation0.pattern2,overlay,-1,80,0,0
animation1.interval,always
animation1.pattern0,alternativestart,(0,2)
animation2.interval,runonce
animation2.pattern0,base,200,120,0,0
animation2.pattern1,overlay,-1,0,0,0
}

surface1
{
}
`

func main() {
	out := flag.String("o", "master", "Папка для синтетической оболочки")
	flag.Parse()

	fmt.Println("=== Synthetic Shell Generation ===")
	if err := os.MkdirAll(*out, 0755); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	images := map[string]image.Image{
		"body.png":        fill(cell, cell, colornames.Lightsteelblue),
		"surface0100.png": fill(24, 8, colornames.Black),
		"surface0101.png": fill(24, 2, colornames.Black),
		"surface0200.png": fill(cell, cell, colornames.Salmon),
		"surface0001.png": fill(cell, cell, colornames.Palegreen),
	}

	for name, img := range images {
		if err := savePNG(filepath.Join(*out, name), img); err != nil {
			log.Fatalf("Failed to write %s: %v", name, err)
		}
		fmt.Printf("✓ %s (%dx%d)\n", name, img.Bounds().Dx(), img.Bounds().Dy())
	}

	if err := os.WriteFile(filepath.Join(*out, "surfaces.txt"), []byte(surfacesTxt), 0644); err != nil {
		log.Fatalf("Failed to write surfaces.txt: %v", err)
	}
	fmt.Printf("✓ surfaces.txt\n\n")
	fmt.Printf("Run: shell2sprite --indent %s\n", *out)
}

// fill creates a solid rectangle
func fill(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
