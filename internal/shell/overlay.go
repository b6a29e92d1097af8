package shell

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Overlay is a single positioned image fragment.
type Overlay struct {
	Resource string `yaml:"resource"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
}

// NewOverlay normalizes token to a resource file name.
// "100" becomes "surface0100.png", "eyes.png" stays as is.
func NewOverlay(token string, x, y int) Overlay {
	return Overlay{Resource: ResourceName(token), X: x, Y: y}
}

// ResourceName maps a descriptor token to a file name in the shell directory.
func ResourceName(token string) string {
	token = strings.TrimSpace(token)
	if n, err := strconv.Atoi(token); err == nil {
		return fmt.Sprintf("surface%04d.png", n)
	}
	if filepath.Ext(token) != "" {
		return token
	}
	return token + ".png"
}

func (o Overlay) String() string {
	return fmt.Sprintf("%s@%d,%d", o.Resource, o.X, o.Y)
}

// Image is an ordered overlay stack, index 0 is the base layer.
// Two images are the same appearance iff their stacks are equal element by element.
type Image struct {
	overlays []Overlay
}

// NewImage copies overlays into a new stack.
func NewImage(overlays ...Overlay) Image {
	return Image{overlays: append([]Overlay(nil), overlays...)}
}

// Extend returns a new image with o on top. The receiver is never modified.
func (img Image) Extend(o Overlay) Image {
	out := make([]Overlay, len(img.overlays), len(img.overlays)+1)
	copy(out, img.overlays)
	return Image{overlays: append(out, o)}
}

// Overlays returns a copy of the stack.
func (img Image) Overlays() []Overlay {
	return append([]Overlay(nil), img.overlays...)
}

func (img Image) Len() int { return len(img.overlays) }

func (img Image) IsEmpty() bool { return len(img.overlays) == 0 }

// Equal reports order-sensitive equality of the stacks.
func (img Image) Equal(other Image) bool {
	if len(img.overlays) != len(other.overlays) {
		return false
	}
	for i := range img.overlays {
		if img.overlays[i] != other.overlays[i] {
			return false
		}
	}
	return true
}

// Key is a canonical serialization: equal images have equal keys and vice versa.
func (img Image) Key() string {
	var b strings.Builder
	for _, o := range img.overlays {
		fmt.Fprintf(&b, "%q,%d,%d;", o.Resource, o.X, o.Y)
	}
	return b.String()
}

func (img Image) String() string {
	parts := make([]string, len(img.overlays))
	for i, o := range img.overlays {
		parts[i] = o.String()
	}
	return "[" + strings.Join(parts, " + ") + "]"
}
