// Package registry is a content-addressed store of composited images.
// An image is identified by its overlay stack, not by reference, so the
// sprite sheet holds exactly one cell per distinct appearance.
package registry

import "github.com/ivlev/shell2sprite/internal/shell"

type Registry struct {
	ids    map[string]int
	images []shell.Image
}

func New() *Registry {
	return &Registry{ids: make(map[string]int)}
}

// Register returns the id of img, assigning the next free id on first sight.
// Ids start at 0 and are never reused.
func (r *Registry) Register(img shell.Image) int {
	key := img.Key()
	if id, ok := r.ids[key]; ok {
		return id
	}
	id := len(r.images)
	r.ids[key] = id
	r.images = append(r.images, img)
	return id
}

func (r *Registry) Lookup(img shell.Image) (int, bool) {
	id, ok := r.ids[img.Key()]
	return id, ok
}

func (r *Registry) Len() int { return len(r.images) }

// Images returns the registered images indexed by id.
func (r *Registry) Images() []shell.Image {
	return append([]shell.Image(nil), r.images...)
}

// Resources lists every distinct resource file referenced by registered images,
// in order of first appearance.
func (r *Registry) Resources() []string {
	seen := make(map[string]bool)
	var out []string
	for _, img := range r.images {
		for _, o := range img.Overlays() {
			if !seen[o.Resource] {
				seen[o.Resource] = true
				out = append(out, o.Resource)
			}
		}
	}
	return out
}
