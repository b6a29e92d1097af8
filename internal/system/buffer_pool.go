package system

import (
	"image"
	"sync"
)

// ImagePool переиспользует холсты *image.RGBA одинакового размера.
// Все ячейки листа обычно одного размера, так что композиция кадров
// почти не выделяет память.
type ImagePool struct {
	pools map[image.Rectangle]*sync.Pool
	mu    sync.Mutex
}

var globalPool = NewImagePool()

func NewImagePool() *ImagePool {
	return &ImagePool{pools: make(map[image.Rectangle]*sync.Pool)}
}

// GetImage возвращает очищенный холст из общего пула.
func GetImage(rect image.Rectangle) *image.RGBA {
	return globalPool.Get(rect)
}

// PutImage возвращает холст в общий пул.
func PutImage(img *image.RGBA) {
	globalPool.Put(img)
}

func (p *ImagePool) pool(rect image.Rectangle) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()

	pool, ok := p.pools[rect]
	if !ok {
		pool = &sync.Pool{
			New: func() any {
				return image.NewRGBA(rect)
			},
		}
		p.pools[rect] = pool
	}
	return pool
}

func (p *ImagePool) Get(rect image.Rectangle) *image.RGBA {
	img := p.pool(rect).Get().(*image.RGBA)
	clear(img.Pix)
	return img
}

func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	p.pool(img.Rect).Put(img)
}
