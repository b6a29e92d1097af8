package source

import (
	"context"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FileSource читает PNG-ресурсы из папки оболочки.
// Декодированные изображения кешируются: один и тот же файл участвует во многих кадрах.
type FileSource struct {
	dir   string
	mu    sync.Mutex
	cache map[string]image.Image
}

func NewFileSource(dir string) (*FileSource, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s не является папкой", dir)
	}
	return &FileSource{dir: dir, cache: make(map[string]image.Image)}, nil
}

func (s *FileSource) Load(name string) (image.Image, error) {
	s.mu.Lock()
	img, ok := s.cache[name]
	s.mu.Unlock()
	if ok {
		return img, nil
	}

	img, err := s.decode(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[name] = img
	s.mu.Unlock()
	return img, nil
}

// Preload параллельно декодирует ресурсы, чтобы раскладка листа работала из кеша
func (s *FileSource) Preload(ctx context.Context, names []string, workers int) error {
	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := s.Load(name)
			return err
		})
	}
	return g.Wait()
}

func (s *FileSource) decode(name string) (image.Image, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("декодирование %s: %w", name, err)
	}
	return img, nil
}

func (s *FileSource) Close() error {
	s.mu.Lock()
	s.cache = make(map[string]image.Image)
	s.mu.Unlock()
	return nil
}
