package source

import (
	"fmt"
	"image"
)

// Source отдает декодированные ресурсы оболочки по имени файла
type Source interface {
	Load(name string) (image.Image, error)
	Close() error
}

// MemorySource хранит изображения в памяти (тесты, генераторы)
type MemorySource map[string]image.Image

func (m MemorySource) Load(name string) (image.Image, error) {
	img, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("ресурс %s не найден", name)
	}
	return img, nil
}

func (m MemorySource) Close() error {
	return nil
}
