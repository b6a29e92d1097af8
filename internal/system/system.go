package system

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// MainDescriptor читается первым, остальные surfaces*.txt дописываются следом
const MainDescriptor = "surfaces.txt"

// FindDescriptors возвращает файлы описания оболочки в порядке чтения
func FindDescriptors(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var main string
	var extra []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := strings.ToLower(f.Name())
		if name == MainDescriptor {
			main = filepath.Join(dir, f.Name())
			continue
		}
		if strings.HasPrefix(name, "surfaces") && strings.HasSuffix(name, ".txt") {
			extra = append(extra, filepath.Join(dir, f.Name()))
		}
	}

	if main == "" && len(extra) == 0 {
		return nil, fmt.Errorf("в папке %s не найдено %s", dir, MainDescriptor)
	}

	sort.Strings(extra)
	var out []string
	if main != "" {
		out = append(out, main)
	}
	return append(out, extra...), nil
}

// MemoryReport описывает потребление памяти процессом и системой
func MemoryReport() string {
	var rss uint64
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := p.MemoryInfo(); err == nil {
			rss = info.RSS
		}
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Sprintf("RSS: %s", humanize.Bytes(rss))
	}
	return fmt.Sprintf("RSS: %s | System: %s/%s (%.1f%%)",
		humanize.Bytes(rss), humanize.Bytes(vm.Used), humanize.Bytes(vm.Total), vm.UsedPercent)
}

// FileSize возвращает размер файла в читаемом виде
func FileSize(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return "?"
	}
	return humanize.Bytes(uint64(fi.Size()))
}
