package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/shell2sprite/internal/compiler"
	"github.com/ivlev/shell2sprite/internal/config"
	"github.com/ivlev/shell2sprite/internal/descriptor"
	"github.com/ivlev/shell2sprite/internal/emitter"
	"github.com/ivlev/shell2sprite/internal/registry"
	"github.com/ivlev/shell2sprite/internal/renderer"
	"github.com/ivlev/shell2sprite/internal/shell"
	"github.com/ivlev/shell2sprite/internal/system"
)

// Preloader умеет заранее декодировать ресурсы (source.FileSource)
type Preloader interface {
	Preload(ctx context.Context, names []string, workers int) error
}

type Project struct {
	Config     *config.Config
	Compositor renderer.Compositor
	Preloader  Preloader
}

func NewProject(cfg *config.Config, comp renderer.Compositor, pre Preloader) *Project {
	return &Project{
		Config:     cfg,
		Compositor: comp,
		Preloader:  pre,
	}
}

// Result описывает результат одного прогона
type Result struct {
	Surfaces []*shell.Surface
	Frames   map[int][]compiler.Frame
	Registry *registry.Registry
	Sheet    *renderer.Sheet
	Document *emitter.Document
}

func (p *Project) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()

	paths, err := system.FindDescriptors(p.Config.ShellDir)
	if err != nil {
		return nil, err
	}
	text, err := p.readDescriptors(paths)
	if err != nil {
		return nil, err
	}

	fmt.Println("--- [PROJECT: SHELL CONVERTER] ---")
	fmt.Printf("[*] Оболочка: %s | Файлов описания: %d\n", p.Config.ShellDir, len(paths))
	fmt.Println("-----------------------------")

	parseStart := time.Now()
	res, err := p.Convert(text)
	if err != nil {
		return nil, err
	}
	parseTime := time.Since(parseStart)
	fmt.Printf("[*] Поверхностей: %d | Уникальных изображений: %d\n", len(res.Surfaces), res.Registry.Len())

	if p.Config.DumpModel != "" {
		if err := os.MkdirAll(filepath.Dir(p.Config.DumpModel), 0755); err != nil {
			return nil, fmt.Errorf("ошибка записи модели: %w", err)
		}
		if err := shell.WriteModel(res.Surfaces, p.Config.DumpModel); err != nil {
			return nil, fmt.Errorf("ошибка записи модели: %w", err)
		}
		fmt.Printf("[*] Модель сохранена: %s\n", p.Config.DumpModel)
	}

	layoutStart := time.Now()
	if p.Preloader != nil {
		if err := p.Preloader.Preload(ctx, res.Registry.Resources(), p.Config.Workers); err != nil {
			return nil, fmt.Errorf("ошибка загрузки ресурсов: %w", err)
		}
	}

	fmt.Println("[*] Сборка листа спрайтов...")
	res.Sheet, err = renderer.Layout(ctx, res.Registry, p.Compositor)
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки листа: %w", err)
	}
	layoutTime := time.Since(layoutStart)

	res.Document = emitter.NewDocument(res.Sheet)
	for _, s := range res.Surfaces {
		res.Document.AddSurface(s.DisplayName(), res.Frames[s.Index])
	}

	if err := os.MkdirAll(p.Config.OutputDir, 0755); err != nil {
		return nil, err
	}
	if err := res.Sheet.Save(p.Config.SheetPath()); err != nil {
		return nil, fmt.Errorf("ошибка сохранения листа: %w", err)
	}
	opt := emitter.Options{
		RegisterFunc: p.Config.RegisterFunc,
		AgentName:    p.Config.AgentName,
		Indent:       p.Config.Indent,
	}
	if err := res.Document.WriteFile(p.Config.ScriptPath(), opt); err != nil {
		return nil, fmt.Errorf("ошибка записи %s: %w", p.Config.ScriptPath(), err)
	}

	if p.Config.ShowStats {
		p.report(res, time.Since(startTime), parseTime, layoutTime)
	}

	return res, nil
}

// Convert строит поверхности и граф кадров без работы с пикселями
func (p *Project) Convert(text string) (*Result, error) {
	blocks, err := descriptor.Parse(text)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	builder := shell.NewBuilder(reg)
	res := &Result{Registry: reg, Frames: make(map[int][]compiler.Frame)}

	for _, b := range blocks {
		index, ok := descriptor.SurfaceIndex(b.Title)
		if !ok {
			continue
		}
		s, err := builder.Build(index, b.Commands())
		if err != nil {
			return nil, err
		}
		res.Surfaces = append(res.Surfaces, s)
	}

	comp := compiler.NewCompiler(reg)
	if p.Config.DefaultDuration > 0 {
		comp.DefaultDuration = p.Config.DefaultDuration
	}
	for _, s := range res.Surfaces {
		frames, err := comp.Compile(s)
		if err != nil {
			return nil, err
		}
		// Повторный блок той же поверхности заменяет предыдущий
		res.Frames[s.Index] = frames
	}

	return res, nil
}

func (p *Project) readDescriptors(paths []string) (string, error) {
	var sb strings.Builder
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		if len(strings.TrimSpace(string(raw))) == 0 {
			continue
		}
		text, err := descriptor.Decode(raw, p.Config.Charset)
		if err != nil {
			return "", fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%s: %w", p.Config.ShellDir, descriptor.ErrEmptyDescriptor)
	}
	return sb.String(), nil
}

func (p *Project) report(res *Result, total, parse, layout time.Duration) {
	frames := 0
	for _, f := range res.Frames {
		frames += len(f)
	}

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.3fs\n"+
			"Parse+Compile: %.3fs\n"+
			"Sheet Layout: %.3fs\n"+
			"Frames: %d | Cells: %d (%dx%d)\n"+
			"Sheet: %s | Script: %s\n"+
			"Memory: %s\n"+
			"----------------------------\n",
		p.Config.BuildVersion, total.Seconds(), parse.Seconds(), layout.Seconds(),
		frames, res.Sheet.Count, res.Sheet.CellWidth, res.Sheet.CellHeight,
		system.FileSize(p.Config.SheetPath()), system.FileSize(p.Config.ScriptPath()),
		system.MemoryReport(),
	)

	logEntry := fmt.Sprintf("[%s] Build: %s | Shell: %s | Surfaces: %d | Cells: %d | Total: %.3fs\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.ShellDir),
		len(res.Surfaces),
		res.Sheet.Count,
		total.Seconds(),
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}
