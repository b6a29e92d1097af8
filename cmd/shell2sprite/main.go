package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/urfave/cli/v3"

	"github.com/ivlev/shell2sprite/internal/config"
	"github.com/ivlev/shell2sprite/internal/engine"
	"github.com/ivlev/shell2sprite/internal/renderer"
	"github.com/ivlev/shell2sprite/internal/source"
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:      "shell2sprite",
		Usage:     "Конвертирует оболочку (surfaces.txt) в лист спрайтов и граф анимаций",
		ArgsUsage: "[папка оболочки]",
		Version:   version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML-файл настроек"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "output", Usage: "Папка для map.png и agent.js"},
			&cli.StringFlag{Name: "charset", Value: "auto", Usage: "Кодировка surfaces.txt: auto, utf-8, shift_jis, ..."},
			&cli.IntFlag{Name: "duration", Value: 100, Usage: "Длительность кадра по умолчанию (мс)"},
			&cli.IntFlag{Name: "workers", Value: runtime.NumCPU(), Usage: "Потоки декодирования PNG"},
			&cli.StringFlag{Name: "register-func", Value: "clippy.ready", Usage: "Функция регистрации в agent.js"},
			&cli.StringFlag{Name: "agent", Usage: "Имя агента (первый аргумент функции регистрации)"},
			&cli.StringFlag{Name: "dump-model", Usage: "Сохранить разобранную модель в YAML"},
			&cli.BoolFlag{Name: "indent", Usage: "Форматировать JSON с отступами"},
			&cli.BoolFlag{Name: "stats", Usage: "Показать отчет о производительности"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("ошибка чтения настроек: %w", err)
		}
		cfg = loaded
	}

	// Флаги перекрывают файл настроек только если заданы явно
	if cmd.Args().Present() {
		cfg.ShellDir = cmd.Args().First()
	}
	if cmd.IsSet("output") || cfg.OutputDir == "" {
		cfg.OutputDir = cmd.String("output")
	}
	if cmd.IsSet("charset") {
		cfg.Charset = cmd.String("charset")
	}
	if cmd.IsSet("duration") {
		cfg.DefaultDuration = cmd.Int("duration")
	}
	if cmd.IsSet("workers") {
		cfg.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("register-func") {
		cfg.RegisterFunc = cmd.String("register-func")
	}
	if cmd.IsSet("agent") {
		cfg.AgentName = cmd.String("agent")
	}
	if cmd.IsSet("dump-model") {
		cfg.DumpModel = cmd.String("dump-model")
	}
	if cmd.IsSet("indent") {
		cfg.Indent = cmd.Bool("indent")
	}
	if cmd.IsSet("stats") {
		cfg.ShowStats = cmd.Bool("stats")
	}
	cfg.BuildVersion = version

	src, err := source.NewFileSource(cfg.ShellDir)
	if err != nil {
		return fmt.Errorf("ошибка открытия оболочки: %w", err)
	}
	defer src.Close()

	project := engine.NewProject(cfg, renderer.NewDrawCompositor(src), src)
	if _, err := project.Run(ctx); err != nil {
		return err
	}

	fmt.Printf("[+++] Успех! Результат: %s, %s\n", cfg.SheetPath(), cfg.ScriptPath())
	return nil
}
