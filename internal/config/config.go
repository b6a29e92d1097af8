package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ShellDir        string `yaml:"shell_dir"`
	OutputDir       string `yaml:"output_dir"`
	ScriptName      string `yaml:"script_name"`
	SheetName       string `yaml:"sheet_name"`
	RegisterFunc    string `yaml:"register_func"`
	AgentName       string `yaml:"agent_name"`
	Charset         string `yaml:"charset"`
	DefaultDuration int    `yaml:"default_duration"`
	Workers         int    `yaml:"workers"`
	Indent          bool   `yaml:"indent"`
	DumpModel       string `yaml:"dump_model"`
	ShowStats       bool   `yaml:"show_stats"`
	BuildVersion    string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		ShellDir:        "./master",
		OutputDir:       "output",
		ScriptName:      "agent.js",
		SheetName:       "map.png",
		RegisterFunc:    "clippy.ready",
		Charset:         "auto",
		DefaultDuration: 100,
		Workers:         runtime.NumCPU(),
	}
}

// Load накладывает YAML-файл на значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) ScriptPath() string {
	return filepath.Join(c.OutputDir, c.ScriptName)
}

func (c *Config) SheetPath() string {
	return filepath.Join(c.OutputDir, c.SheetName)
}
