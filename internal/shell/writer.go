package shell

import (
	"os"

	"gopkg.in/yaml.v3"
)

// WriteModel writes surfaces to a YAML file
func WriteModel(surfaces []*Surface, path string) error {
	data, err := yaml.Marshal(NewModel(surfaces))
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadModel reads a model written by WriteModel
func ReadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var model Model
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return &model, nil
}
