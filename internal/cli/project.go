package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kevanbtc/donkey-financial-ecosystem/internal/engine"
)

// LoadProjectFile reads a project input document from a YAML file.
func LoadProjectFile(path string) (engine.ProjectInput, error) {
	var input engine.ProjectInput

	data, err := os.ReadFile(path)
	if err != nil {
		return input, fmt.Errorf("reading project file: %w", err)
	}

	if err := yaml.Unmarshal(data, &input); err != nil {
		return input, fmt.Errorf("parsing project file %s: %w", path, err)
	}

	return input, nil
}
