// Package config loads the optional pseudo.yaml driver configuration that
// the CLI consults before running a program. Nothing in this package is
// required: the positional source-file argument remains the only required
// CLI input, per the runner's contract.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the shape of pseudo.yaml. Every field has a usable zero value.
type Config struct {
	// WorkDir overrides the directory OPENFILE paths are resolved against.
	// Empty means the current working directory.
	WorkDir string `yaml:"workdir"`
	// Trace turns on the structured execution trace by default, as if
	// --trace had been passed on the command line.
	Trace bool `yaml:"trace"`
}

// Load reads and parses path. A missing file is not an error: it returns
// the zero Config, so callers can always treat config as present.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
