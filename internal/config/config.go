// Package config loads game settings from YAML. Keys left out of the file
// keep their game.DefaultConfig value.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/amalg/bomberman-ecs/internal/game"
)

// Load reads and validates the config file at path. An empty path returns
// the defaults.
func Load(path string) (game.Config, error) {
	if path == "" {
		return game.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return game.Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return game.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults. Unknown keys are rejected so a
// typo does not silently fall back to a default.
func Parse(r io.Reader) (game.Config, error) {
	cfg := game.DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return game.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
